// Package config loads countrybed settings with Viper from an optional YAML
// file, COUNTRYBED_* environment variables and command-line flags.
//
// Keys follow the <section>.<option> pattern; the matching environment
// variable replaces dots with underscores, e.g. server.port is
// COUNTRYBED_SERVER_PORT.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/andreiashu/countrybed"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "COUNTRYBED"

type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Data   DataConfig   `mapstructure:"data"`
	Server ServerConfig `mapstructure:"server"`
	UI     UIConfig     `mapstructure:"ui"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
	File        string `mapstructure:"file"`
}

type DataConfig struct {
	File     string `mapstructure:"file"`      // raw JSON dataset; empty uses the embedded one
	CacheDir string `mapstructure:"cache_dir"` // gob cache directory; empty disables the cache
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type UIConfig struct {
	DarkMode bool `mapstructure:"dark_mode"` // initial theme of the browsers
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("log.file", "")
	v.SetDefault("data.file", "")
	v.SetDefault("data.cache_dir", "./countrybed-cache")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("ui.dark_mode", false)
}

// New returns a Viper instance with defaults and environment binding set up.
// When file is empty, .countrybed.yml in the working directory is used if
// present.
func New(file string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".countrybed")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile reads the configured file into v. A missing default file is not an
// error; a missing explicit file is.
func ReadFile(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return fmt.Errorf("reading config file: %w", err)
}

// BindFlags binds the flags that exist in fs to their configuration keys.
// Flags missing from fs are skipped, so commands only expose what they use.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	bindings := map[string]string{
		"log.level":       "log-level",
		"log.development": "log-dev",
		"log.file":        "log-file",
		"data.file":       "data",
		"data.cache_dir":  "cache-dir",
		"server.host":     "host",
		"server.port":     "port",
		"ui.dark_mode":    "dark",
	}
	for key, name := range bindings {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// Validate checks values that Unmarshal cannot.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port: %d is outside 1-65535", c.Server.Port)
	}
	if strings.ContainsAny(c.Server.Host, " /:") {
		return fmt.Errorf("server.host: invalid host %q", c.Server.Host)
	}
	return nil
}

// Addr is the listen address of the web directory.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// LogOutputs returns the zap output paths for the configured log file.
func (c *Config) LogOutputs() []string {
	if c.Log.File == "" {
		return nil
	}
	return []string{c.Log.File}
}

// CountryBedOptions translates the data settings into library options.
func (c *Config) CountryBedOptions(logger *zap.Logger) []countrybed.Option {
	opts := []countrybed.Option{
		countrybed.WithCacheDir(c.Data.CacheDir),
		countrybed.WithLogger(logger),
	}
	if c.Data.File != "" {
		opts = append(opts, countrybed.WithDataFile(c.Data.File))
	}
	return opts
}
