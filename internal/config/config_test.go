package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Development)
	assert.Equal(t, "", cfg.Data.File)
	assert.Equal(t, "./countrybed-cache", cfg.Data.CacheDir)
	assert.Equal(t, "localhost:8080", cfg.Addr())
	assert.False(t, cfg.UI.DarkMode)
	assert.Nil(t, cfg.LogOutputs())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(v *viper.Viper)
		expectError bool
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "custom server",
			setup: func(v *viper.Viper) {
				v.Set("server.host", "0.0.0.0")
				v.Set("server.port", 3000)
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0:3000", cfg.Addr())
			},
		},
		{
			name: "dark mode and log file",
			setup: func(v *viper.Viper) {
				v.Set("ui.dark_mode", true)
				v.Set("log.file", "/tmp/countrybed.log")
			},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.UI.DarkMode)
				assert.Equal(t, []string{"/tmp/countrybed.log"}, cfg.LogOutputs())
			},
		},
		{
			name:        "port out of range",
			setup:       func(v *viper.Viper) { v.Set("server.port", 70000) },
			expectError: true,
		},
		{
			name:        "port not a number",
			setup:       func(v *viper.Viper) { v.Set("server.port", "http") },
			expectError: true,
		},
		{
			name:        "unknown log level",
			setup:       func(v *viper.Viper) { v.Set("log.level", "verbose") },
			expectError: true,
		},
		{
			name:        "host with scheme",
			setup:       func(v *viper.Viper) { v.Set("server.host", "http://localhost") },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			tt.setup(v)

			cfg, err := Load(v)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("COUNTRYBED_SERVER_PORT", "9090")
	t.Setenv("COUNTRYBED_DATA_CACHE_DIR", "/var/cache/countrybed")
	t.Setenv("COUNTRYBED_UI_DARK_MODE", "true")

	v := New("")
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/var/cache/countrybed", cfg.Data.CacheDir)
	assert.True(t, cfg.UI.DarkMode)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "countrybed.yml")
	content := `
log:
  level: debug
data:
  file: ./countries.json
server:
  port: 8181
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	v := New(path)
	require.NoError(t, ReadFile(v))
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "./countries.json", cfg.Data.File)
	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
}

func TestReadFileMissing(t *testing.T) {
	t.Run("explicit file", func(t *testing.T) {
		v := New(filepath.Join(t.TempDir(), "absent.yml"))
		assert.Error(t, ReadFile(v))
	})

	t.Run("default file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		v := New("")
		assert.NoError(t, ReadFile(v))
	})
}

func TestBindFlags(t *testing.T) {
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	fs.Int("port", 8080, "")
	fs.Bool("dark", false, "")
	require.NoError(t, fs.Parse([]string{"--port", "9999", "--dark"}))

	v := viper.New()
	SetDefaults(v)
	require.NoError(t, BindFlags(v, fs))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.True(t, cfg.UI.DarkMode)
	// Not registered on fs, so the default stays.
	assert.Equal(t, "localhost", cfg.Server.Host)
}

func TestCountryBedOptions(t *testing.T) {
	cfg := &Config{Data: DataConfig{CacheDir: t.TempDir()}}
	assert.Len(t, cfg.CountryBedOptions(zap.NewNop()), 2)

	cfg.Data.File = "countries.json"
	assert.Len(t, cfg.CountryBedOptions(zap.NewNop()), 3)
}
