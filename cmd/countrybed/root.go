// Command countrybed browses, serves and queries the offline country directory.
//
// Configuration is read, from highest to lowest priority, from command-line
// flags, COUNTRYBED_* environment variables (COUNTRYBED_SERVER_PORT,
// COUNTRYBED_DATA_FILE, ...) and a YAML file given with --config or found as
// .countrybed.yml in the working directory.
package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/andreiashu/countrybed"
	"github.com/andreiashu/countrybed/internal/config"
	"github.com/andreiashu/countrybed/internal/logging"
)

// app is the state shared by all subcommands of one invocation.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "countrybed",
		Short: "Offline country directory",
		Long: `countrybed is an offline directory of the world's countries.

The dataset ships inside the binary. Browse it in the terminal, serve it as a
web directory with a JSON API, or query it from scripts.

Quick Start:
  countrybed browse                   Interactive terminal browser
  countrybed serve --port 8080        Web directory on :8080
  countrybed list --region Europe     Countries of a region
  countrybed show FRA                 One country with its borders`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is .countrybed.yml)")
	flags.StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	flags.Bool("log-dev", false, "human-readable development logging")
	flags.String("log-file", "", "write logs to this file instead of stderr")
	flags.String("data", "", "raw JSON dataset to load instead of the embedded one")
	flags.String("cache-dir", "./countrybed-cache", "directory of the gob cache")

	root.AddCommand(
		newBrowseCmd(a),
		newServeCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newRegionsCmd(a),
		newNearestCmd(a),
		newValidateCmd(a),
		newCacheCmd(a),
	)
	return root
}

// setup loads the configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	v := config.New(a.cfgFile)
	if err := config.ReadFile(v); err != nil {
		return err
	}
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	// The terminal browser owns the screen; it only logs to a file.
	if cmd.Name() == "browse" && cfg.Log.File == "" {
		return nil
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development, cfg.LogOutputs())
	if err != nil {
		return err
	}
	a.logger = logger
	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", zap.String("path", used))
	}
	return nil
}

// loadBed builds the CountryBed described by the configuration.
func (a *app) loadBed() (*countrybed.CountryBed, error) {
	bed, err := countrybed.NewCountryBed(a.cfg.CountryBedOptions(a.logger)...)
	if err != nil {
		return nil, fmt.Errorf("loading countries: %w", err)
	}
	return bed, nil
}

// Execute runs countrybed with the given arguments and output streams.
func Execute(args []string, stdout, stderr io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}
