package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/andreiashu/countrybed"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configured dataset for integrity",
		Long: `Loads the dataset the other commands would use (data file, cache or the
embedded copy) and checks it: unique names and codes, a minimum record count,
known countries with their borders, and coordinate lookups.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := countrybed.ValidateCache(a.cfg.CountryBedOptions(a.logger)...); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Dataset OK.")
			return nil
		},
	}
}

func newCacheCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cache",
		Short: "Regenerate the gob cache from the raw dataset",
		Long: `Normalizes the raw dataset (--data, or the embedded copy) and writes it to
the cache directory. Later runs load the cache instead of parsing JSON. The
cache may be compressed with bzip2 in place.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := countrybed.RegenerateCache(a.cfg.CountryBedOptions(a.logger)...); err != nil {
				return err
			}
			a.logger.Debug("cache written", zap.String("dir", a.cfg.Data.CacheDir))
			fmt.Fprintf(cmd.OutOrStdout(), "Cache written to %s.\n", a.cfg.Data.CacheDir)
			return nil
		},
	}
}
