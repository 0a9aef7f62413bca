// Command update-cache regenerates the countrybed cache from raw data.
//
// Usage:
//
//	go run ./cmd/update-cache [--data path/to/data.json] [--cache ./countrybed-cache]
//
// Without -data the dataset embedded in the library is used. After running,
// the cache can be compressed:
//
//	bzip2 -f countrybed-cache/countries.dmp
package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/andreiashu/countrybed"
	"github.com/andreiashu/countrybed/internal/logging"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("update-cache", flag.ContinueOnError)
	dataFile := fs.String("data", "", "raw JSON dataset (default: embedded)")
	cacheDir := fs.String("cache", "./countrybed-cache", "cache output directory")
	validate := fs.Bool("validate", true, "load and validate the cache after writing it")
	logLevel := fs.String("log-level", "info", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, err := logging.New(*logLevel, false, nil)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	opts := []countrybed.Option{
		countrybed.WithCacheDir(*cacheDir),
		countrybed.WithLogger(logger),
	}
	if *dataFile != "" {
		opts = append(opts, countrybed.WithDataFile(*dataFile))
	}

	if err := countrybed.RegenerateCache(opts...); err != nil {
		return fmt.Errorf("cache regeneration failed: %w", err)
	}

	if *validate {
		// Read back from the cache only.
		if err := countrybed.ValidateCache(countrybed.WithCacheDir(*cacheDir), countrybed.WithLogger(logger)); err != nil {
			return fmt.Errorf("cache validation failed: %w", err)
		}
	}

	fmt.Fprintln(out, "Cache regenerated successfully.")
	fmt.Fprintf(out, "Run 'bzip2 -f %s/countries.dmp' to compress the cache file.\n", *cacheDir)
	return nil
}
