package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/andreiashu/countrybed/internal/tui"
	"github.com/andreiashu/countrybed/internal/web"
)

func newBrowseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "browse",
		Aliases: []string{"b"},
		Short:   "Browse countries in the terminal",
		Long: `Opens the interactive terminal browser.

Keys:
  type            search by name
  tab/shift+tab   cycle the region filter
  ↑/↓ enter       pick a country
  ←/→ enter       follow a border country
  esc             back to the listing
  ctrl+t          toggle dark mode
  ctrl+c          quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bed, err := a.loadBed()
			if err != nil {
				return err
			}
			return tui.Run(bed, a.cfg.UI.DarkMode)
		},
	}
	cmd.Flags().Bool("dark", false, "start in dark mode")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s"},
		Short:   "Serve the web directory and JSON API",
		Long: `Starts the web directory.

Pages:
  /                      listing (?q=name&region=Europe)
  /country/FRA           detail with border links

API:
  /api/countries         filtered, paginated list (?q, region, limit, offset)
  /api/countries/FRA     one country with resolved borders
  /api/countries/FRA/closest?n=5
  /api/regions           per-region summary
  /api/suggest?q=germny  "did you mean" names
  /api/nearest?lat=46.5&lng=2.2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bed, err := a.loadBed()
			if err != nil {
				return err
			}
			srv, err := web.New(bed, web.Options{
				Addr:     a.cfg.Addr(),
				DarkMode: a.cfg.UI.DarkMode,
				Logger:   a.logger,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}
	cmd.Flags().IntP("port", "p", 8080, "port to serve on")
	cmd.Flags().String("host", "localhost", "host to bind to")
	cmd.Flags().Bool("dark", false, "dark mode for visitors without a theme cookie")
	return cmd
}
