package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andreiashu/countrybed"
)

func newListCmd(a *app) *cobra.Command {
	var search, region, output string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"l"},
		Short:   "List countries, optionally filtered by name and region",
		Example: `  countrybed list --search land
  countrybed list --region Europe --output yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			bed, err := a.loadBed()
			if err != nil {
				return err
			}
			if region != "" && !countrybed.IsRegion(region) {
				a.logger.Sugar().Warnf("region %q is not one of %s; matching it exactly anyway",
					region, strings.Join(countrybed.Regions, ", "))
			}

			countries := bed.Filter(search, region)
			out := cmd.OutOrStdout()
			if output != outputTable {
				return writeStructured(out, output, countries)
			}
			if len(countries) == 0 {
				fmt.Fprintln(out, "No countries found matching your criteria.")
				if s := bed.Suggest(search, 3); len(s) > 0 {
					fmt.Fprintf(out, "Did you mean: %s?\n", strings.Join(s, ", "))
				}
				return nil
			}
			rows := make([][]string, len(countries))
			for i, c := range countries {
				rows[i] = []string{c.CCA3, c.Name, c.FormattedPopulation(), c.Region, c.CapitalOrNA()}
			}
			return writeTable(out, []string{"Code", "Name", "Population", "Region", "Capital"}, rows)
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive name substring")
	cmd.Flags().StringVarP(&region, "region", "r", "", "exact region ("+strings.Join(countrybed.Regions, ", ")+")")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, json or yaml")
	return cmd
}

// showResult is a country with its resolved border names.
type showResult struct {
	countrybed.Country `yaml:",inline"`
	BorderNames        []string `json:"borderNames" yaml:"borderNames"`
}

func newShowCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <code|name>",
		Short: "Show one country by alpha-3 code or exact name",
		Example: `  countrybed show FRA
  countrybed show "Korea (Republic of)"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			bed, err := a.loadBed()
			if err != nil {
				return err
			}
			c, ok := bed.ByCode(args[0])
			if !ok {
				c, ok = bed.ByName(args[0])
			}
			if !ok {
				msg := fmt.Sprintf("no country with code or name %q", args[0])
				if s := bed.Suggest(args[0], 3); len(s) > 0 {
					msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(s, ", "))
				}
				return errors.New(msg)
			}

			out := cmd.OutOrStdout()
			if output != outputTable {
				return writeStructured(out, output, showResult{Country: c, BorderNames: bed.BorderNames(c)})
			}
			borders := "none"
			if len(c.Borders) > 0 {
				borders = strings.Join(bed.BorderNames(c), ", ")
			}
			rows := [][]string{
				{"Native Name", c.NativeName},
				{"Population", c.FormattedPopulation()},
				{"Region", c.Region},
				{"Sub Region", c.Subregion},
				{"Capital", c.CapitalOrNA()},
				{"Top Level Domain", c.TLD},
				{"Currencies", c.Currencies},
				{"Languages", c.Languages},
				{"Border Countries", borders},
				{"Flag", c.Flag},
			}
			if c.HasCoordinates {
				rows = append(rows, []string{"Centroid", fmt.Sprintf("%s, %s (%s)", formatFloat(c.Latitude), formatFloat(c.Longitude), c.Geohash)})
			}
			return writeTable(out, []string{c.CCA3, c.Name}, rows)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, json or yaml")
	return cmd
}

func newRegionsCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "regions",
		Short: "Summarize the regions of the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			bed, err := a.loadBed()
			if err != nil {
				return err
			}
			summary := bed.RegionSummary()
			out := cmd.OutOrStdout()
			if output != outputTable {
				return writeStructured(out, output, summary)
			}
			rows := make([][]string, len(summary))
			for i, r := range summary {
				pop := countrybed.Country{Population: r.Population}.FormattedPopulation()
				rows[i] = []string{r.Name, strconv.Itoa(r.Countries), pop, strings.Join(r.Subregions, ", ")}
			}
			return writeTable(out, []string{"Region", "Countries", "Population", "Subregions"}, rows)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, json or yaml")
	return cmd
}

func newNearestCmd(a *app) *cobra.Command {
	var code, output string
	var n int

	cmd := &cobra.Command{
		Use:   "nearest [<lat> <lng>]",
		Short: "Find the country at a point, or the countries closest to another",
		Example: `  countrybed nearest 46.5 2.2
  countrybed nearest -- -25.3 131.0
  countrybed nearest --code FRA -n 3`,
		Args: func(cmd *cobra.Command, args []string) error {
			if code != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			bed, err := a.loadBed()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if code != "" {
				if _, ok := bed.ByCode(code); !ok {
					return fmt.Errorf("no country with code %q", code)
				}
				neighbors := bed.Closest(code, n)
				if output != outputTable {
					return writeStructured(out, output, neighbors)
				}
				rows := make([][]string, len(neighbors))
				for i, nb := range neighbors {
					rows[i] = []string{nb.Country.CCA3, nb.Country.Name, formatFloat(nb.DistanceKm)}
				}
				return writeTable(out, []string{"Code", "Name", "Distance (km)"}, rows)
			}

			lat, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid latitude %q: %w", args[0], err)
			}
			lng, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid longitude %q: %w", args[1], err)
			}
			c, ok := bed.CountryAt(lat, lng)
			if !ok {
				return fmt.Errorf("no country near %s, %s", args[0], args[1])
			}
			if output != outputTable {
				return writeStructured(out, output, c)
			}
			return writeTable(out, []string{"Code", "Name", "Region"}, [][]string{{c.CCA3, c.Name, c.Region}})
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "alpha-3 code of the reference country")
	cmd.Flags().IntVarP(&n, "count", "n", 5, "number of closest countries with --code")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, json or yaml")
	return cmd
}
