/*
Copyright © 2019 the Icecore authors.
This file is part of Icecore.

Icecore is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Icecore is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Icecore.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package icecoreutil holds the command-line glue for the icecore
// tool: flag and configuration handling and the fetch, plot, stats,
// and export commands.
package icecoreutil

import (
	"context"
	"fmt"
	"os"

	"github.com/lnashier/viper"
	"github.com/spatialclim/icecore"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gonum.org/v1/plot/vg"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to icecore.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "cache_dir",
			usage: `
              cache_dir is the directory holding cached dataset tables.
              The default is the per-user cache directory for this tool.`,
			defaultVal: icecore.DefaultCacheDir(),
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "datasets",
			usage: `
              datasets is the location of a TOML file describing additional
              datasets to make available alongside the built-in ones.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "no_cache",
			usage: `
              no_cache disables reading previously cached tables, forcing a
              fresh download.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{fetchCmd.Flags(), plotCmd.Flags(), statsCmd.Flags(), exportCmd.Flags()},
		},
		{
			name: "write_cache",
			usage: `
              write_cache saves the fetched table to the cache so later
              invocations can skip the network.`,
			shorthand:  "w",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{fetchCmd.Flags(), plotCmd.Flags(), statsCmd.Flags(), exportCmd.Flags()},
		},
		{
			name: "output",
			usage: `
              output is the file to write. If empty, a name is derived from
              the dataset identifier.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{plotCmd.Flags(), exportCmd.Flags()},
		},
		{
			name: "width",
			usage: `
              width is the chart width in inches.`,
			defaultVal: 7.0,
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
		{
			name: "height",
			usage: `
              height is the chart height in inches.`,
			defaultVal: 5.0,
			flagsets:   []*pflag.FlagSet{plotCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("ICECORE")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(fetchCmd)
	Root.AddCommand(plotCmd)
	Root.AddCommand(statsCmd)
	Root.AddCommand(exportCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("icecore: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "icecore",
	Short: "Fetch, cache, and chart public climate datasets.",
	Long: `icecore downloads public climate datasets (currently the Antarctic
Vostok ice-core CO2 and temperature records), caches them locally, and
reshapes them into a tidy long-format table for charting or export.

Configuration can be changed by using a configuration file (and providing
the path to the file using the --config flag), by using command-line
arguments, or by setting environment variables in the format 'ICECORE_var'
where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of icecore.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("icecore v%s\n", icecore.Version)
	},
	DisableAutoGenTag: true,
}

// dataset resolves the dataset named by args; with no argument the
// built-in Vostok "paleo" dataset is used. Descriptors loaded from
// the --datasets file take precedence over built-ins with the same
// identifier.
func dataset(args []string) (*icecore.Dataset, error) {
	cache := &icecore.CacheStore{Root: Cfg.GetString("cache_dir")}
	id := "paleo"
	if len(args) > 0 {
		id = args[0]
	}
	if f := Cfg.GetString("datasets"); f != "" {
		ds, err := icecore.LoadDatasets(f, cache)
		if err != nil {
			return nil, err
		}
		for _, d := range ds {
			if d.ID == id {
				return d, nil
			}
		}
	}
	if id == "paleo" {
		return icecore.Vostok(cache), nil
	}
	return nil, fmt.Errorf("icecore: no dataset %s", id)
}

func fetchOptions() icecore.FetchOptions {
	return icecore.FetchOptions{
		UseCache:   !cast.ToBool(Cfg.Get("no_cache")),
		WriteCache: cast.ToBool(Cfg.Get("write_cache")),
	}
}

// outputFile returns the --output value, or a name derived from the
// dataset identifier when none was given.
func outputFile(d *icecore.Dataset, ext string) string {
	if o := Cfg.GetString("output"); o != "" {
		return o
	}
	return d.ID + ext
}

// fetchTable runs the dataset pipeline for the named dataset. The
// returned table is nil, with no error, when there was no
// connectivity and no cached copy.
func fetchTable(args []string) (*icecore.Dataset, *icecore.Table, error) {
	d, err := dataset(args)
	if err != nil {
		return nil, nil, err
	}
	t, err := d.Fetch(context.Background(), fetchOptions())
	if err != nil {
		return nil, nil, err
	}
	return d, t, nil
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [dataset]",
	Short: "Fetch a dataset and report its shape.",
	Long: `fetch downloads (or reads from the cache) the named dataset and
prints the number of observations in each series. With --write_cache the
normalized table is saved for later invocations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, t, err := fetchTable(args)
		if err != nil {
			return err
		}
		if t == nil {
			return nil // The fetcher has already said why.
		}
		for _, s := range t.Series() {
			keys, _ := t.SeriesData(s)
			fmt.Printf("%s/%s: %d observations\n", d.ID, s, len(keys))
		}
		return nil
	},
	DisableAutoGenTag: true,
}

var plotCmd = &cobra.Command{
	Use:   "plot [dataset]",
	Short: "Render the standard chart for a dataset.",
	Long: `plot fetches the named dataset and renders its standard stacked
chart (for the Vostok record, CO2 over temperature against ice age) to a
PNG file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, t, err := fetchTable(args)
		if err != nil {
			return err
		}
		if t == nil {
			return nil
		}
		out := outputFile(d, ".png")
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("icecore: creating chart file: %v", err)
		}
		width := vg.Length(Cfg.GetFloat64("width")) * vg.Inch
		height := vg.Length(Cfg.GetFloat64("height")) * vg.Inch
		if err := icecore.Chart(t, f, width, height); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("icecore: writing chart file: %v", err)
		}
		fmt.Printf("wrote %s\n", out)
		return nil
	},
	DisableAutoGenTag: true,
}

var statsCmd = &cobra.Command{
	Use:   "stats [dataset]",
	Short: "Print summary statistics for a dataset.",
	Long: `stats fetches the named dataset and prints per-series summary
statistics, plus the correlation between the first two series when the
dataset has more than one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, t, err := fetchTable(args)
		if err != nil {
			return err
		}
		if t == nil {
			return nil
		}
		for _, s := range icecore.Summary(t) {
			fmt.Printf("%s/%s: n=%d min=%g max=%g mean=%g stddev=%g %s=[%g,%g]\n",
				d.ID, s.Series, s.N, s.Min, s.Max, s.Mean, s.StdDev,
				t.KeyName, s.KeyMin, s.KeyMax)
		}
		if len(d.Columns) >= 2 {
			r, err := icecore.Correlation(t, d.Columns[0], d.Columns[1])
			if err != nil {
				return err
			}
			fmt.Printf("%s: correlation(%s,%s)=%g\n", d.ID, d.Columns[0], d.Columns[1], r)
		}
		return nil
	},
	DisableAutoGenTag: true,
}

var exportCmd = &cobra.Command{
	Use:   "export [dataset]",
	Short: "Export a dataset to a spreadsheet.",
	Long: `export fetches the named dataset and writes its long-format table
to an xlsx spreadsheet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, t, err := fetchTable(args)
		if err != nil {
			return err
		}
		if t == nil {
			return nil
		}
		out := outputFile(d, ".xlsx")
		if err := ExportXLSX(t, out); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", out)
		return nil
	},
	DisableAutoGenTag: true,
}
