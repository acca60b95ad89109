/*
Copyright © 2019 the trigrid authors.
This file is part of trigrid.

trigrid is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

trigrid is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with trigrid.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package trigridutil holds the trigrid command-line interface.
package trigridutil

import (
	"fmt"
	"os"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/trigrid"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to trigrid.
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
			name: "verbose",
			usage: `
              verbose specifies whether to log debugging messages, including
              the number of nodes kept and dropped when zones are merged.`,
			shorthand:  "v",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "dims",
			usage: `
              dims specifies the number of points in the x and y directions.
              Each must be at least 2.`,
			defaultVal: []int{3, 3},
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "x1",
			usage: `
              x1 specifies the x coordinate of the left edge of the grid.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "x2",
			usage: `
              x2 specifies the x coordinate of the right edge of the grid.
              It must be greater than x1.`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "y1",
			usage: `
              y1 specifies the y coordinate of the bottom edge of the grid.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "y2",
			usage: `
              y2 specifies the y coordinate of the top edge of the grid.
              It must be greater than y1.`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{generateCmd.Flags()},
		},
		{
			name: "layout",
			usage: `
              layout specifies the path to a TOML file listing the zones
              to build, one [[Zone]] table per zone with the fields Name,
              Nx, Ny, X and Y.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{buildCmd.Flags()},
		},
		{
			name: "input",
			usage: `
              input specifies the grid files to merge. Files ending in .gob
              are read as saved grids and all others as Tecplot files.`,
			shorthand:  "i",
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{mergeCmd.Flags()},
		},
		{
			name: "output",
			usage: `
              output specifies the file to write the grid to. Files ending in
              .gob are written as saved grids and all others as Tecplot files.`,
			shorthand:  "o",
			defaultVal: "grid.dat",
			flagsets:   []*pflag.FlagSet{generateCmd.Flags(), buildCmd.Flags(), mergeCmd.Flags()},
		},
		{
			name: "merged",
			usage: `
              merged specifies whether to write the whole grid as a single
              Tecplot zone instead of one zone per source grid.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{generateCmd.Flags(), buildCmd.Flags(), mergeCmd.Flags()},
		},
		{
			name: "algorithm",
			usage: `
              algorithm specifies how nodes shared between zones are found:
              'quadratic' compares every pair of nodes, 'onesided' and
              'twosided' keep the nodes sorted by x and search them by
              bisection.`,
			shorthand:  "a",
			defaultVal: "onesided",
			flagsets:   []*pflag.FlagSet{buildCmd.Flags(), mergeCmd.Flags(), checkCmd.Flags(), shpCmd.Flags()},
		},
		{
			name: "eps",
			usage: `
              eps specifies the distance in each direction within which two
              nodes are considered to be the same.`,
			defaultVal: trigrid.DefaultEps,
			flagsets:   []*pflag.FlagSet{buildCmd.Flags(), mergeCmd.Flags(), checkCmd.Flags(), shpCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("TRIGRID")
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
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case []int:
				if option.shorthand == "" {
					set.IntSlice(option.name, option.defaultVal.([]int), option.usage)
				} else {
					set.IntSliceP(option.name, option.shorthand, option.defaultVal.([]int), option.usage)
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
	Root.AddCommand(generateCmd)
	Root.AddCommand(buildCmd)
	Root.AddCommand(mergeCmd)
	Root.AddCommand(checkCmd)
	Root.AddCommand(shpCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets up logging.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("trigrid: problem reading configuration file: %v", err)
		}
	}
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})
	if Cfg.GetBool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
	return nil
}

// nodeMerger returns the node merger selected by the algorithm and eps
// options.
func nodeMerger() (trigrid.NodeMerger, error) {
	eps, err := cast.ToFloat64E(Cfg.Get("eps"))
	if err != nil {
		return nil, fmt.Errorf("trigrid: reading 'eps': %v", err)
	}
	return trigrid.NewNodeMerger(Cfg.GetString("algorithm"), eps)
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "trigrid",
	Short: "Build, merge and check triangular grids.",
	Long: `trigrid builds structured triangular grids over rectangles, merges grids
that share nodes along their boundaries, and reads and writes them in the
Tecplot FETRIANGLE text format.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'TRIGRID_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of trigrid.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("trigrid v%s\n", trigrid.Version)
	},
	DisableAutoGenTag: true,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Create a regular triangular grid",
	Long: `generate creates a grid of points spread evenly over the rectangle given
by x1, x2, y1 and y2, splits each cell into two triangles along the
diagonal from its top left to its bottom right corner, and writes the
result to the output file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dims, err := cast.ToIntSliceE(Cfg.Get("dims"))
		if err != nil {
			return fmt.Errorf("trigrid: reading 'dims': %v", err)
		}
		if len(dims) != 2 {
			return fmt.Errorf("trigrid: 'dims' must have two values but has %d", len(dims))
		}
		var r [4]float64
		for i, name := range []string{"x1", "x2", "y1", "y2"} {
			if r[i], err = cast.ToFloat64E(Cfg.Get(name)); err != nil {
				return fmt.Errorf("trigrid: reading '%s': %v", name, err)
			}
		}
		return Generate(dims[0], dims[1], [2]float64{r[0], r[1]}, [2]float64{r[2], r[3]},
			os.ExpandEnv(Cfg.GetString("output")), Cfg.GetBool("merged"))
	},
	DisableAutoGenTag: true,
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Create a grid from a zone layout",
	Long: `build creates one regular grid for each zone in the layout file, merges
the nodes the zones share, and writes the result to the output file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := nodeMerger()
		if err != nil {
			return err
		}
		return Build(os.ExpandEnv(Cfg.GetString("layout")), os.ExpandEnv(Cfg.GetString("output")),
			m, Cfg.GetBool("merged"))
	},
	DisableAutoGenTag: true,
}

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge grid files",
	Long: `merge reads the input grid files, merges the nodes they share, and
writes the result to the output file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := nodeMerger()
		if err != nil {
			return err
		}
		inputs, err := cast.ToStringSliceE(Cfg.Get("input"))
		if err != nil {
			return fmt.Errorf("trigrid: reading 'input': %v", err)
		}
		return Merge(expandStringSlice(inputs), os.ExpandEnv(Cfg.GetString("output")),
			m, Cfg.GetBool("merged"))
	},
	DisableAutoGenTag: true,
}

var checkCmd = &cobra.Command{
	Use:   "check file...",
	Short: "Check grid files",
	Long: `check reads each grid file and reports the first structural problem it
finds: missing or one-sided links, edges or faces with the wrong number of
nodes, or nodes within eps of each other.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := nodeMerger()
		if err != nil {
			return err
		}
		eps, err := cast.ToFloat64E(Cfg.Get("eps"))
		if err != nil {
			return fmt.Errorf("trigrid: reading 'eps': %v", err)
		}
		for _, f := range expandStringSlice(args) {
			if err := Check(f, m, eps); err != nil {
				return err
			}
		}
		return nil
	},
	DisableAutoGenTag: true,
}

var shpCmd = &cobra.Command{
	Use:   "shp input output",
	Short: "Write grid faces to a shapefile",
	Long: `shp reads a grid file and writes its faces to a polygon shapefile with
the face ID, zone and area as attributes.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := nodeMerger()
		if err != nil {
			return err
		}
		return Shapefile(os.ExpandEnv(args[0]), os.ExpandEnv(args[1]), m)
	},
	DisableAutoGenTag: true,
}

// expandStringSlice expands the environment variables in a slice of strings.
func expandStringSlice(s []string) []string {
	for i := 0; i < len(s); i++ {
		s[i] = os.ExpandEnv(s[i])
	}
	return s
}
