// Package cli holds the geokit command tree. Configuration can come from a
// file (--config), from command-line flags or from GEOKIT_* environment
// variables.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"geokit/internal/geomutil"
)

// option is a configuration variable that is settable by flag, environment
// variable or config file.
type option struct {
	name, usage, shorthand string
	defaultVal             any
	flagsets               []*pflag.FlagSet
}

// app carries the state shared by one command tree.
type app struct {
	cfg    *viper.Viper
	log    *logrus.Logger
	engine *geomutil.Engine
	// logFile is closed after the command finishes.
	logFile io.Closer
}

// NewRoot builds the geokit command tree with a fresh configuration.
func NewRoot() *cobra.Command {
	a := &app{cfg: viper.New(), log: logrus.New()}

	root := &cobra.Command{
		Use:   "geokit",
		Short: "Planar geometry operations on GeoJSON, WKT, CSV and KML files.",
		Long: `geokit splits, buffers, merges, unions, differences and intersects planar
geometries. Results are written to standard output as GeoJSON. Inputs that are
features produce features; bare geometries produce bare geometries.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'GEOKIT_var' where 'var' is
the name of the variable to be set, with dashes replaced by underscores.`,
		SilenceUsage:      true,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logFile != nil {
				a.logFile.Close()
			}
		},
	}

	split := a.splitCmd()
	buffer := a.bufferCmd()
	view := a.viewCmd()

	options := []option{
		{
			name:       "config",
			usage:      "config specifies the configuration file location.",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "crs",
			usage:      "crs is the coordinate reference system passed to every operation.",
			defaultVal: "EPSG:4326",
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "log-level",
			usage:      "log-level is one of panic, fatal, error, warn, info, debug or trace.",
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "log-file",
			usage:      "log-file receives log output instead of standard error.",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "assign-ids",
			usage:      "assign-ids gives every output feature a new UUID.",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{root.PersistentFlags()},
		},
		{
			name:       "distance",
			shorthand:  "d",
			usage:      "distance is the buffer distance in CRS units. Negative values shrink polygons.",
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{buffer.Flags(), view.Flags()},
		},
		{
			name:       "attributes",
			usage:      "attributes lists the feature properties shown in the viewer, in order. Empty shows all.",
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{view.Flags()},
		},
		{
			name:       "name-column-width",
			usage:      "name-column-width is the attribute name column width as a percentage of the grid.",
			defaultVal: 50,
			flagsets:   []*pflag.FlagSet{view.Flags()},
		},
	}

	a.cfg.SetEnvPrefix("GEOKIT")
	a.cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.cfg.AutomaticEnv()

	for _, o := range options {
		for i, set := range o.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(o.flagsets[0].Lookup(o.name))
				continue
			}
			switch v := o.defaultVal.(type) {
			case string:
				set.StringP(o.name, o.shorthand, v, o.usage)
			case []string:
				set.StringSliceP(o.name, o.shorthand, v, o.usage)
			case bool:
				set.BoolP(o.name, o.shorthand, v, o.usage)
			case int:
				set.IntP(o.name, o.shorthand, v, o.usage)
			case float64:
				set.Float64P(o.name, o.shorthand, v, o.usage)
			default:
				panic("invalid argument type")
			}
			a.cfg.BindPFlag(o.name, set.Lookup(o.name))
		}
	}

	root.AddCommand(split, buffer, a.mergeCmd(), a.unionCmd(),
		a.differenceCmd(), a.intersectionCmd(), view)
	return root
}

// Execute runs the command tree against os.Args and exits non-zero on
// failure.
func Execute() {
	if err := NewRoot().Execute(); err != nil {
		os.Exit(1)
	}
}

// setup reads the configuration file, if there is one, and builds the logger
// and engine from the resulting configuration.
func (a *app) setup(cmd *cobra.Command) error {
	if path := a.cfg.GetString("config"); path != "" {
		a.cfg.SetConfigFile(path)
		if err := a.cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("geokit: problem reading configuration file: %w", err)
		}
	}

	lvl, err := logrus.ParseLevel(a.cfg.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("geokit: %w", err)
	}
	a.log.SetLevel(lvl)
	a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	a.log.SetOutput(cmd.ErrOrStderr())
	if path := a.cfg.GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("geokit: opening log file: %w", err)
		}
		a.log.SetOutput(f)
		a.log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		a.logFile = f
	}

	opts := []geomutil.Option{geomutil.WithLogger(a.log)}
	if a.cfg.GetBool("assign-ids") {
		opts = append(opts, geomutil.WithIDGenerator(func() any { return uuid.NewString() }))
	}
	a.engine = geomutil.New(opts...)
	a.log.WithFields(logrus.Fields{
		"command": cmd.Name(),
		"crs":     a.crs(),
		"config":  a.cfg.ConfigFileUsed(),
	}).Debug("configured")
	return nil
}

func (a *app) crs() string { return a.cfg.GetString("crs") }
