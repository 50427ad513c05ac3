package cli

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"geokit/internal/geom"
	"geokit/internal/geomutil"
	"geokit/internal/tui"
)

func (a *app) splitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "split <polygon-file> <line-file>",
		Short: "Split the first polygon in one file by the first line in another",
		Long: `split cuts the first polygon found in polygon-file along the first line
string or multi line string found in line-file and prints the resulting pieces.
A line that does not cross the polygon yields a single copy of the polygon.`,
		Args:              cobra.ExactArgs(2),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			poly, err := a.first(args[0], "polygon", geomutil.KindPolygon)
			if err != nil {
				return err
			}
			line, err := a.first(args[1], "line", geomutil.KindLineString, geomutil.KindMultiLineString)
			if err != nil {
				return err
			}
			pieces, err := a.engine.SplitByLine(poly, line, a.crs())
			if err != nil {
				return err
			}
			return geom.Encode(cmd.OutOrStdout(), pieces)
		},
	}
}

func (a *app) bufferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buffer <file>",
		Short: "Buffer every geometry in a file",
		Long: `buffer grows each geometry in file by --distance. Points and lines become
polygons; polygons grow, or shrink for a negative distance.`,
		Args:              cobra.ExactArgs(1),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			vs, err := a.load(args...)
			if err != nil {
				return err
			}
			d := a.cfg.GetFloat64("distance")
			out := make([]geomutil.Value, 0, len(vs))
			for _, v := range vs {
				b, err := a.engine.AddBuffer(v, d, a.crs())
				if err != nil {
					return err
				}
				out = append(out, b)
			}
			return geom.Encode(cmd.OutOrStdout(), out)
		},
	}
}

func (a *app) mergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "merge <file>...",
		Short:             "Merge same-kind geometries into one multi-part geometry",
		Args:              cobra.MinimumNArgs(1),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			vs, err := a.load(args...)
			if err != nil {
				return err
			}
			out, err := a.engine.MergeGeometries(vs)
			if err != nil {
				return err
			}
			return geom.Encode(cmd.OutOrStdout(), []geomutil.Value{out})
		},
	}
}

func (a *app) unionCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "union <file>...",
		Short:             "Dissolve every polygon in the given files into one",
		Args:              cobra.MinimumNArgs(1),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			vs, err := a.load(args...)
			if err != nil {
				return err
			}
			out, err := a.engine.Union(vs, a.crs())
			if err != nil {
				return err
			}
			return geom.Encode(cmd.OutOrStdout(), []geomutil.Value{out})
		},
	}
}

func (a *app) differenceCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "difference <a-file> <b-file>",
		Short:             "Subtract the first polygon of b-file from the first polygon of a-file",
		Args:              cobra.ExactArgs(2),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := a.pair(args)
			if err != nil {
				return err
			}
			out, err := a.engine.Difference(x, y, a.crs())
			if err != nil {
				return err
			}
			return geom.Encode(cmd.OutOrStdout(), []geomutil.Value{out})
		},
	}
}

func (a *app) intersectionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "intersection <a-file> <b-file>",
		Short: "Intersect the first polygons of two files",
		Long: `intersection prints the overlap of the first polygon of a-file and the first
polygon of b-file, or null when they do not overlap.`,
		Args:              cobra.ExactArgs(2),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := a.pair(args)
			if err != nil {
				return err
			}
			out, ok, err := a.engine.Intersection(x, y, a.crs())
			if err != nil {
				return err
			}
			if !ok {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "null")
				return err
			}
			return geom.Encode(cmd.OutOrStdout(), []geomutil.Value{out})
		},
	}
}

func (a *app) viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [file]",
		Short: "Open the terminal viewer",
		Long: `view draws the geometries of file on a braille map and lets operations be
applied interactively. Press h for key help and q to quit.`,
		Args:              cobra.MaximumNArgs(1),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.GetString("log-file") == "" {
				// the alternate screen owns the terminal
				a.log.SetOutput(io.Discard)
			}
			cfg := a.viewerConfig()
			var m tea.Model
			if len(args) > 0 {
				m = tui.NewWithPath(cfg, args[0])
			} else {
				m = tui.New(cfg)
			}
			_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
			return err
		},
	}
}

func (a *app) viewerConfig() tui.Config {
	return tui.Config{
		Engine:          a.engine,
		Log:             a.log.WithField("component", "viewer"),
		CRS:             a.crs(),
		BufferDistance:  a.cfg.GetFloat64("distance"),
		AttributeFilter: a.attributeFilter(),
		AttributeNames:  a.cfg.GetStringMapString("attribute-names"),
		NameColumnWidth: a.cfg.GetInt("name-column-width"),
	}
}

// attributeFilter returns nil, meaning every property, unless attributes
// were configured.
func (a *app) attributeFilter() []string {
	attrs := a.cfg.GetStringSlice("attributes")
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}

func (a *app) load(paths ...string) ([]geomutil.Value, error) {
	var out []geomutil.Value
	for _, p := range paths {
		vs, err := geom.Load(p)
		if err != nil {
			return nil, err
		}
		a.log.WithFields(logrus.Fields{"path": p, "values": len(vs)}).Trace("loaded")
		out = append(out, vs...)
	}
	return out, nil
}

// first returns the first value in path whose kind is one of kinds.
func (a *app) first(path, what string, kinds ...geomutil.Kind) (geomutil.Value, error) {
	vs, err := a.load(path)
	if err != nil {
		return geomutil.Value{}, err
	}
	for _, v := range vs {
		for _, k := range kinds {
			if v.Kind() == k {
				return v, nil
			}
		}
	}
	return geomutil.Value{}, fmt.Errorf("geokit: no %s in %s", what, path)
}

func (a *app) pair(args []string) (x, y geomutil.Value, err error) {
	kinds := []geomutil.Kind{geomutil.KindPolygon, geomutil.KindMultiPolygon}
	if x, err = a.first(args[0], "polygon", kinds...); err != nil {
		return
	}
	y, err = a.first(args[1], "polygon", kinds...)
	return
}
