package tui

import (
	"encoding/json"
	"fmt"
	"sort"

	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb/geojson"
)

// DefaultNameColumnWidth is the share of the grid width, in percent, given
// to the attribute name column.
const DefaultNameColumnWidth = 50

// PropertyGrid shows the properties of one feature as a two column
// name/value table. It never modifies the feature.
type PropertyGrid struct {
	feature *geojson.Feature
	filter  []string
	names   map[string]string
	namePct int

	width int
	tbl   table.Model
}

// GridOption configures a PropertyGrid.
type GridOption func(*PropertyGrid)

// WithAttributeFilter limits the grid to keys, shown in the given order.
// Keys missing from the feature are skipped.
func WithAttributeFilter(keys []string) GridOption {
	return func(g *PropertyGrid) { g.filter = keys }
}

// WithAttributeNames sets display labels for property keys.
func WithAttributeNames(names map[string]string) GridOption {
	return func(g *PropertyGrid) { g.names = names }
}

// WithNameColumnWidth sets the name column's share of the width in percent.
func WithNameColumnWidth(percent int) GridOption {
	return func(g *PropertyGrid) {
		if percent > 0 && percent < 100 {
			g.namePct = percent
		}
	}
}

func NewPropertyGrid(f *geojson.Feature, opts ...GridOption) PropertyGrid {
	g := PropertyGrid{feature: f, namePct: DefaultNameColumnWidth, width: 40}
	for _, o := range opts {
		o(&g)
	}
	g.tbl = table.New(
		table.WithColumns(g.columns()),
		table.WithRows(g.Rows()),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	return g
}

// Title names the feature shown.
func (g PropertyGrid) Title() string {
	if g.feature == nil || g.feature.ID == nil {
		return "Feature"
	}
	return fmt.Sprintf("Feature %v", g.feature.ID)
}

// Keys returns the property keys shown, in display order.
func (g PropertyGrid) Keys() []string {
	if g.feature == nil {
		return nil
	}
	if g.filter != nil {
		keys := make([]string, 0, len(g.filter))
		for _, k := range g.filter {
			if _, ok := g.feature.Properties[k]; ok {
				keys = append(keys, k)
			}
		}
		return keys
	}
	keys := make([]string, 0, len(g.feature.Properties))
	for k := range g.feature.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (g PropertyGrid) Rows() []table.Row {
	keys := g.Keys()
	rows := make([]table.Row, 0, len(keys))
	for _, k := range keys {
		label := k
		if l, ok := g.names[k]; ok && l != "" {
			label = l
		}
		rows = append(rows, table.Row{label, formatValue(g.feature.Properties[k])})
	}
	return rows
}

// ColumnWidths returns the name and value column widths for the current
// grid width.
func (g PropertyGrid) ColumnWidths() (name, value int) {
	// two cells of padding per column
	inner := max(2, g.width-4)
	name = max(1, inner*g.namePct/100)
	value = max(1, inner-name)
	return name, value
}

func (g PropertyGrid) columns() []table.Column {
	nw, vw := g.ColumnWidths()
	return []table.Column{{Title: "Name", Width: nw}, {Title: "Value", Width: vw}}
}

// SetSize resizes the grid, keeping the column ratio.
func (g *PropertyGrid) SetSize(w, h int) {
	g.width = w
	g.tbl.SetColumns(g.columns())
	g.tbl.SetWidth(w)
	g.tbl.SetHeight(h)
}

func (g PropertyGrid) Update(msg tea.Msg) (PropertyGrid, tea.Cmd) {
	var cmd tea.Cmd
	g.tbl, cmd = g.tbl.Update(msg)
	return g, cmd
}

func (g PropertyGrid) View() string {
	return titleStyle.Render(g.Title()) + "\n" + g.tbl.View()
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}
