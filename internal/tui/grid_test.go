package tui

import (
	"testing"

	table "github.com/charmbracelet/bubbles/table"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
)

func parcel() *geojson.Feature {
	f := geojson.NewFeature(orb.Point{1, 2})
	f.ID = 42
	f.Properties["owner"] = "city"
	f.Properties["area"] = 1250.5
	f.Properties["public"] = true
	f.Properties["tags"] = []any{"a", "b"}
	f.Properties["note"] = nil
	return f
}

func TestPropertyGridDefaults(t *testing.T) {
	g := NewPropertyGrid(parcel())

	assert.Equal(t, "Feature 42", g.Title())
	assert.Equal(t, []string{"area", "note", "owner", "public", "tags"}, g.Keys())
	assert.Equal(t, []table.Row{
		{"area", "1250.5"},
		{"note", ""},
		{"owner", "city"},
		{"public", "true"},
		{"tags", `["a","b"]`},
	}, g.Rows())
}

func TestPropertyGridOptions(t *testing.T) {
	g := NewPropertyGrid(parcel(),
		WithAttributeFilter([]string{"public", "missing", "owner"}),
		WithAttributeNames(map[string]string{"owner": "Owner"}),
	)
	assert.Equal(t, []table.Row{{"public", "true"}, {"Owner", "city"}}, g.Rows())

	g = NewPropertyGrid(parcel(), WithAttributeFilter([]string{}))
	assert.Empty(t, g.Rows())
}

func TestPropertyGridWidths(t *testing.T) {
	g := NewPropertyGrid(parcel())
	g.SetSize(104, 10)
	name, value := g.ColumnWidths()
	assert.Equal(t, 50, name)
	assert.Equal(t, 50, value)

	g = NewPropertyGrid(parcel(), WithNameColumnWidth(25))
	g.SetSize(104, 10)
	name, value = g.ColumnWidths()
	assert.Equal(t, 25, name)
	assert.Equal(t, 75, value)

	cols := g.tbl.Columns()
	assert.Equal(t, 25, cols[0].Width)
	assert.Equal(t, 75, cols[1].Width)

	g = NewPropertyGrid(parcel(), WithNameColumnWidth(150))
	g.SetSize(104, 10)
	name, _ = g.ColumnWidths()
	assert.Equal(t, 50, name, "out of range percent keeps the default")
}

func TestPropertyGridNoID(t *testing.T) {
	g := NewPropertyGrid(geojson.NewFeature(orb.Point{}))
	assert.Equal(t, "Feature", g.Title())
	assert.Empty(t, g.Rows())
	assert.NotEmpty(t, g.View())
}
