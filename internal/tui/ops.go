package tui

import (
	"fmt"

	"geokit/internal/geom"
	"geokit/internal/geomutil"
)

// appendResults adds operation results to the dataset and selects the
// first of them.
func (m *Model) appendResults(op string, vs ...geomutil.Value) {
	if len(vs) == 0 {
		m.status = op + ": no result"
		return
	}
	first := len(m.values)
	m.values = append(m.values, vs...)
	m.selected = first
	m.bbox = fitBound(geom.Bounds(m.values))
	pts, lines, polys := geom.Counts(vs)
	m.showPoints = m.showPoints || pts > 0
	m.showLines = m.showLines || lines > 0
	m.showPolys = m.showPolys || polys > 0
	m.status = fmt.Sprintf("%s: %d result(s)  %s", op, len(vs), m.countsLabel())
	if m.showAttrs {
		m.refreshGrid()
	}
}

func (m *Model) opFailed(op string, err error) {
	m.status = op + " error: " + err.Error()
	m.cfg.Log.WithError(err).WithField("op", op).Warn("viewer operation failed")
}

func (m *Model) bufferSelected() {
	v, ok := m.Selected()
	if !ok {
		m.status = "buffer: nothing selected"
		return
	}
	out, err := m.cfg.Engine.AddBuffer(v, m.cfg.BufferDistance, m.cfg.CRS)
	if err != nil {
		m.opFailed("buffer", err)
		return
	}
	m.appendResults("buffer", out)
}

func (m *Model) unionPolygons() {
	var polys []geomutil.Value
	for _, v := range m.values {
		if v.Kind().Base() == geomutil.KindPolygon {
			polys = append(polys, v)
		}
	}
	out, err := m.cfg.Engine.Union(polys, m.cfg.CRS)
	if err != nil {
		m.opFailed("union", err)
		return
	}
	m.appendResults("union", out)
}

// mergeSelectedKind merges every value sharing the selected value's base
// kind.
func (m *Model) mergeSelectedKind() {
	sel, ok := m.Selected()
	if !ok {
		m.status = "merge: nothing selected"
		return
	}
	var same []geomutil.Value
	for _, v := range m.values {
		if v.Kind().Base() == sel.Kind().Base() {
			same = append(same, v)
		}
	}
	out, err := m.cfg.Engine.MergeGeometries(same)
	if err != nil {
		m.opFailed("merge", err)
		return
	}
	m.appendResults("merge", out)
}

// splitFirst splits the first polygon by the first line.
func (m *Model) splitFirst() {
	var poly, line *geomutil.Value
	for i := range m.values {
		switch m.values[i].Kind() {
		case geomutil.KindPolygon:
			if poly == nil {
				poly = &m.values[i]
			}
		case geomutil.KindLineString, geomutil.KindMultiLineString:
			if line == nil {
				line = &m.values[i]
			}
		}
	}
	if poly == nil || line == nil {
		m.status = "split: need a polygon and a line"
		return
	}
	pieces, err := m.cfg.Engine.SplitByLine(*poly, *line, m.cfg.CRS)
	if err != nil {
		m.opFailed("split", err)
		return
	}
	m.appendResults("split", pieces...)
}

func (m *Model) selectNext(step int) {
	n := len(m.values)
	if n == 0 {
		return
	}
	m.selected = ((m.selected+step)%n + n) % n
	v := m.values[m.selected]
	m.status = fmt.Sprintf("selected %d/%d: %s %s", m.selected+1, n, v.Shape(), v.Kind())
	if m.showAttrs {
		m.refreshGrid()
	}
}

// refreshGrid shows the selected feature's properties, or hides the grid
// when the selection is a bare geometry.
func (m *Model) refreshGrid() {
	v, ok := m.Selected()
	if !ok || !v.IsFeature() {
		m.showAttrs = false
		m.status = "no attributes for current selection"
		return
	}
	m.grid = NewPropertyGrid(v.Feature(), m.gridOptions()...)
	if len(m.grid.Keys()) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current selection"
	}
}
