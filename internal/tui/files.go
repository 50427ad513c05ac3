package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"geokit/internal/geom"
	"geokit/internal/geomutil"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !geom.Supported(name) {
			continue
		}
		items = append(items, fileItem{
			title: name,
			desc:  strings.ToLower(filepath.Ext(name)),
			path:  filepath.Join(m.cwd, name),
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath replaces the dataset with the contents of p.
func (m *Model) loadPath(p string) {
	m.selPath = p
	vs, err := geom.Load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		m.cfg.Log.WithError(err).WithField("path", p).Warn("load failed")
		return
	}
	m.setValues(vs)
	m.status = "loaded: " + filepath.Base(p) + "  " + m.countsLabel()
}

// setValues replaces the dataset and resets the viewport.
func (m *Model) setValues(vs []geomutil.Value) {
	m.values = vs
	m.selected = -1
	if len(vs) > 0 {
		m.selected = 0
	}
	m.bbox = fitBound(geom.Bounds(vs))
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	pts, lines, polys := geom.Counts(vs)
	// prefer polys > lines > points for visibility
	m.showPolys = polys > 0
	m.showLines = lines > 0
	m.showPoints = pts > 0 && polys == 0
	if m.showAttrs {
		m.refreshGrid()
	}
}

func (m Model) countsLabel() string {
	pts, lines, polys := geom.Counts(m.values)
	return fmt.Sprintf("counts: pts=%d ls=%d poly=%d", pts, lines, polys)
}
