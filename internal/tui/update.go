package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"

	"geokit/internal/geom"
	"geokit/internal/geomutil"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2

	zoomStep = 1.2
	minZoom  = 0.05
	maxZoom  = 64
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		_, _, m.mapW, m.mapH = m.mapArea()
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.mapH-2)
		}
	case tea.KeyMsg:
		// the file filter swallows every key while it is open
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if m.showAttrs && key.Matches(msg, keys.GridScroll) {
			var cmd tea.Cmd
			m.grid, cmd = m.grid.Update(msg)
			return m, cmd
		}
		if m.handleKey(msg) {
			return m, tea.Quit
		}
	case tea.MouseMsg:
		m.hover(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		g, err := geom.ParseWKT(w)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		m.pasteMode = false
		m.ta.Blur()
		m.appendResults("paste", geomutil.Bare(g))
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// handleKey applies a global key binding and reports whether the viewer
// should quit.
func (m *Model) handleKey(msg tea.KeyMsg) (quit bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		return true
	case key.Matches(msg, keys.Points):
		m.showPoints = !m.showPoints
		m.status = fmt.Sprintf("points: %v", m.showPoints)
	case key.Matches(msg, keys.Lines):
		m.showLines = !m.showLines
		m.status = fmt.Sprintf("lines: %v", m.showLines)
	case key.Matches(msg, keys.Polys):
		m.showPolys = !m.showPolys
		m.status = fmt.Sprintf("polys: %v", m.showPolys)
	case key.Matches(msg, keys.Layers):
		all := m.showPoints && m.showLines && m.showPolys
		m.showPoints, m.showLines, m.showPolys = !all, !all, !all
		m.status = fmt.Sprintf("layers: pts=%v ls=%v poly=%v", m.showPoints, m.showLines, m.showPolys)
	case key.Matches(msg, keys.ZoomIn):
		if m.zoom < maxZoom {
			m.zoom *= zoomStep
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case key.Matches(msg, keys.ZoomOut):
		if m.zoom > minZoom {
			m.zoom /= zoomStep
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case key.Matches(msg, keys.Up):
		m.offsetY--
	case key.Matches(msg, keys.Down):
		m.offsetY++
	case key.Matches(msg, keys.Left):
		m.offsetX -= 2
	case key.Matches(msg, keys.Right):
		m.offsetX += 2
	case key.Matches(msg, keys.Files):
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
			m.l.SetSize(sidebarWidth-2, m.height-headerHeight-2)
		}
	case key.Matches(msg, keys.Open):
		if it, ok := m.l.SelectedItem().(fileItem); ok && m.showSidebar {
			m.loadPath(it.path)
		}
	case key.Matches(msg, keys.Paste):
		m.pasteMode = true
		m.ta.SetValue("")
		m.ta.Focus()
		m.status = "paste mode"
	case key.Matches(msg, keys.Help):
		m.helpVisible = !m.helpVisible
	case key.Matches(msg, keys.Attrs):
		if m.showAttrs = !m.showAttrs; m.showAttrs {
			m.refreshGrid()
		}
	case key.Matches(msg, keys.Next):
		m.selectNext(1)
	case key.Matches(msg, keys.Prev):
		m.selectNext(-1)
	case key.Matches(msg, keys.Buffer):
		m.bufferSelected()
	case key.Matches(msg, keys.Union):
		m.unionPolygons()
	case key.Matches(msg, keys.Merge):
		m.mergeSelectedKind()
	case key.Matches(msg, keys.Split):
		m.splitFirst()
	case key.Matches(msg, keys.Reload):
		if m.selPath == "" {
			m.status = "reload: no file loaded"
			break
		}
		m.loadPath(m.selPath)
	case key.Matches(msg, keys.Inspect):
		m.inspect()
	}
	return false
}

// mapArea returns the map origin and size for the current layout. It must
// match View.
func (m Model) mapArea() (x, y, w, h int) {
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth + 1
	}
	h = max(4, m.height-headerHeight-footerHeight)
	w = max(10, max(10, m.width)-sw)
	return sw, headerHeight, w, h
}

// hover tracks the mouse over the map and snaps to the nearest vertex.
func (m *Model) hover(msg tea.MouseMsg) {
	ox, oy, mapWidth, mapHeight := m.mapArea()
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, mapHeight-2)
	}
	cx, cy := msg.X, msg.Y
	if cx < ox || cx >= ox+mapWidth || cy < oy || cy >= oy+mapHeight {
		m.hovering = false
		return
	}
	m.hovering = true
	m.hoverCellX = cx - ox
	m.hoverCellY = cy - oy
	if lon, lat, ok := m.cellToLonLat(m.hoverCellX, m.hoverCellY, mapWidth, mapHeight); ok {
		m.hoverHasGeo = true
		m.hoverLon = lon
		m.hoverLat = lat
	} else {
		m.hoverHasGeo = false
	}
	hxMic := m.hoverCellX * 2
	hyMic := m.hoverCellY * 4
	best := 1<<31 - 1
	bx, by := hxMic, hyMic
	eachVertex(m.values, func(p orb.Point) {
		mx, my, ok := m.screenXYMicro(p[0], p[1], mapWidth, mapHeight)
		if !ok {
			return
		}
		dx := mx - hxMic
		dy := my - hyMic
		if d := dx*dx + dy*dy; d < best {
			best = d
			bx, by = mx, my
		}
	})
	m.hoverMicX, m.hoverMicY = bx, by
}

func (m *Model) inspect() {
	lon, lat, ok := m.inspectNearest()
	if !ok {
		m.inspectPopup = "no feature nearby"
		m.status = m.inspectPopup
		return
	}
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<unsaved>"
	}
	meta := []string{
		fmt.Sprintf("name: %s", name),
		fmt.Sprintf("path: %s", m.selPath),
		fmt.Sprintf("bbox: [%.5f, %.5f, %.5f, %.5f]", m.bbox.Min[0], m.bbox.Min[1], m.bbox.Max[0], m.bbox.Max[1]),
		m.countsLabel(),
		fmt.Sprintf("nearest: lon=%.6f lat=%.6f", lon, lat),
		"crs: " + m.cfg.CRS,
	}
	if v, ok := m.Selected(); ok {
		meta = append(meta, fmt.Sprintf("selected: %s %s", v.Shape(), v.Kind()))
	}
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect popup"
}
