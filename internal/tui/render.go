package tui

import (
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"

	"geokit/internal/geomutil"
)

// fitBound pads a degenerate extent, e.g. a single point, so it can be
// projected.
func fitBound(b orb.Bound) orb.Bound {
	if b.Max[0] < b.Min[0] || b.Max[1] < b.Min[1] {
		return orb.Bound{}
	}
	if b.Max[0] == b.Min[0] || b.Max[1] == b.Min[1] {
		return b.Pad(1)
	}
	return b
}

func (m Model) hasExtent() bool {
	return m.bbox.Max[0] > m.bbox.Min[0] && m.bbox.Max[1] > m.bbox.Min[1]
}

// cellToLonLat converts a map cell coordinate back to lon/lat using bbox, zoom, and pan.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	if !m.hasExtent() || w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	lon := m.bbox.Min[0] + nx*(m.bbox.Max[0]-m.bbox.Min[0])
	lat := m.bbox.Min[1] + ny*(m.bbox.Max[1]-m.bbox.Min[1])
	return lon, lat, true
}

// screenXYMicro maps lon/lat into a 2x4 microgrid per cell for braille rendering.
func (m Model) screenXYMicro(lon, lat float64, w, h int) (int, int, bool) {
	if !m.hasExtent() {
		return 0, 0, false
	}
	nx := (lon - m.bbox.Min[0]) / (m.bbox.Max[0] - m.bbox.Min[0])
	ny := (lat - m.bbox.Min[1]) / (m.bbox.Max[1] - m.bbox.Min[1])
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	sx := int(zx*float64(w*2-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(h*4-1)) + m.offsetY*4
	return sx, sy, true
}

// screenXY maps lon/lat to current screen integer coordinates considering zoom and pan.
func (m Model) screenXY(lon, lat float64, w, h int) (int, int, bool) {
	if !m.hasExtent() {
		return 0, 0, false
	}
	nx := (lon - m.bbox.Min[0]) / (m.bbox.Max[0] - m.bbox.Min[0])
	ny := (lat - m.bbox.Min[1]) / (m.bbox.Max[1] - m.bbox.Min[1])
	// Apply zoom around center (0.5, 0.5)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	sx := int(zx*float64(w-1)) + m.offsetX
	sy := int((1.0-zy)*float64(h-1)) + m.offsetY
	return sx, sy, true
}

// simplified drops vertices closer than one micro pixel at the current zoom.
func (m Model) simplified(g orb.Geometry, w int) orb.Geometry {
	if w <= 0 || m.zoom <= 0 {
		return g
	}
	threshold := (m.bbox.Max[0] - m.bbox.Min[0]) / (float64(w*2) * m.zoom)
	if threshold <= 0 {
		return g
	}
	return simplify.DouglasPeucker(threshold).Simplify(orb.Clone(g))
}

func (m Model) drawGeometry(b *brailleBuf, g orb.Geometry, w, h int) {
	project := func(p orb.Point) (int, int, bool) { return m.screenXYMicro(p[0], p[1], w, h) }
	switch g := g.(type) {
	case orb.Point:
		if mx, my, ok := project(g); ok && m.showPoints {
			b.setPixel(mx, my)
		}
	case orb.MultiPoint:
		for _, p := range g {
			m.drawGeometry(b, p, w, h)
		}
	case orb.LineString:
		if !m.showLines {
			return
		}
		var prev *[2]int
		for _, p := range g {
			mx, my, ok := project(p)
			if !ok {
				continue
			}
			if prev != nil {
				b.drawLineMicro(prev[0], prev[1], mx, my)
			}
			prev = &[2]int{mx, my}
		}
	case orb.MultiLineString:
		for _, ls := range g {
			m.drawGeometry(b, ls, w, h)
		}
	case orb.Polygon:
		if !m.showPolys {
			return
		}
		var rings [][][2]int
		for _, ring := range g {
			var sm [][2]int
			for _, p := range ring {
				if mx, my, ok := project(p); ok {
					sm = append(sm, [2]int{mx, my})
				}
			}
			if len(sm) >= 3 {
				rings = append(rings, sm)
			}
		}
		b.fillRings(rings)
		for _, r := range rings {
			for i := range r {
				a, c := r[i], r[(i+1)%len(r)]
				b.drawLineMicro(a[0], a[1], c[0], c[1])
			}
		}
	case orb.MultiPolygon:
		for _, p := range g {
			m.drawGeometry(b, p, w, h)
		}
	}
}

func (m Model) renderAsciiMap(w, h int) string {
	base := newBrailleBuf(w, h)
	sel := newBrailleBuf(w, h)
	for i, v := range m.values {
		b := base
		if i == m.selected {
			b = sel
		}
		m.drawGeometry(b, m.simplified(v.Geometry(), w), w, h)
	}

	hx, hy := -1, -1
	if m.hovering {
		hx, hy = m.hoverMicX/2, m.hoverMicY/4
	}
	lines := make([]string, h)
	for y := 0; y < h; y++ {
		var sb strings.Builder
		for x := 0; x < w; x++ {
			switch {
			case x == hx && y == hy:
				sb.WriteString(hoverStyle.Render("◯"))
			case sel.m[y][x] != 0:
				sel.m[y][x] |= base.m[y][x]
				sb.WriteString(selStyle.Render(string(sel.cell(x, y))))
			default:
				sb.WriteRune(base.cell(x, y))
			}
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// eachVertex calls fn for every coordinate of vs.
func eachVertex(vs []geomutil.Value, fn func(orb.Point)) {
	var walk func(g orb.Geometry)
	walk = func(g orb.Geometry) {
		switch g := g.(type) {
		case orb.Point:
			fn(g)
		case orb.MultiPoint:
			for _, p := range g {
				fn(p)
			}
		case orb.LineString:
			for _, p := range g {
				fn(p)
			}
		case orb.MultiLineString:
			for _, ls := range g {
				walk(ls)
			}
		case orb.Polygon:
			for _, r := range g {
				for _, p := range r {
					fn(p)
				}
			}
		case orb.MultiPolygon:
			for _, p := range g {
				walk(p)
			}
		}
	}
	for _, v := range vs {
		walk(v.Geometry())
	}
}

// inspectNearest finds the vertex closest to the viewport center and returns lon/lat.
func (m Model) inspectNearest() (lon, lat float64, ok bool) {
	w, h := m.mapW, m.mapH
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	cx, cy := w/2, h/2
	bestD := -1
	var best orb.Point
	eachVertex(m.values, func(p orb.Point) {
		sx, sy, ok := m.screenXY(p[0], p[1], w, h)
		if !ok {
			return
		}
		dx, dy := sx-cx, sy-cy
		if d := dx*dx + dy*dy; bestD < 0 || d < bestD {
			bestD = d
			best = p
		}
	})
	if bestD < 0 {
		return 0, 0, false
	}
	return best[0], best[1], true
}
