package algebra

import (
	"math"

	"github.com/ctessum/geom"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Union returns the region covered by a or b.
func (Planar) Union(a, b orb.MultiPolygon) orb.MultiPolygon {
	switch {
	case isEmpty(a):
		return polygonize(ringsOf(b))
	case isEmpty(b):
		return polygonize(ringsOf(a))
	case !a.Bound().Intersects(b.Bound()):
		return polygonize(append(ringsOf(a), ringsOf(b)...))
	}
	out := toGeomMulti(a).Union(toGeomMulti(b))
	return polygonize(ringsOfClip(out))
}

// Difference returns the region of a not covered by b.
func (Planar) Difference(a, b orb.MultiPolygon) orb.MultiPolygon {
	if isEmpty(a) {
		return nil
	}
	if isEmpty(b) || !a.Bound().Intersects(b.Bound()) {
		return cloneMulti(a)
	}
	out := toGeomMulti(a).Difference(toGeomMulti(b))
	return polygonize(ringsOfClip(out))
}

// Intersection returns the region covered by both a and b.
func (Planar) Intersection(a, b orb.MultiPolygon) orb.MultiPolygon {
	if isEmpty(a) || isEmpty(b) || !a.Bound().Intersects(b.Bound()) {
		return nil
	}
	out := toGeomMulti(a).Intersection(toGeomMulti(b))
	return polygonize(ringsOfClip(out))
}

func isEmpty(mp orb.MultiPolygon) bool {
	for _, p := range mp {
		if len(p) > 0 && len(p[0]) > 0 {
			return false
		}
	}
	return true
}

func cloneMulti(mp orb.MultiPolygon) orb.MultiPolygon {
	if isEmpty(mp) {
		return nil
	}
	return mp.Clone()
}

func toGeomPoint(p orb.Point) geom.Point { return geom.Point{X: p[0], Y: p[1]} }

// toGeomPolygon converts p for github.com/ctessum/geom. Clipping expects
// open contours, so open drops the closing vertex of every ring.
func toGeomPolygon(p orb.Polygon, open bool) geom.Polygon {
	out := make(geom.Polygon, 0, len(p))
	for _, r := range p {
		n := len(r)
		if open && n > 1 && r[0] == r[n-1] {
			n--
		}
		if n == 0 {
			continue
		}
		gr := make([]geom.Point, n)
		for i := 0; i < n; i++ {
			gr[i] = toGeomPoint(r[i])
		}
		out = append(out, gr)
	}
	return out
}

func toGeomMulti(mp orb.MultiPolygon) geom.MultiPolygon {
	out := make(geom.MultiPolygon, 0, len(mp))
	for _, p := range mp {
		if gp := toGeomPolygon(p, true); len(gp) > 0 {
			out = append(out, gp)
		}
	}
	return out
}

// ringsOfClip returns the rings of a clipping result. The clipper
// returns every contour in one polygon, without nesting information.
func ringsOfClip(out geom.Polygonal) []orb.Ring {
	if out == nil {
		return nil
	}
	var rings []orb.Ring
	for _, gr := range flatten(out.Polygons()) {
		r := make(orb.Ring, 0, len(gr)+1)
		for _, pt := range gr {
			op := orb.Point{pt.X, pt.Y}
			if len(r) > 0 && r[len(r)-1] == op {
				continue
			}
			r = append(r, op)
		}
		if len(r) > 0 && r[0] != r[len(r)-1] {
			r = append(r, r[0])
		}
		rings = append(rings, r)
	}
	return rings
}

// polygonize groups a set of non-crossing rings into polygons. A ring nested
// inside an even number of other rings is an exterior, an odd number makes
// it a hole of the smallest enclosing exterior. Exteriors are returned
// counter-clockwise and holes clockwise.
func polygonize(rings []orb.Ring) orb.MultiPolygon {
	type ringInfo struct {
		ring   orb.Ring
		area   float64
		bound  orb.Bound
		depth  int
		parent int
	}

	var infos []*ringInfo
	for _, r := range rings {
		if len(r) < 4 {
			continue
		}
		b := r.Bound()
		eps := tolerance(b)
		a := math.Abs(planar.Area(r))
		if a <= eps*eps {
			continue
		}
		infos = append(infos, &ringInfo{ring: r, area: a, bound: b, parent: -1})
	}

	contains := func(outer, inner *ringInfo) bool {
		if outer.area <= inner.area || !outer.bound.Intersects(inner.bound) {
			return false
		}
		eps := tolerance(outer.bound)
		for _, p := range inner.ring {
			if onRing(p, outer.ring, eps) {
				continue
			}
			return planar.RingContains(outer.ring, p)
		}
		return false
	}

	for i, ri := range infos {
		for j, rj := range infos {
			if i == j || !contains(rj, ri) {
				continue
			}
			ri.depth++
		}
	}
	for i, ri := range infos {
		if ri.depth%2 == 0 {
			continue
		}
		best := math.Inf(1)
		for j, rj := range infos {
			if i == j || rj.depth != ri.depth-1 || rj.area >= best || !contains(rj, ri) {
				continue
			}
			ri.parent = j
			best = rj.area
		}
	}

	var out orb.MultiPolygon
	index := make(map[int]int)
	for i, ri := range infos {
		if ri.depth%2 != 0 {
			continue
		}
		index[i] = len(out)
		out = append(out, orb.Polygon{orient(ri.ring, orb.CCW)})
	}
	for _, ri := range infos {
		if ri.depth%2 == 0 || ri.parent < 0 {
			continue
		}
		k := index[ri.parent]
		out[k] = append(out[k], orient(ri.ring, orb.CW))
	}
	return out
}

// orient returns a copy of r wound in direction o.
func orient(r orb.Ring, o orb.Orientation) orb.Ring {
	c := r.Clone()
	if c.Orientation() != o {
		c.Reverse()
	}
	return c
}

func flatten(ps []geom.Polygon) []geom.Path {
	var out []geom.Path
	for _, p := range ps {
		out = append(out, p...)
	}
	return out
}

func onRing(p orb.Point, r orb.Ring, eps float64) bool {
	for i := 1; i < len(r); i++ {
		if DistanceToSegment(p, r[i-1], r[i]) <= eps {
			return true
		}
	}
	return false
}
