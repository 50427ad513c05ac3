package algebra

import (
	"math"

	"github.com/paulmach/orb"
)

// Buffer builds the offset region of g as the union of round-capped
// segment strokes (and, for polygons, the polygon itself). Curves use
// QuadrantSegments segments per quarter circle.
func (p Planar) Buffer(g orb.Geometry, distance float64) orb.MultiPolygon {
	switch g := g.(type) {
	case orb.Point:
		if distance <= 0 {
			return nil
		}
		return orb.MultiPolygon{{Circle(g, distance)}}
	case orb.MultiPoint:
		var out orb.MultiPolygon
		for _, pt := range g {
			out = p.Union(out, p.Buffer(pt, distance))
		}
		return out
	case orb.LineString:
		if distance <= 0 || len(g) == 0 {
			return nil
		}
		return p.stroke([]orb.LineString{g}, distance)
	case orb.MultiLineString:
		var out orb.MultiPolygon
		for _, ls := range g {
			out = p.Union(out, p.Buffer(ls, distance))
		}
		return out
	case orb.Polygon:
		if len(g) == 0 {
			return nil
		}
		body := orb.MultiPolygon{g}
		if distance == 0 {
			return polygonize(ringsOf(body))
		}
		lines := make([]orb.LineString, 0, len(g))
		for _, r := range g {
			lines = append(lines, orb.LineString(r))
		}
		if distance > 0 {
			return p.Union(polygonize(ringsOf(body)), p.stroke(lines, distance))
		}
		return p.Difference(polygonize(ringsOf(body)), p.stroke(lines, -distance))
	case orb.MultiPolygon:
		var out orb.MultiPolygon
		for _, poly := range g {
			out = p.Union(out, p.Buffer(poly, distance))
		}
		return out
	}
	return nil
}

func ringsOf(mp orb.MultiPolygon) []orb.Ring {
	var rings []orb.Ring
	for _, p := range mp {
		for _, r := range p {
			c := r.Clone()
			if len(c) > 0 && c[0] != c[len(c)-1] {
				c = append(c, c[0])
			}
			rings = append(rings, c)
		}
	}
	return rings
}

// stroke returns the union of the capsules around every segment of lines.
func (p Planar) stroke(lines []orb.LineString, d float64) orb.MultiPolygon {
	var out orb.MultiPolygon
	for _, ls := range lines {
		if len(ls) == 1 {
			out = p.Union(out, orb.MultiPolygon{{Circle(ls[0], d)}})
			continue
		}
		for i := 1; i < len(ls); i++ {
			out = p.Union(out, orb.MultiPolygon{{Capsule(ls[i-1], ls[i], d)}})
		}
	}
	return out
}

// Circle approximates the circle of radius r around c with
// 4*QuadrantSegments segments, counter-clockwise from angle zero.
func Circle(c orb.Point, r float64) orb.Ring {
	n := 4 * QuadrantSegments
	ring := make(orb.Ring, 0, n+1)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		ring = append(ring, orb.Point{c[0] + r*math.Cos(a), c[1] + r*math.Sin(a)})
	}
	return append(ring, ring[0])
}

// Capsule returns the counter-clockwise outline of all points within r of
// the segment a-b: two parallel sides joined by half circles.
func Capsule(a, b orb.Point, r float64) orb.Ring {
	if a == b {
		return Circle(a, r)
	}
	theta := math.Atan2(b[1]-a[1], b[0]-a[0])
	n := 2 * QuadrantSegments
	ring := make(orb.Ring, 0, 2*n+3)
	arc := func(c orb.Point, from float64) {
		for i := 0; i <= n; i++ {
			t := from + math.Pi*float64(i)/float64(n)
			ring = append(ring, orb.Point{c[0] + r*math.Cos(t), c[1] + r*math.Sin(t)})
		}
	}
	arc(b, theta-math.Pi/2)
	arc(a, theta+math.Pi/2)
	return append(ring, ring[0])
}
