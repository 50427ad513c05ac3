// Package algebra provides the planar geometry primitives the engine
// delegates to: segment intersection, point location, polygon set algebra
// and offset (buffer) construction.
package algebra

import (
	"math"

	"github.com/paulmach/orb"
)

// Epsilon is the relative tolerance used for coordinate comparisons. It is
// scaled by the magnitude of the coordinates involved.
const Epsilon = 1e-9

// QuadrantSegments is the number of segments used to approximate a quarter
// circle when building round caps and joins.
const QuadrantSegments = 8

// Location is the position of a point relative to a polygon.
type Location int

const (
	Exterior Location = iota
	Interior
	Boundary
)

func (l Location) String() string {
	switch l {
	case Interior:
		return "interior"
	case Boundary:
		return "boundary"
	default:
		return "exterior"
	}
}

// Algebra is the set of primitives the geometry engine needs from a planar
// geometry library.
type Algebra interface {
	// SegmentIntersection returns the points shared by segments a0-a1 and
	// b0-b1: none, one, or the two ends of a collinear overlap.
	SegmentIntersection(a0, a1, b0, b1 orb.Point) []orb.Point
	// Locate reports where p lies relative to poly.
	Locate(p orb.Point, poly orb.Polygon) Location
	Union(a, b orb.MultiPolygon) orb.MultiPolygon
	Difference(a, b orb.MultiPolygon) orb.MultiPolygon
	Intersection(a, b orb.MultiPolygon) orb.MultiPolygon
	// Buffer returns the region within distance of g. Negative distances
	// erode polygonal geometries.
	Buffer(g orb.Geometry, distance float64) orb.MultiPolygon
}

// Planar implements Algebra on top of github.com/ctessum/geom.
type Planar struct{}

var _ Algebra = Planar{}

// tolerance returns an absolute tolerance suited to coordinates of the
// magnitude found in b.
func tolerance(b orb.Bound) float64 {
	scale := math.Max(math.Max(math.Abs(b.Min[0]), math.Abs(b.Max[0])),
		math.Max(math.Abs(b.Min[1]), math.Abs(b.Max[1])))
	scale = math.Max(scale, math.Max(b.Max[0]-b.Min[0], b.Max[1]-b.Min[1]))
	if scale < 1 {
		scale = 1
	}
	return Epsilon * scale
}

// Tolerance returns the absolute tolerance used for geometries spanning b.
func Tolerance(b orb.Bound) float64 { return tolerance(b) }

func sub(a, b orb.Point) orb.Point { return orb.Point{a[0] - b[0], a[1] - b[1]} }

func dot(a, b orb.Point) float64 { return a[0]*b[0] + a[1]*b[1] }

func cross(a, b orb.Point) float64 { return a[0]*b[1] - a[1]*b[0] }

// DistanceToSegment returns the distance from p to the segment a-b.
func DistanceToSegment(p, a, b orb.Point) float64 {
	v := sub(b, a)
	w := sub(p, a)
	c1 := dot(w, v)
	if c1 <= 0 {
		return math.Hypot(p[0]-a[0], p[1]-a[1])
	}
	c2 := dot(v, v)
	if c2 <= c1 {
		return math.Hypot(p[0]-b[0], p[1]-b[1])
	}
	t := c1 / c2
	return math.Hypot(p[0]-(a[0]+t*v[0]), p[1]-(a[1]+t*v[1]))
}
