package geomutil

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"

	"geokit/internal/algebra"
)

// Union returns the region covered by any of vs. The result is a Polygon when
// the inputs form one connected region and a MultiPolygon otherwise.
func (e *Engine) Union(vs []Value, crs string) (Value, error) {
	const op = "union"
	if len(vs) == 0 {
		return Value{}, opError(op, ErrEmptyInput, "no polygons")
	}
	var acc orb.MultiPolygon
	for _, v := range vs {
		mp, err := polygonal(op, v)
		if err != nil {
			return Value{}, err
		}
		acc = e.alg.Union(acc, mp)
	}
	out := collapse(acc)
	e.trace(op, crs, logrus.Fields{"inputs": len(vs), "regions": len(acc)})
	return e.rewrap(out, shapeOf(vs...)), nil
}

// Difference returns the part of a not covered by b. When the interiors do
// not overlap the result is a copy of a; when b covers a the result is an
// empty Polygon.
func (e *Engine) Difference(a, b Value, crs string) (Value, error) {
	const op = "difference"
	ma, err := polygonal(op, a)
	if err != nil {
		return Value{}, err
	}
	mb, err := polygonal(op, b)
	if err != nil {
		return Value{}, err
	}

	var out orb.Geometry
	if !overlaps(ma, mb) || isEmpty(e.alg.Intersection(ma, mb)) {
		out = orb.Clone(a.Geometry())
	} else {
		out = collapse(e.alg.Difference(ma, mb))
	}
	e.trace(op, crs, logrus.Fields{"a": a.Kind(), "b": b.Kind(), "result": KindOf(out)})
	return e.rewrap(out, shapeOf(a, b)), nil
}

// Intersection returns the region covered by both a and b. ok is false when
// they share no interior.
func (e *Engine) Intersection(a, b Value, crs string) (v Value, ok bool, err error) {
	const op = "intersection"
	ma, err := polygonal(op, a)
	if err != nil {
		return Value{}, false, err
	}
	mb, err := polygonal(op, b)
	if err != nil {
		return Value{}, false, err
	}

	var mp orb.MultiPolygon
	if overlaps(ma, mb) {
		mp = e.alg.Intersection(ma, mb)
	}
	e.trace(op, crs, logrus.Fields{"a": a.Kind(), "b": b.Kind(), "regions": len(mp)})
	if isEmpty(mp) {
		return Value{}, false, nil
	}
	return e.rewrap(collapse(mp), shapeOf(a, b)), true, nil
}

// polygonal returns the geometry of v as a MultiPolygon.
func polygonal(op string, v Value) (orb.MultiPolygon, error) {
	g, err := unwrap(op, v)
	if err != nil {
		return nil, err
	}
	switch g := g.(type) {
	case orb.Polygon:
		return orb.MultiPolygon{g}, nil
	case orb.MultiPolygon:
		return g, nil
	}
	return nil, opError(op, ErrUnsupportedGeometry, "%s is not polygonal", KindOf(g))
}

// overlaps reports whether the extents of a and b share a region of
// positive area. Shapes that only touch along an edge never do.
func overlaps(a, b orb.MultiPolygon) bool {
	ba, bb := a.Bound(), b.Bound()
	eps := algebra.Tolerance(ba.Union(bb))
	w := math.Min(ba.Max[0], bb.Max[0]) - math.Max(ba.Min[0], bb.Min[0])
	h := math.Min(ba.Max[1], bb.Max[1]) - math.Max(ba.Min[1], bb.Min[1])
	return w > eps && h > eps
}

func isEmpty(mp orb.MultiPolygon) bool {
	for _, p := range mp {
		if len(p) > 0 && len(p[0]) > 0 {
			return false
		}
	}
	return true
}
