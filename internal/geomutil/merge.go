package geomutil

import (
	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
)

// MergeGeometries collects same-kind geometries into one multi-part
// geometry: points into a MultiPoint, lines into a MultiLineString and
// polygons into a MultiPolygon. Parts keep input order and are not
// deduplicated. A multi-part input contributes each of its parts.
func (e *Engine) MergeGeometries(vs []Value) (Value, error) {
	const op = "merge"
	if len(vs) == 0 {
		return Value{}, opError(op, ErrEmptyInput, "no geometries")
	}

	base := KindInvalid
	for i, v := range vs {
		if _, err := unwrap(op, v); err != nil {
			return Value{}, err
		}
		k := v.Kind().Base()
		if i == 0 {
			base = k
			continue
		}
		if k != base {
			return Value{}, opError(op, ErrMixedGeometryKinds, "input %d is %s, want %s", i, v.Kind(), base)
		}
	}

	var out orb.Geometry
	switch base {
	case KindPoint:
		mp := make(orb.MultiPoint, 0, len(vs))
		for _, v := range vs {
			switch g := v.Geometry().(type) {
			case orb.Point:
				mp = append(mp, g)
			case orb.MultiPoint:
				mp = append(mp, g...)
			}
		}
		out = mp
	case KindLineString:
		mls := make(orb.MultiLineString, 0, len(vs))
		for _, v := range vs {
			switch g := v.Geometry().(type) {
			case orb.LineString:
				mls = append(mls, g.Clone())
			case orb.MultiLineString:
				for _, ls := range g {
					mls = append(mls, ls.Clone())
				}
			}
		}
		out = mls
	case KindPolygon:
		mp := make(orb.MultiPolygon, 0, len(vs))
		for _, v := range vs {
			switch g := v.Geometry().(type) {
			case orb.Polygon:
				mp = append(mp, g.Clone())
			case orb.MultiPolygon:
				for _, p := range g {
					mp = append(mp, p.Clone())
				}
			}
		}
		out = mp
	}

	e.trace(op, "", logrus.Fields{"inputs": len(vs), "kind": KindOf(out)})
	return e.rewrap(out, shapeOf(vs...)), nil
}
