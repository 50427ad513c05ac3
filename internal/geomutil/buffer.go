package geomutil

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
)

// AddBuffer returns the region within distance of v, always as a Polygon or
// MultiPolygon. Distance is in the linear unit of crs. Negative distances
// erode polygons; for points and lines they, like zero, give an empty
// polygon.
func (e *Engine) AddBuffer(v Value, distance float64, crs string) (Value, error) {
	const op = "buffer"
	g, err := unwrap(op, v)
	if err != nil {
		return Value{}, err
	}
	if math.IsNaN(distance) || math.IsInf(distance, 0) {
		return Value{}, opError(op, ErrInvalidDistance, "%v", distance)
	}

	var out orb.Geometry
	switch g := g.(type) {
	case orb.Point, orb.MultiPoint, orb.LineString, orb.MultiLineString:
		out = collapse(e.alg.Buffer(g, distance))
	case orb.Polygon:
		if distance == 0 {
			out = g.Clone()
			break
		}
		out = collapse(e.alg.Buffer(g, distance))
	case orb.MultiPolygon:
		if distance == 0 {
			out = g.Clone()
			break
		}
		out = collapse(e.alg.Buffer(g, distance))
	}

	e.trace(op, crs, logrus.Fields{
		"kind":     v.Kind(),
		"distance": distance,
		"result":   KindOf(out),
	})
	return e.rewrap(out, v.Shape()), nil
}

// collapse returns mp as a Polygon when it holds a single region and as an
// empty Polygon when it holds none.
func collapse(mp orb.MultiPolygon) orb.Geometry {
	switch len(mp) {
	case 0:
		return orb.Polygon{}
	case 1:
		return mp[0]
	}
	return mp
}
