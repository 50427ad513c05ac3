package geomutil

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Shape records whether a value reached the engine as a bare geometry or
// wrapped in a feature.
type Shape int

const (
	ShapeBare Shape = iota
	ShapeFeature
)

func (s Shape) String() string {
	if s == ShapeFeature {
		return "feature"
	}
	return "geometry"
}

// Kind is one of the six geometry kinds the engine operates on.
type Kind int

const (
	KindInvalid Kind = iota
	KindPoint
	KindLineString
	KindPolygon
	KindMultiPoint
	KindMultiLineString
	KindMultiPolygon
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "Point"
	case KindLineString:
		return "LineString"
	case KindPolygon:
		return "Polygon"
	case KindMultiPoint:
		return "MultiPoint"
	case KindMultiLineString:
		return "MultiLineString"
	case KindMultiPolygon:
		return "MultiPolygon"
	}
	return "Invalid"
}

// Base returns the single-part kind of k.
func (k Kind) Base() Kind {
	switch k {
	case KindMultiPoint:
		return KindPoint
	case KindMultiLineString:
		return KindLineString
	case KindMultiPolygon:
		return KindPolygon
	}
	return k
}

// KindOf returns the kind of g, or KindInvalid for geometries outside the
// supported set (rings, bounds, collections, nil).
func KindOf(g orb.Geometry) Kind {
	switch g.(type) {
	case orb.Point:
		return KindPoint
	case orb.LineString:
		return KindLineString
	case orb.Polygon:
		return KindPolygon
	case orb.MultiPoint:
		return KindMultiPoint
	case orb.MultiLineString:
		return KindMultiLineString
	case orb.MultiPolygon:
		return KindMultiPolygon
	}
	return KindInvalid
}

// Value is either a bare geometry or a feature wrapping one. It is the
// input and output type of every engine operation.
type Value struct {
	geometry orb.Geometry
	feature  *geojson.Feature
}

// Bare returns a Value holding g.
func Bare(g orb.Geometry) Value { return Value{geometry: g} }

// Wrap returns a Value holding the feature f.
func Wrap(f *geojson.Feature) Value {
	if f == nil {
		return Value{}
	}
	return Value{geometry: f.Geometry, feature: f}
}

// Of normalizes in, which may be a geometry, a feature or a Value.
func Of(in any) (Value, error) {
	var v Value
	switch in := in.(type) {
	case Value:
		v = in
	case *geojson.Feature:
		v = Wrap(in)
	case geojson.Feature:
		v = Wrap(&in)
	case orb.Geometry:
		v = Bare(in)
	default:
		return Value{}, opError("normalize", ErrInvalidInputKind, "%T", in)
	}
	if v.Kind() == KindInvalid {
		return Value{}, opError("normalize", ErrInvalidInputKind, "%s", describe(v))
	}
	return v, nil
}

// Geometry returns the geometry held by v.
func (v Value) Geometry() orb.Geometry { return v.geometry }

// Feature returns the wrapping feature, or nil for bare geometries.
func (v Value) Feature() *geojson.Feature { return v.feature }

func (v Value) IsFeature() bool { return v.feature != nil }

func (v Value) Shape() Shape {
	if v.feature != nil {
		return ShapeFeature
	}
	return ShapeBare
}

func (v Value) Kind() Kind { return KindOf(v.geometry) }

// IsZero reports whether v holds nothing.
func (v Value) IsZero() bool { return v.geometry == nil && v.feature == nil }

func describe(v Value) string {
	if v.geometry == nil {
		return fmt.Sprintf("%s without geometry", v.Shape())
	}
	return fmt.Sprintf("%s %T", v.Shape(), v.geometry)
}

// unwrap validates v and returns its geometry.
func unwrap(op string, v Value) (orb.Geometry, error) {
	if v.Kind() == KindInvalid {
		return nil, opError(op, ErrInvalidInputKind, "%s", describe(v))
	}
	return v.geometry, nil
}

// shapeOf returns ShapeFeature only when every input is a feature.
func shapeOf(vs ...Value) Shape {
	if len(vs) == 0 {
		return ShapeBare
	}
	for _, v := range vs {
		if !v.IsFeature() {
			return ShapeBare
		}
	}
	return ShapeFeature
}

// rewrap returns g in the given shape. Features are new, with empty
// properties and an ID from the engine's generator, if any.
func (e *Engine) rewrap(g orb.Geometry, s Shape) Value {
	if s != ShapeFeature {
		return Bare(g)
	}
	f := geojson.NewFeature(g)
	if e.newID != nil {
		f.ID = e.newID()
	}
	return Wrap(f)
}
