package geomutil

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOf(t *testing.T) {
	f := feature(orb.Point{1, 2}, nil)

	tests := []struct {
		name    string
		in      any
		shape   Shape
		kind    Kind
		wantErr bool
	}{
		{name: "point", in: orb.Point{1, 2}, shape: ShapeBare, kind: KindPoint},
		{name: "multipolygon", in: orb.MultiPolygon{box(0, 0, 1, 1)}, shape: ShapeBare, kind: KindMultiPolygon},
		{name: "feature pointer", in: f, shape: ShapeFeature, kind: KindPoint},
		{name: "feature value", in: *f, shape: ShapeFeature, kind: KindPoint},
		{name: "value", in: Bare(orb.LineString{{0, 0}, {1, 1}}), shape: ShapeBare, kind: KindLineString},
		{name: "ring", in: orb.Ring{{0, 0}, {1, 0}, {0, 1}, {0, 0}}, wantErr: true},
		{name: "bound", in: orb.Bound{}, wantErr: true},
		{name: "feature without geometry", in: &geojson.Feature{}, wantErr: true},
		{name: "string", in: "POINT (1 2)", wantErr: true},
		{name: "nil", in: nil, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Of(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidInputKind), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.shape, v.Shape())
			assert.Equal(t, tt.kind, v.Kind())
		})
	}
}

func TestShapeOf(t *testing.T) {
	w := Wrap(feature(orb.Point{}, nil))
	b := Bare(orb.Point{})

	assert.Equal(t, ShapeFeature, shapeOf(w, w))
	assert.Equal(t, ShapeBare, shapeOf(w, b))
	assert.Equal(t, ShapeBare, shapeOf(b))
	assert.Equal(t, ShapeBare, shapeOf())
}

func TestRewrap(t *testing.T) {
	e := New()
	v := e.rewrap(orb.Point{1, 1}, ShapeFeature)
	require.True(t, v.IsFeature())
	assert.Nil(t, v.Feature().ID)
	assert.Empty(t, v.Feature().Properties)
	assert.Equal(t, orb.Point{1, 1}, v.Feature().Geometry)

	n := 0
	e = New(WithIDGenerator(func() any { n++; return n }))
	assert.Equal(t, 1, e.rewrap(orb.Point{}, ShapeFeature).Feature().ID)
	assert.Equal(t, 2, e.rewrap(orb.Point{}, ShapeFeature).Feature().ID)
	assert.False(t, e.rewrap(orb.Point{}, ShapeBare).IsFeature())
	assert.Equal(t, 2, n)
}

func TestKindBase(t *testing.T) {
	assert.Equal(t, KindPoint, KindMultiPoint.Base())
	assert.Equal(t, KindLineString, KindMultiLineString.Base())
	assert.Equal(t, KindPolygon, KindMultiPolygon.Base())
	assert.Equal(t, KindPolygon, KindPolygon.Base())
	assert.Equal(t, "MultiLineString", KindMultiLineString.String())
}

func TestOpError(t *testing.T) {
	err := error(opError("split", ErrDegenerateCut, "line outside"))
	assert.EqualError(t, err, "split: degenerate cut: line outside")

	var opErr *OpError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "split", opErr.Op)
	assert.ErrorIs(t, err, ErrDegenerateCut)
}
