package geomutil

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geokit/internal/algebra"
)

func TestBufferPoint(t *testing.T) {
	center := orb.Point{10, 50}
	v, err := New().AddBuffer(Bare(center), 200, "EPSG:4326")
	require.NoError(t, err)

	poly, ok := v.Geometry().(orb.Polygon)
	require.True(t, ok, "got %T", v.Geometry())
	require.Len(t, poly, 1)
	ring := poly[0]
	require.Len(t, ring, 4*algebra.QuadrantSegments+1)
	assert.Equal(t, ring[0], ring[len(ring)-1])
	assert.Equal(t, orb.CCW, ring.Orientation())
	for _, p := range ring {
		assert.InDelta(t, 200, math.Hypot(p[0]-center[0], p[1]-center[1]), 1e-9)
	}
	c, _ := planar.CentroidArea(poly)
	assert.InDelta(t, center[0], c[0], 1e-6)
	assert.InDelta(t, center[1], c[1], 1e-6)
}

func TestBufferLine(t *testing.T) {
	v, err := New().AddBuffer(Bare(orb.LineString{{0, 0}, {10, 0}}), 1, "")
	require.NoError(t, err)
	poly, ok := v.Geometry().(orb.Polygon)
	require.True(t, ok, "got %T", v.Geometry())
	assert.InDelta(t, 20+math.Pi, planar.Area(poly), 0.05)
	assert.True(t, poly.Bound().Contains(orb.Point{-1, 0}))
}

func TestBufferPolygon(t *testing.T) {
	e := New()
	in := box(0, 0, 10, 10)

	grown, err := e.AddBuffer(Bare(in), 1, "")
	require.NoError(t, err)
	assert.InDelta(t, 140+math.Pi, planar.Area(grown.Geometry()), 0.2)

	shrunk, err := e.AddBuffer(Bare(in), -1, "")
	require.NoError(t, err)
	assert.InDelta(t, 64, planar.Area(shrunk.Geometry()), 1e-6)

	closed, err := e.AddBuffer(Bare(boxWithHole()), 1.5, "")
	require.NoError(t, err)
	p, ok := closed.Geometry().(orb.Polygon)
	require.True(t, ok)
	assert.Len(t, p, 1, "hole narrower than twice the distance closes")
}

func TestBufferZero(t *testing.T) {
	e := New()

	in := boxWithHole()
	v, err := e.AddBuffer(Bare(in), 0, "")
	require.NoError(t, err)
	assert.Equal(t, in, v.Geometry())
	assert.InDelta(t, planar.Area(in), planar.Area(v.Geometry()), 1e-9)
	v.Geometry().(orb.Polygon)[0][0] = orb.Point{-1, -1}
	assert.Equal(t, orb.Point{0, 0}, in[0][0])

	mp := orb.MultiPolygon{box(0, 0, 1, 1), box(2, 2, 3, 3)}
	v, err = e.AddBuffer(Bare(mp), 0, "")
	require.NoError(t, err)
	assert.Equal(t, mp, v.Geometry())

	for _, g := range []orb.Geometry{orb.Point{1, 1}, orb.LineString{{0, 0}, {1, 1}}} {
		v, err = e.AddBuffer(Bare(g), 0, "")
		require.NoError(t, err)
		assert.Equal(t, orb.Polygon{}, v.Geometry())

		v, err = e.AddBuffer(Bare(g), -3, "")
		require.NoError(t, err)
		assert.Equal(t, orb.Polygon{}, v.Geometry())
	}
}

func TestBufferMulti(t *testing.T) {
	e := New()

	v, err := e.AddBuffer(Bare(orb.MultiPoint{{0, 0}, {100, 0}}), 1, "")
	require.NoError(t, err)
	mp, ok := v.Geometry().(orb.MultiPolygon)
	require.True(t, ok, "got %T", v.Geometry())
	assert.Len(t, mp, 2)

	v, err = e.AddBuffer(Bare(orb.MultiPoint{{0, 0}, {1, 0}}), 1, "")
	require.NoError(t, err)
	_, ok = v.Geometry().(orb.Polygon)
	assert.True(t, ok, "overlapping circles merge, got %T", v.Geometry())
}

func TestBufferErrors(t *testing.T) {
	e := New()
	for _, d := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := e.AddBuffer(Bare(orb.Point{}), d, "")
		assert.ErrorIs(t, err, ErrInvalidDistance)
	}
	_, err := e.AddBuffer(Bare(orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 0}}), 1, "")
	assert.ErrorIs(t, err, ErrInvalidInputKind)
}

func TestBufferFeature(t *testing.T) {
	n := 0
	e := New(WithIDGenerator(func() any { n++; return n }))
	v, err := e.AddBuffer(Wrap(feature(orb.Point{0, 0}, map[string]any{"k": "v"})), 1, "")
	require.NoError(t, err)
	require.True(t, v.IsFeature())
	assert.Equal(t, 1, v.Feature().ID)
	assert.Empty(t, v.Feature().Properties)
	assert.IsType(t, orb.Polygon{}, v.Feature().Geometry)
}
