package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geokit/internal/geomutil"
)

const (
	square   = "POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))"
	neighbor = "POLYGON ((10 0, 20 0, 20 10, 10 10, 10 0))"
	far      = "POLYGON ((50 50, 60 50, 60 60, 50 60, 50 50))"
	cut      = "LINESTRING (5 -5, 5 15)"
	lot      = `{"type":"Feature","id":"lot","properties":{"owner":"city"},
		"geometry":{"type":"Polygon","coordinates":[[[0,0],[10,0],[10,10],[0,10],[0,0]]]}}`
	fence = `{"type":"Feature","properties":{},
		"geometry":{"type":"LineString","coordinates":[[5,-5],[5,15]]}}`
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errs bytes.Buffer
	root := NewRoot()
	root.SetOut(&out)
	root.SetErr(&errs)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func collection(t *testing.T, out string) *geojson.FeatureCollection {
	t.Helper()
	fc, err := geojson.UnmarshalFeatureCollection([]byte(out))
	require.NoError(t, err, out)
	return fc
}

func geometry(t *testing.T, out string) orb.Geometry {
	t.Helper()
	g, err := geojson.UnmarshalGeometry([]byte(out))
	require.NoError(t, err, out)
	return g.Geometry()
}

// members decodes a GeometryCollection, failing on anything else.
func members(t *testing.T, out string) orb.Collection {
	t.Helper()
	c, ok := geometry(t, out).(orb.Collection)
	require.True(t, ok, out)
	return c
}

func TestSplit(t *testing.T) {
	out, err := run(t, "split", write(t, "a.wkt", square), write(t, "b.wkt", cut))
	require.NoError(t, err)

	// bare inputs give bare pieces
	assert.Contains(t, out, `"GeometryCollection"`)
	assert.NotContains(t, out, `"Feature"`)
	pieces := members(t, out)
	require.Len(t, pieces, 2)
	for _, g := range pieces {
		require.IsType(t, orb.Polygon{}, g)
		assert.InDelta(t, 50, planar.Area(g), 1e-9)
	}
}

func TestSplitFeature(t *testing.T) {
	out, err := run(t, "split", write(t, "lot.geojson", lot), write(t, "fence.geojson", fence))
	require.NoError(t, err)

	fc := collection(t, out)
	require.Len(t, fc.Features, 2)
	for _, f := range fc.Features {
		assert.InDelta(t, 50, planar.Area(f.Geometry), 1e-9)
		assert.Nil(t, f.ID)
	}

	// a feature cut by a bare line gives bare pieces
	out, err = run(t, "split", write(t, "lot.geojson", lot), write(t, "b.wkt", cut))
	require.NoError(t, err)
	assert.Len(t, members(t, out), 2)
}

func TestSplitAssignIDs(t *testing.T) {
	out, err := run(t, "split", "--assign-ids",
		write(t, "lot.geojson", lot), write(t, "fence.geojson", fence))
	require.NoError(t, err)

	fc := collection(t, out)
	require.Len(t, fc.Features, 2)
	for _, f := range fc.Features {
		id, ok := f.ID.(string)
		require.True(t, ok, "%v", f.ID)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		assert.Empty(t, f.Properties)
	}
}

func TestSplitMissingLine(t *testing.T) {
	_, err := run(t, "split", write(t, "a.wkt", square), write(t, "b.wkt", far))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no line")
}

func TestBuffer(t *testing.T) {
	pt := write(t, "p.wkt", "POINT (0 0)")

	out, err := run(t, "buffer", "--distance", "2", pt)
	require.NoError(t, err)
	g := geometry(t, out)
	require.IsType(t, orb.Polygon{}, g)
	assert.InDelta(t, 2, g.Bound().Max[0], 1e-9)
	assert.InDelta(t, -2, g.Bound().Min[1], 1e-9)

	// one output per input geometry
	both := write(t, "two.wkt", "POINT (0 0)\nPOINT (10 10)")
	out, err = run(t, "buffer", "-d", "1", both)
	require.NoError(t, err)
	assert.Len(t, members(t, out), 2)
}

func TestBufferEnvironment(t *testing.T) {
	t.Setenv("GEOKIT_DISTANCE", "3")
	out, err := run(t, "buffer", write(t, "p.wkt", "POINT (0 0)"))
	require.NoError(t, err)
	assert.InDelta(t, 3, geometry(t, out).Bound().Max[0], 1e-9)

	// flags win over the environment
	out, err = run(t, "buffer", "--distance", "1", write(t, "p.wkt", "POINT (0 0)"))
	require.NoError(t, err)
	assert.InDelta(t, 1, geometry(t, out).Bound().Max[0], 1e-9)
}

func TestConfigFile(t *testing.T) {
	cfg := write(t, "geokit.yaml", "distance: 4\nlog-level: debug\n")
	out, err := run(t, "buffer", "--config", cfg, write(t, "p.wkt", "POINT (0 0)"))
	require.NoError(t, err)
	assert.InDelta(t, 4, geometry(t, out).Bound().Max[0], 1e-9)

	_, err = run(t, "buffer", "--config", filepath.Join(t.TempDir(), "missing.yaml"),
		write(t, "p.wkt", "POINT (0 0)"))
	assert.ErrorContains(t, err, "configuration file")
}

func TestLogLevel(t *testing.T) {
	_, err := run(t, "buffer", "--log-level", "loud", write(t, "p.wkt", "POINT (0 0)"))
	assert.Error(t, err)

	logs := filepath.Join(t.TempDir(), "geokit.log")
	_, err = run(t, "buffer", "--log-level", "debug", "--log-file", logs,
		write(t, "p.wkt", "POINT (0 0)"))
	require.NoError(t, err)
	b, err := os.ReadFile(logs)
	require.NoError(t, err)
	assert.Contains(t, string(b), "op=buffer")
}

func TestMerge(t *testing.T) {
	out, err := run(t, "merge", write(t, "a.wkt", square), write(t, "b.wkt", far))
	require.NoError(t, err)
	mp, ok := geometry(t, out).(orb.MultiPolygon)
	require.True(t, ok)
	assert.Len(t, mp, 2)

	_, err = run(t, "merge", write(t, "a.wkt", square), write(t, "b.wkt", cut))
	assert.ErrorIs(t, err, geomutil.ErrMixedGeometryKinds)
}

func TestUnion(t *testing.T) {
	out, err := run(t, "union", write(t, "a.wkt", square), write(t, "b.wkt", neighbor))
	require.NoError(t, err)
	g := geometry(t, out)
	require.IsType(t, orb.Polygon{}, g)
	assert.InDelta(t, 200, planar.Area(g), 1e-9)

	_, err = run(t, "union", write(t, "b.wkt", cut))
	assert.ErrorIs(t, err, geomutil.ErrUnsupportedGeometry)
}

func TestDifference(t *testing.T) {
	hole := write(t, "h.wkt", "POLYGON ((4 4, 6 4, 6 6, 4 6, 4 4))")
	out, err := run(t, "difference", write(t, "a.wkt", square), hole)
	require.NoError(t, err)
	p, ok := geometry(t, out).(orb.Polygon)
	require.True(t, ok)
	assert.Len(t, p, 2)
	assert.InDelta(t, 96, planar.Area(p), 1e-9)
}

func TestIntersection(t *testing.T) {
	a := write(t, "a.wkt", square)

	out, err := run(t, "intersection", a, write(t, "b.wkt", far))
	require.NoError(t, err)
	assert.Equal(t, "null\n", out)

	out, err = run(t, "intersection", a, write(t, "c.wkt", "POLYGON ((5 5, 15 5, 15 15, 5 15, 5 5))"))
	require.NoError(t, err)
	assert.InDelta(t, 25, planar.Area(geometry(t, out)), 1e-9)
}

func TestArgs(t *testing.T) {
	_, err := run(t, "split", "only-one.wkt")
	assert.Error(t, err)
	_, err = run(t, "merge", filepath.Join(t.TempDir(), "missing.wkt"))
	assert.Error(t, err)
}

func TestViewerConfig(t *testing.T) {
	a := &app{cfg: viper.New(), log: logrus.New(), engine: geomutil.New()}
	a.cfg.Set("crs", "EPSG:3857")
	a.cfg.Set("distance", 2.5)
	a.cfg.Set("name-column-width", 30)
	a.cfg.Set("attribute-names", map[string]string{"owner": "Owner"})

	cfg := a.viewerConfig()
	assert.Equal(t, "EPSG:3857", cfg.CRS)
	assert.Equal(t, 2.5, cfg.BufferDistance)
	assert.Equal(t, 30, cfg.NameColumnWidth)
	assert.Equal(t, map[string]string{"owner": "Owner"}, cfg.AttributeNames)
	assert.Nil(t, cfg.AttributeFilter)
	assert.Same(t, a.engine, cfg.Engine)

	a.cfg.Set("attributes", []string{"owner", "area"})
	assert.Equal(t, []string{"owner", "area"}, a.viewerConfig().AttributeFilter)
}
