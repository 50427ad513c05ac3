package geom

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geokit/internal/geomutil"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadGeoJSON(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		kinds    []geomutil.Kind
		features bool
	}{
		{
			name: "collection",
			content: `{"type":"FeatureCollection","features":[
				{"type":"Feature","id":"a","properties":{"n":1},"geometry":{"type":"Point","coordinates":[1,2]}},
				{"type":"Feature","properties":{},"geometry":{"type":"GeometryCollection","geometries":[]}},
				{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}
			]}`,
			kinds:    []geomutil.Kind{geomutil.KindPoint, geomutil.KindPolygon},
			features: true,
		},
		{
			name:     "feature",
			content:  `{"type":"Feature","properties":{},"geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]}}`,
			kinds:    []geomutil.Kind{geomutil.KindLineString},
			features: true,
		},
		{
			name:    "geometry",
			content: `{"type":"MultiPoint","coordinates":[[0,0],[1,1]]}`,
			kinds:   []geomutil.Kind{geomutil.KindMultiPoint},
		},
		{
			name: "geometry collection",
			content: `{"type":"GeometryCollection","geometries":[
				{"type":"Point","coordinates":[0,0]},
				{"type":"LineString","coordinates":[[0,0],[1,1]]}
			]}`,
			kinds: []geomutil.Kind{geomutil.KindPoint, geomutil.KindLineString},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs, err := Load(writeFile(t, "in.geojson", tt.content))
			require.NoError(t, err)
			require.Len(t, vs, len(tt.kinds))
			for i, v := range vs {
				assert.Equal(t, tt.kinds[i], v.Kind())
				assert.Equal(t, tt.features, v.IsFeature())
			}
		})
	}

	_, err := Load(writeFile(t, "bad.json", `{"coordinates":[1,2]}`))
	assert.Error(t, err)
}

func TestLoadWKT(t *testing.T) {
	p := writeFile(t, "in.wkt", `# parcels
POLYGON ((0 0, 10 0, 10 10,
  0 10, 0 0))
LINESTRING (5 -5, 5 15)
`)
	vs, err := Load(p)
	require.NoError(t, err)
	require.Len(t, vs, 2)
	assert.Equal(t, orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}}, vs[0].Geometry())
	assert.Equal(t, orb.LineString{{5, -5}, {5, 15}}, vs[1].Geometry())

	_, err = ParseWKT("   ")
	assert.Error(t, err)
	_, err = ParseWKT("GEOMETRYCOLLECTION (POINT (1 2))")
	assert.Error(t, err)
	g, err := ParseWKT("POINT (1 2)")
	require.NoError(t, err)
	assert.Equal(t, orb.Point{1, 2}, g)
}

func TestLoadCSV(t *testing.T) {
	p := writeFile(t, "in.csv", "name,Lat,Lon\nhq,50.5,10.25\nbroken,x,y\nsite,51,11\n")
	vs, err := Load(p)
	require.NoError(t, err)
	require.Len(t, vs, 2)
	f := vs[0].Feature()
	require.NotNil(t, f)
	assert.Equal(t, orb.Point{10.25, 50.5}, f.Geometry)
	assert.Equal(t, geojson.Properties{"name": "hq"}, f.Properties)

	_, err = Load(writeFile(t, "nocols.csv", "a,b\n1,2\n"))
	assert.Error(t, err)
}

func TestLoadKML(t *testing.T) {
	p := writeFile(t, "in.kml", `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2"><Document>
  <Placemark><name>tower</name><Point><coordinates>10.5,50.25,0</coordinates></Point></Placemark>
  <Placemark><name>road</name><LineString><coordinates>0,0 1,1 2,1</coordinates></LineString></Placemark>
  <Placemark><Polygon>
    <outerBoundaryIs><LinearRing><coordinates>0,0 4,0 4,4 0,4 0,0</coordinates></LinearRing></outerBoundaryIs>
    <innerBoundaryIs><LinearRing><coordinates>1,1 1,2 2,2 2,1 1,1</coordinates></LinearRing></innerBoundaryIs>
  </Polygon></Placemark>
</Document></kml>`)
	vs, err := Load(p)
	require.NoError(t, err)
	require.Len(t, vs, 3)
	assert.Equal(t, orb.Point{10.5, 50.25}, vs[0].Geometry())
	assert.Equal(t, "tower", vs[0].Feature().Properties["name"])
	assert.Equal(t, geomutil.KindLineString, vs[1].Kind())
	poly, ok := vs[2].Geometry().(orb.Polygon)
	require.True(t, ok)
	assert.Len(t, poly, 2)
}

func TestLoadUnsupported(t *testing.T) {
	_, err := Load(writeFile(t, "in.shp", ""))
	assert.Error(t, err)
	assert.False(t, Supported("in.shp"))
	assert.True(t, Supported("IN.GeoJSON"))
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, []geomutil.Value{geomutil.Bare(orb.Point{1, 2})}))
	assert.JSONEq(t, `{"type":"Point","coordinates":[1,2]}`, buf.String())

	buf.Reset()
	bare := []geomutil.Value{
		geomutil.Bare(orb.Point{1, 2}),
		geomutil.Bare(orb.LineString{{0, 0}, {1, 1}}),
	}
	require.NoError(t, Encode(&buf, bare))
	assert.JSONEq(t, `{"type":"GeometryCollection","geometries":[
		{"type":"Point","coordinates":[1,2]},
		{"type":"LineString","coordinates":[[0,0],[1,1]]}]}`, buf.String())

	buf.Reset()
	f := geojson.NewFeature(orb.Point{1, 2})
	f.ID = "x"
	vs := []geomutil.Value{geomutil.Wrap(f), geomutil.Bare(orb.LineString{{0, 0}, {1, 1}})}
	require.NoError(t, Encode(&buf, vs))

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			ID       any `json:"id"`
			Geometry struct {
				Type string `json:"type"`
			} `json:"geometry"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, "x", fc.Features[0].ID)
	assert.Equal(t, "LineString", fc.Features[1].Geometry.Type)
}

func TestBoundsAndCounts(t *testing.T) {
	vs := []geomutil.Value{
		geomutil.Bare(orb.Point{-1, 5}),
		geomutil.Bare(orb.Polygon{}),
		geomutil.Bare(orb.MultiLineString{{{0, 0}, {3, 2}}, {{1, 1}, {2, 2}}}),
	}
	assert.Equal(t, orb.Bound{Min: orb.Point{-1, 0}, Max: orb.Point{3, 5}}, Bounds(vs))

	pts, lines, polys := Counts(vs)
	assert.Equal(t, 1, pts)
	assert.Equal(t, 2, lines)
	assert.Equal(t, 0, polys)
}
