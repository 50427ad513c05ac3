// Package geom loads and encodes the file formats the tools read and write:
// GeoJSON, WKT, CSV point tables and KML placemarks.
package geom

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geokit/internal/geomutil"
)

// Extensions lists the file extensions Load understands.
var Extensions = []string{".geojson", ".json", ".wkt", ".csv", ".kml"}

// Supported reports whether Load can read path.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads path, choosing the decoder by extension.
func Load(path string) ([]geomutil.Value, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".geojson", ".json":
		return LoadGeoJSON(path)
	case ".wkt":
		return LoadWKT(path)
	case ".csv":
		return LoadCSV(path)
	case ".kml":
		return LoadKML(path)
	default:
		return nil, fmt.Errorf("unsupported file: %q", ext)
	}
}

// Encode writes vs as GeoJSON. A single value becomes a Feature or a
// geometry object. Several bare geometries become a GeometryCollection, and
// anything holding a feature becomes a FeatureCollection.
func Encode(w io.Writer, vs []geomutil.Value) error {
	var doc any
	switch {
	case len(vs) == 1 && vs[0].IsFeature():
		doc = vs[0].Feature()
	case len(vs) == 1:
		doc = geojson.NewGeometry(vs[0].Geometry())
	case !anyFeature(vs):
		c := make(orb.Collection, 0, len(vs))
		for _, v := range vs {
			c = append(c, v.Geometry())
		}
		doc = geojson.NewGeometry(c)
	default:
		fc := geojson.NewFeatureCollection()
		for _, v := range vs {
			if f := v.Feature(); f != nil {
				fc.Append(f)
				continue
			}
			fc.Append(geojson.NewFeature(v.Geometry()))
		}
		doc = fc
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

func anyFeature(vs []geomutil.Value) bool {
	for _, v := range vs {
		if v.IsFeature() {
			return true
		}
	}
	return false
}

// Bounds returns the extent of all values.
func Bounds(vs []geomutil.Value) orb.Bound {
	var (
		b   orb.Bound
		set bool
	)
	for _, v := range vs {
		g := v.Geometry()
		if g == nil || geomutil.KindOf(g) == geomutil.KindInvalid || isEmpty(g) {
			continue
		}
		if !set {
			b, set = g.Bound(), true
			continue
		}
		b = b.Union(g.Bound())
	}
	return b
}

// Counts returns the number of points, lines and polygons in vs, counting
// every part of multi-part geometries.
func Counts(vs []geomutil.Value) (points, lines, polygons int) {
	for _, v := range vs {
		switch g := v.Geometry().(type) {
		case orb.Point:
			points++
		case orb.MultiPoint:
			points += len(g)
		case orb.LineString:
			lines++
		case orb.MultiLineString:
			lines += len(g)
		case orb.Polygon:
			if len(g) > 0 {
				polygons++
			}
		case orb.MultiPolygon:
			polygons += len(g)
		}
	}
	return points, lines, polygons
}

func isEmpty(g orb.Geometry) bool {
	switch g := g.(type) {
	case orb.Polygon:
		return len(g) == 0
	case orb.MultiPolygon:
		return len(g) == 0
	case orb.LineString:
		return len(g) == 0
	case orb.MultiLineString:
		return len(g) == 0
	case orb.MultiPoint:
		return len(g) == 0
	}
	return false
}
