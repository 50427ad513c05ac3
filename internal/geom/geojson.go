package geom

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geokit/internal/geomutil"
)

// LoadGeoJSON reads a FeatureCollection, a Feature or a bare geometry.
func LoadGeoJSON(path string) ([]geomutil.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeGeoJSON(data)
}

// DecodeGeoJSON decodes GeoJSON into engine values. Features keep their
// wrapper; geometry collections are flattened into their members. Features
// without a supported geometry are skipped.
func DecodeGeoJSON(data []byte) ([]geomutil.Value, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	var out []geomutil.Value
	switch head.Type {
	case "":
		return nil, errors.New("invalid geojson: missing type")
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, err
		}
		for _, f := range fc.Features {
			if v, err := geomutil.Of(f); err == nil {
				out = append(out, v)
			}
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, err
		}
		if v, err := geomutil.Of(f); err == nil {
			out = append(out, v)
		}
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, err
		}
		out = appendGeometry(out, g.Geometry())
	}
	if len(out) == 0 {
		return nil, errors.New("no geometries found")
	}
	return out, nil
}

func appendGeometry(out []geomutil.Value, g orb.Geometry) []geomutil.Value {
	if c, ok := g.(orb.Collection); ok {
		for _, m := range c {
			out = appendGeometry(out, m)
		}
		return out
	}
	if geomutil.KindOf(g) != geomutil.KindInvalid {
		out = append(out, geomutil.Bare(g))
	}
	return out
}
