package geom

import (
	"encoding/xml"
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geokit/internal/geomutil"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPolygon struct {
	Outer kmlCoords   `xml:"outerBoundaryIs>LinearRing"`
	Inner []kmlCoords `xml:"innerBoundaryIs>LinearRing"`
}

type kmlPlacemark struct {
	Name       string      `xml:"name"`
	Point      *kmlCoords  `xml:"Point"`
	LineString *kmlCoords  `xml:"LineString"`
	Polygon    *kmlPolygon `xml:"Polygon"`
}

type kmlDoc struct {
	Placemarks []kmlPlacemark `xml:"Document>Placemark"`
	Loose      []kmlPlacemark `xml:"Placemark"`
}

// LoadKML reads Placemarks holding a Point, LineString or Polygon and
// returns them as features carrying the placemark name.
// KML coordinates are "lon,lat[,alt]"; altitude is ignored.
func LoadKML(path string) ([]geomutil.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	var out []geomutil.Value
	for _, pm := range append(doc.Placemarks, doc.Loose...) {
		var g orb.Geometry
		switch {
		case pm.Point != nil:
			pts := parseKMLCoords(pm.Point.Coordinates)
			if len(pts) == 0 {
				continue
			}
			g = orb.Point(pts[0])
		case pm.LineString != nil:
			ls := parseKMLCoords(pm.LineString.Coordinates)
			if len(ls) < 2 {
				continue
			}
			g = orb.LineString(ls)
		case pm.Polygon != nil:
			outer := parseKMLCoords(pm.Polygon.Outer.Coordinates)
			if len(outer) < 4 {
				continue
			}
			poly := orb.Polygon{orb.Ring(outer)}
			for _, in := range pm.Polygon.Inner {
				if r := parseKMLCoords(in.Coordinates); len(r) >= 4 {
					poly = append(poly, orb.Ring(r))
				}
			}
			g = poly
		default:
			continue
		}
		f := geojson.NewFeature(g)
		if pm.Name != "" {
			f.Properties["name"] = pm.Name
		}
		out = append(out, geomutil.Wrap(f))
	}
	if len(out) == 0 {
		return nil, errors.New("kml: no placemarks found")
	}
	return out, nil
}

// parseKMLCoords parses whitespace separated "lon,lat[,alt]" tuples.
func parseKMLCoords(s string) []orb.Point {
	var pts []orb.Point
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		pts = append(pts, orb.Point{lon, lat})
	}
	return pts
}
