package geomutil

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func box(x0, y0, x1, y1 float64) orb.Polygon {
	return orb.Polygon{{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}}
}

// boxWithHole is a 10x10 box with a 2x2 hole in the middle.
func boxWithHole() orb.Polygon {
	p := box(0, 0, 10, 10)
	return append(p, orb.Ring{{4, 4}, {4, 6}, {6, 6}, {6, 4}, {4, 4}})
}

// uShape is a 30x30 square with a 10 wide notch cut down from the top,
// leaving two limbs.
func uShape() orb.Polygon {
	return orb.Polygon{{
		{0, 0}, {30, 0}, {30, 30}, {20, 30}, {20, 10},
		{10, 10}, {10, 30}, {0, 30}, {0, 0},
	}}
}

func feature(g orb.Geometry, props map[string]any) *geojson.Feature {
	f := geojson.NewFeature(g)
	f.ID = "source"
	for k, v := range props {
		f.Properties[k] = v
	}
	return f
}
