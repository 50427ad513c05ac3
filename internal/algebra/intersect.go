package algebra

import (
	"math"

	"github.com/ctessum/geom"
	"github.com/paulmach/orb"
)

// SegmentIntersection follows the Martínez et al. formulation used by
// polyclip, with a tolerance on the parallel test and the segment
// parameters so that touching segments report their contact point.
func (Planar) SegmentIntersection(a0, a1, b0, b1 orb.Point) []orb.Point {
	bound := orb.MultiPoint{a0, a1, b0, b1}.Bound()
	eps := tolerance(bound)

	d0 := sub(a1, a0)
	d1 := sub(b1, b0)
	e := sub(b0, a0)
	len0 := math.Hypot(d0[0], d0[1])
	len1 := math.Hypot(d1[0], d1[1])
	if len0 == 0 || len1 == 0 {
		return degenerateIntersection(a0, a1, b0, b1, eps)
	}

	kross := cross(d0, d1)
	if math.Abs(kross) > Epsilon*len0*len1 {
		// not parallel
		s := cross(e, d1) / kross
		t := cross(e, d0) / kross
		ps := eps / len0
		pt := eps / len1
		if s < -ps || s > 1+ps || t < -pt || t > 1+pt {
			return nil
		}
		s = clamp01(s)
		return []orb.Point{{a0[0] + s*d0[0], a0[1] + s*d0[1]}}
	}

	// parallel; distinct lines share nothing
	if math.Abs(cross(e, d0))/len0 > eps {
		return nil
	}

	// same line, test for overlap
	sqrLen0 := dot(d0, d0)
	s0 := dot(d0, e) / sqrLen0
	s1 := s0 + dot(d0, d1)/sqrLen0
	smin, smax := math.Min(s0, s1), math.Max(s0, s1)
	ps := eps / len0
	if smax < -ps || smin > 1+ps {
		return nil
	}
	lo := math.Max(0, smin)
	hi := math.Min(1, smax)
	first := orb.Point{a0[0] + lo*d0[0], a0[1] + lo*d0[1]}
	if hi-lo <= ps {
		return []orb.Point{first}
	}
	return []orb.Point{first, {a0[0] + hi*d0[0], a0[1] + hi*d0[1]}}
}

// degenerateIntersection handles segments with coincident end points.
func degenerateIntersection(a0, a1, b0, b1 orb.Point, eps float64) []orb.Point {
	switch {
	case a0 == a1 && b0 == b1:
		if math.Hypot(a0[0]-b0[0], a0[1]-b0[1]) <= eps {
			return []orb.Point{a0}
		}
	case a0 == a1:
		if DistanceToSegment(a0, b0, b1) <= eps {
			return []orb.Point{a0}
		}
	default:
		if DistanceToSegment(b0, a0, a1) <= eps {
			return []orb.Point{b0}
		}
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Locate reports whether p is inside, outside or on the boundary of poly.
// Boundary contact is decided with a tolerance; the inside test is the
// ray casting of github.com/ctessum/geom.
func (Planar) Locate(p orb.Point, poly orb.Polygon) Location {
	if len(poly) == 0 {
		return Exterior
	}
	eps := tolerance(poly.Bound())
	for _, r := range poly {
		for i := 1; i < len(r); i++ {
			if DistanceToSegment(p, r[i-1], r[i]) <= eps {
				return Boundary
			}
		}
	}
	switch toGeomPoint(p).Within(toGeomPolygon(poly, false)) {
	case geom.Inside:
		return Interior
	case geom.OnEdge:
		return Boundary
	}
	return Exterior
}
