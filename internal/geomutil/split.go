package geomutil

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats/scalar"

	"geokit/internal/algebra"
)

// SplitByLine cuts polygon along line and returns the pieces. A line that
// crosses the boundary fewer than twice leaves the polygon whole: the result
// is a single copy of it. A line entirely outside the polygon's extent is an
// error (ErrDegenerateCut).
//
// Pieces are ordered by where they are first met walking the exterior ring
// from its first vertex, and each piece starts at the first boundary vertex
// it owns on that walk.
func (e *Engine) SplitByLine(polygon, line Value, crs string) ([]Value, error) {
	const op = "split"
	pg, err := unwrap(op, polygon)
	if err != nil {
		return nil, err
	}
	poly, ok := pg.(orb.Polygon)
	if !ok {
		return nil, opError(op, ErrUnsupportedGeometry, "cannot split %s", KindOf(pg))
	}
	if len(poly) == 0 || len(poly[0]) < 4 {
		return nil, opError(op, ErrUnsupportedGeometry, "empty polygon")
	}
	lg, err := unwrap(op, line)
	if err != nil {
		return nil, err
	}
	var cutters []orb.LineString
	switch l := lg.(type) {
	case orb.LineString:
		cutters = []orb.LineString{l}
	case orb.MultiLineString:
		cutters = l
	default:
		return nil, opError(op, ErrUnsupportedGeometry, "cannot cut with %s", KindOf(lg))
	}
	cb := orb.MultiLineString(cutters).Bound()
	if len(cutters) == 0 || !poly.Bound().Intersects(cb) {
		return nil, opError(op, ErrDegenerateCut, "line %v outside polygon extent %v", cb, poly.Bound())
	}

	pieces := newSubdivision(e.alg, poly, cutters).pieces()
	if len(pieces) < 2 {
		pieces = []orb.Polygon{poly.Clone()}
	}

	shape := shapeOf(polygon, line)
	out := make([]Value, len(pieces))
	for i, p := range pieces {
		out[i] = e.rewrap(p, shape)
	}
	e.trace(op, crs, logrus.Fields{"rings": len(poly), "pieces": len(out)})
	return out, nil
}

// walkKey is a position on the polygon boundary: ring, segment within the
// ring and parameter along the segment.
type walkKey struct {
	ring, seg int
	t         float64
}

func (k walkKey) less(o walkKey) bool {
	if k.ring != o.ring {
		return k.ring < o.ring
	}
	if k.seg != o.seg {
		return k.seg < o.seg
	}
	return k.t < o.t
}

var noKey = walkKey{ring: math.MaxInt, seg: math.MaxInt}

// edge is an undirected edge of the subdivision. Boundary edges run a→b in
// the ring's direction; half-edge 2i is a→b and 2i+1 is b→a.
type edge struct {
	a, b    int
	chord   bool
	key     walkKey
	removed bool
}

// subdivision is the planar graph formed by the polygon rings and the
// parts of the cutting line that lie inside the polygon.
type subdivision struct {
	alg   algebra.Algebra
	poly  orb.Polygon
	eps   float64
	nodes []orb.Point
	exact map[orb.Point]int
	grid  map[[2]int64][]int
	edges []edge
	adj   [][]int
	seen  map[[2]int]bool
}

type stop struct {
	t    float64
	node int
}

func newSubdivision(alg algebra.Algebra, poly orb.Polygon, cutters []orb.LineString) *subdivision {
	rings := normalizeRings(poly)
	s := &subdivision{
		alg:   alg,
		poly:  rings,
		eps:   algebra.Tolerance(poly.Bound().Union(orb.MultiLineString(cutters).Bound())),
		exact: make(map[orb.Point]int),
		grid:  make(map[[2]int64][]int),
		seen:  make(map[[2]int]bool),
	}

	ringStops := make([][][]stop, len(rings))
	for r, ring := range rings {
		ringStops[r] = make([][]stop, len(ring)-1)
		for i := 0; i+1 < len(ring); i++ {
			ringStops[r][i] = []stop{{0, s.node(ring[i])}, {1, s.node(ring[i+1])}}
		}
	}
	cutStops := make([][][]stop, len(cutters))
	for c, ls := range cutters {
		cutStops[c] = make([][]stop, max(len(ls)-1, 0))
	}

	for r, ring := range rings {
		for i := 0; i+1 < len(ring); i++ {
			a0, a1 := ring[i], ring[i+1]
			sb := orb.MultiPoint{a0, a1}.Bound().Pad(s.eps)
			for c, ls := range cutters {
				for j := 0; j+1 < len(ls); j++ {
					b0, b1 := ls[j], ls[j+1]
					if !sb.Intersects(orb.MultiPoint{b0, b1}.Bound()) {
						continue
					}
					for _, p := range alg.SegmentIntersection(a0, a1, b0, b1) {
						n := s.node(p)
						ringStops[r][i] = append(ringStops[r][i], stop{param(p, a0, a1), n})
						cutStops[c][j] = append(cutStops[c][j], stop{param(p, b0, b1), n})
					}
				}
			}
		}
	}

	for r := range ringStops {
		for i, stops := range ringStops[r] {
			sortStops(stops)
			for k := 0; k+1 < len(stops); k++ {
				s.addEdge(stops[k].node, stops[k+1].node, false, walkKey{r, i, stops[k].t})
			}
		}
	}
	for c, ls := range cutters {
		for j := range cutStops[c] {
			stops := append(cutStops[c][j], stop{0, s.node(ls[j])}, stop{1, s.node(ls[j+1])})
			sortStops(stops)
			for k := 0; k+1 < len(stops); k++ {
				a, b := stops[k].node, stops[k+1].node
				if a == b {
					continue
				}
				pa, pb := s.nodes[a], s.nodes[b]
				mid := orb.Point{(pa[0] + pb[0]) / 2, (pa[1] + pb[1]) / 2}
				if alg.Locate(mid, rings) == algebra.Interior {
					s.addEdge(a, b, true, noKey)
				}
			}
		}
	}
	return s
}

// normalizeRings returns a copy of poly with a counter-clockwise exterior,
// clockwise holes, closed rings and no repeated vertices.
func normalizeRings(poly orb.Polygon) orb.Polygon {
	out := make(orb.Polygon, 0, len(poly))
	for i, r := range poly {
		c := make(orb.Ring, 0, len(r)+1)
		for _, p := range r {
			if len(c) > 0 && c[len(c)-1] == p {
				continue
			}
			c = append(c, p)
		}
		if len(c) > 0 && c[0] != c[len(c)-1] {
			c = append(c, c[0])
		}
		if len(c) < 4 {
			continue
		}
		want := orb.CW
		if i == 0 {
			want = orb.CCW
		}
		if c.Orientation() != want {
			c.Reverse()
		}
		out = append(out, c)
	}
	return out
}

func param(p, a, b orb.Point) float64 {
	dx, dy := b[0]-a[0], b[1]-a[1]
	l := dx*dx + dy*dy
	if l == 0 {
		return 0
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / l
	return math.Min(1, math.Max(0, t))
}

func sortStops(stops []stop) {
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].t < stops[j].t })
}

// node returns the index of the node at p, merging points closer than the
// tolerance.
func (s *subdivision) node(p orb.Point) int {
	if i, ok := s.exact[p]; ok {
		return i
	}
	cell := s.cell(p)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for _, i := range s.grid[[2]int64{cell[0] + dx, cell[1] + dy}] {
				q := s.nodes[i]
				if scalar.EqualWithinAbs(p[0], q[0], s.eps) && scalar.EqualWithinAbs(p[1], q[1], s.eps) {
					s.exact[p] = i
					return i
				}
			}
		}
	}
	i := len(s.nodes)
	s.nodes = append(s.nodes, p)
	s.adj = append(s.adj, nil)
	s.exact[p] = i
	s.grid[cell] = append(s.grid[cell], i)
	return i
}

func (s *subdivision) cell(p orb.Point) [2]int64 {
	size := 2 * s.eps
	return [2]int64{int64(math.Floor(p[0] / size)), int64(math.Floor(p[1] / size))}
}

func (s *subdivision) addEdge(a, b int, chord bool, key walkKey) {
	if a == b {
		return
	}
	k := [2]int{min(a, b), max(a, b)}
	if s.seen[k] {
		return
	}
	s.seen[k] = true
	i := len(s.edges)
	s.edges = append(s.edges, edge{a: a, b: b, chord: chord, key: key})
	s.adj[a] = append(s.adj[a], i)
	s.adj[b] = append(s.adj[b], i)
}

func (s *subdivision) from(h int) int {
	if h%2 == 0 {
		return s.edges[h/2].a
	}
	return s.edges[h/2].b
}

func (s *subdivision) to(h int) int { return s.from(h ^ 1) }

func (s *subdivision) degree(n int) int {
	d := 0
	for _, e := range s.adj[n] {
		if !s.edges[e].removed {
			d++
		}
	}
	return d
}

// pruneDangles removes chord ends that stop inside the polygon.
func (s *subdivision) pruneDangles() {
	var queue []int
	for n := range s.nodes {
		if s.degree(n) == 1 {
			queue = append(queue, n)
		}
	}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, e := range s.adj[n] {
			if s.edges[e].removed {
				continue
			}
			s.edges[e].removed = true
			other := s.edges[e].a
			if other == n {
				other = s.edges[e].b
			}
			if s.degree(other) == 1 {
				queue = append(queue, other)
			}
		}
	}
}

// faces traces every face of the graph keeping the face on the left of
// each half-edge. It returns the half-edges of each face and the face of
// each half-edge.
func (s *subdivision) faces() ([][]int, []int) {
	out := make([][]int, len(s.nodes))
	for i, e := range s.edges {
		if e.removed {
			continue
		}
		out[e.a] = append(out[e.a], 2*i)
		out[e.b] = append(out[e.b], 2*i+1)
	}
	pos := make([]int, 2*len(s.edges))
	for n, hs := range out {
		origin := s.nodes[n]
		angle := func(h int) float64 {
			p := s.nodes[s.to(h)]
			return math.Atan2(p[1]-origin[1], p[0]-origin[0])
		}
		sort.SliceStable(hs, func(i, j int) bool { return angle(hs[i]) < angle(hs[j]) })
		for i, h := range hs {
			pos[h] = i
		}
	}
	next := func(h int) int {
		twin := h ^ 1
		hs := out[s.from(twin)]
		return hs[(pos[twin]-1+len(hs))%len(hs)]
	}

	faceOf := make([]int, 2*len(s.edges))
	for i := range faceOf {
		faceOf[i] = -1
	}
	var faces [][]int
	for h := range faceOf {
		if s.edges[h/2].removed || faceOf[h] >= 0 {
			continue
		}
		f := len(faces)
		var cycle []int
		for cur := h; faceOf[cur] < 0; cur = next(cur) {
			faceOf[cur] = f
			cycle = append(cycle, cur)
		}
		faces = append(faces, cycle)
	}
	return faces, faceOf
}

// removeBridges drops chords with the same face on both sides. Such chords
// separate nothing, e.g. a cut running between two holes.
func (s *subdivision) removeBridges(faceOf []int) bool {
	removed := false
	for i := range s.edges {
		e := &s.edges[i]
		if e.removed || !e.chord {
			continue
		}
		if faceOf[2*i] == faceOf[2*i+1] {
			e.removed = true
			removed = true
		}
	}
	return removed
}

type piece struct {
	poly orb.Polygon
	key  walkKey
	area float64
}

// pieces returns the polygons the subdivision cuts the input into.
func (s *subdivision) pieces() []orb.Polygon {
	var faces [][]int
	for {
		s.pruneDangles()
		var faceOf []int
		faces, faceOf = s.faces()
		if !s.removeBridges(faceOf) {
			break
		}
	}

	var (
		ps    []*piece
		holes []orb.Ring
	)
	for _, f := range faces {
		outside := false
		start, key := 0, noKey
		for i, h := range f {
			e := s.edges[h/2]
			if e.chord {
				continue
			}
			if h%2 == 1 {
				outside = true
				break
			}
			if e.key.less(key) {
				start, key = i, e.key
			}
		}
		if outside {
			continue
		}
		ring := make(orb.Ring, 0, len(f)+1)
		for i := range f {
			ring = append(ring, s.nodes[s.from(f[(start+i)%len(f)])])
		}
		ring = append(ring, ring[0])
		// signed: clockwise faces are holes
		signed := planar.Area(ring)
		area := math.Abs(signed)
		if area <= s.eps*s.eps {
			continue
		}
		if signed > 0 {
			ps = append(ps, &piece{poly: orb.Polygon{ring}, key: key, area: area})
		} else {
			holes = append(holes, ring)
		}
	}

	for _, h := range holes {
		var owner *piece
		for _, p := range ps {
			if owner != nil && p.area >= owner.area {
				continue
			}
			if s.encloses(p.poly[0], h) {
				owner = p
			}
		}
		if owner != nil {
			owner.poly = append(owner.poly, h)
		}
	}

	sort.SliceStable(ps, func(i, j int) bool { return ps[i].key.less(ps[j].key) })
	out := make([]orb.Polygon, len(ps))
	for i, p := range ps {
		out[i] = p.poly
	}
	return out
}

// encloses reports whether hole lies inside the exterior ring.
func (s *subdivision) encloses(exterior, hole orb.Ring) bool {
	outer := orb.Polygon{exterior}
	for _, p := range hole {
		switch s.alg.Locate(p, outer) {
		case algebra.Interior:
			return true
		case algebra.Exterior:
			return false
		}
	}
	return false
}
