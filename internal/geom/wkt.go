package geom

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"

	"geokit/internal/geomutil"
)

// ParseWKT parses a single WKT geometry. Collections and empty input are
// rejected.
func ParseWKT(s string) (orb.Geometry, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty wkt")
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, err
	}
	if geomutil.KindOf(g) == geomutil.KindInvalid {
		return nil, fmt.Errorf("unsupported wkt type %q", g.GeoJSONType())
	}
	return g, nil
}

// LoadWKT reads one geometry per statement. A statement starts on a line
// beginning with a geometry tag and may continue over following lines.
// Blank lines and lines starting with # are ignored.
func LoadWKT(path string) ([]geomutil.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var stmts []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if len(stmts) > 0 && !unicode.IsLetter([]rune(line)[0]) {
			stmts[len(stmts)-1] += " " + line
			continue
		}
		stmts = append(stmts, line)
	}
	if len(stmts) == 0 {
		return nil, errors.New("empty wkt")
	}

	out := make([]geomutil.Value, 0, len(stmts))
	for i, s := range stmts {
		g, err := ParseWKT(s)
		if err != nil {
			return nil, fmt.Errorf("wkt statement %d: %w", i+1, err)
		}
		out = append(out, geomutil.Bare(g))
	}
	return out, nil
}
