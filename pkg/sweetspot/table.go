package sweetspot

import (
	"fmt"
	"mwasens/pkg/beam"
	"mwasens/pkg/domain"
	"mwasens/pkg/serrors"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// builtin are the zenith pointing and the first ring of the grid. Other
// gridpoints come from a table file.
var builtin = []Gridpoint{ //nolint: gochecknoglobals
	{Number: 0, Pointing: domain.Pointing{AzimuthDeg: 0, ZenithAngleDeg: 0}},
	{
		Number:   1,
		Pointing: domain.Pointing{AzimuthDeg: 0, ZenithAngleDeg: 6.8088},
		Delays:   domain.Delays{3, 3, 3, 3, 2, 2, 2, 2, 1, 1, 1, 1, 0, 0, 0, 0},
	},
	{
		Number:   2,
		Pointing: domain.Pointing{AzimuthDeg: 90, ZenithAngleDeg: 6.8088},
		Delays:   domain.Delays{0, 1, 2, 3, 0, 1, 2, 3, 0, 1, 2, 3, 0, 1, 2, 3},
	},
	{
		Number:   3,
		Pointing: domain.Pointing{AzimuthDeg: 180, ZenithAngleDeg: 6.8088},
		Delays:   domain.Delays{0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3},
	},
	{
		Number:   4,
		Pointing: domain.Pointing{AzimuthDeg: 270, ZenithAngleDeg: 6.8088},
		Delays:   domain.Delays{3, 2, 1, 0, 3, 2, 1, 0, 3, 2, 1, 0, 3, 2, 1, 0},
	},
}

// Static is an in-memory Table.
type Static struct {
	points map[int]Gridpoint
}

// Ensure Static conforms to the Table interface at compile time.
var _ Table = (*Static)(nil)

// New returns a table with the built-in gridpoints plus extra, which
// replace built-in entries with the same number.
func New(extra ...Gridpoint) *Static {
	s := &Static{points: make(map[int]Gridpoint, len(builtin)+len(extra))}
	for _, g := range builtin {
		s.points[g.Number] = g
	}
	for _, g := range extra {
		s.points[g.Number] = g
	}

	return s
}

// Gridpoint implements Table.
func (s *Static) Gridpoint(number int) (Gridpoint, error) {
	g, ok := s.points[number]
	if !ok {
		return Gridpoint{}, serrors.With(serrors.ErrNotFound, "gridpoint %d is not in the sweet spot table", number)
	}

	return g, nil
}

// Numbers returns the known gridpoint numbers in ascending order.
func (s *Static) Numbers() []int {
	out := make([]int, 0, len(s.points))
	for n := range s.points {
		out = append(out, n)
	}
	slices.Sort(out)

	return out
}

type fileEntry struct {
	Number         int      `yaml:"number"`
	AzimuthDeg     float64  `yaml:"azimuth_deg"`
	ElevationDeg   float64  `yaml:"elevation_deg"`
	ZenithAngleDeg *float64 `yaml:"zenith_angle_deg"`
	Delays         []int    `yaml:"delays"`
}

type fileFormat struct {
	Gridpoints []fileEntry `yaml:"gridpoints"`
}

// Parse decodes a YAML gridpoint list. Zenith angle defaults to
// 90 - elevation_deg when omitted, and delays default to the ones steering
// the tile to the pointing.
func Parse(b []byte) ([]Gridpoint, error) {
	var f fileFormat
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, serrors.Wrap(serrors.ErrBadInput, err, "could not decode sweet spot table")
	}

	out := make([]Gridpoint, 0, len(f.Gridpoints))
	for _, e := range f.Gridpoints {
		za := 90 - e.ElevationDeg
		if e.ZenithAngleDeg != nil {
			za = *e.ZenithAngleDeg
		}
		g := Gridpoint{Number: e.Number, Pointing: domain.Pointing{AzimuthDeg: e.AzimuthDeg, ZenithAngleDeg: za}}
		if e.Delays == nil {
			g.Delays = beam.PointingDelays(g.Pointing)
		} else {
			d, err := domain.DelaysFromInts(e.Delays)
			if err != nil {
				return nil, fmt.Errorf("could not read gridpoint %d: %w", e.Number, err)
			}
			g.Delays = d
		}
		out = append(out, g)
	}

	return out, nil
}

// Load reads a YAML table from path and merges it over the built-in gridpoints.
func Load(path string) (*Static, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read sweet spot table: %w", err)
	}
	points, err := Parse(b)
	if err != nil {
		return nil, err
	}

	return New(points...), nil
}
