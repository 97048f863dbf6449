package plate

import (
	"strconv"
	"strings"

	"github.com/matzehuels/keyplate/pkg/errors"
	"github.com/matzehuels/keyplate/pkg/plate/switchhole"
)

const (
	// DefaultMaxWall is the mid-layer wall thickness used when none is
	// configured or the configured value is not understood.
	DefaultMaxWall = 10.0

	// DefaultScrewSegments is the polygon resolution of screw holes.
	DefaultScrewSegments = 20

	// cornerSegments is the polygon resolution of corner arcs.
	cornerSegments = 80

	// sectionGap is the spacing between nested mid-layer sections.
	sectionGap = 3.0

	// markerRadius is the radius of debug point markers.
	markerRadius = 1.0
)

// Options configures plate composition.
type Options struct {
	Style         switchhole.Style
	Padding       Padding
	CornerRadius  float64
	ScrewHoles    int
	ScrewDiameter float64
	ScrewSegments int
	MaxWall       MaxWall
	Sectioned     bool
	ShowPoints    bool
}

// DefaultOptions returns options with every default applied.
func DefaultOptions() Options {
	return Options{
		Style:         switchhole.DefaultStyle,
		ScrewSegments: DefaultScrewSegments,
		MaxWall:       MaxWall{Mode: WallFixed, Value: DefaultMaxWall},
	}
}

// screwsEnabled reports whether screw holes should be cut.
func (o Options) screwsEnabled() bool {
	return o.ScrewHoles > 3 && o.ScrewDiameter > 0
}

// screwSegments returns the hole resolution, falling back to the default
// for values that cannot form a polygon.
func (o Options) screwSegments() int {
	if o.ScrewSegments < 3 {
		return DefaultScrewSegments
	}
	return o.ScrewSegments
}

// Validate checks that o can be composed.
func (o Options) Validate() error {
	if _, err := switchhole.ParseStyle(string(o.Style)); err != nil {
		return err
	}
	if o.screwsEnabled() && o.ScrewHoles%2 != 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"screw hole count must be even, got %d", o.ScrewHoles)
	}
	return nil
}

// Padding is the margin added around the key bounding box on each side.
type Padding struct {
	Left, Right float64
	Top, Bottom float64
}

// ParsePadding reads horizontal and vertical padding. Each is either a
// single value applied to both sides ("5") or a pair ("4,6") giving
// left,right or top,bottom. Empty strings mean zero.
func ParsePadding(horizontal, vertical string) (Padding, error) {
	left, right, err := parsePair(horizontal)
	if err != nil {
		return Padding{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "horizontal padding %q", horizontal)
	}
	top, bottom, err := parsePair(vertical)
	if err != nil {
		return Padding{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "vertical padding %q", vertical)
	}
	return Padding{Left: left, Right: right, Top: top, Bottom: bottom}, nil
}

func parsePair(s string) (float64, float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, nil
	}
	first, second, found := strings.Cut(s, ",")
	a, err := strconv.ParseFloat(strings.TrimSpace(first), 64)
	if err != nil {
		return 0, 0, err
	}
	if !found {
		return a, a, nil
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(second), 64)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// WallMode selects how the maximum wall thickness is determined.
type WallMode int

const (
	// WallFixed uses MaxWall.Value.
	WallFixed WallMode = iota
	// WallMinPad uses the smallest padding.
	WallMinPad
	// WallMaxPad uses the largest padding.
	WallMaxPad
)

// Symbols accepted by [ParseMaxWall].
const (
	MinPadSymbol = "min_pad"
	MaxPadSymbol = "max_pad"
)

// MaxWall is the configured upper bound for mid-layer walls.
type MaxWall struct {
	Mode  WallMode
	Value float64
}

// ParseMaxWall reads a max wall setting: a number, "min_pad" or "max_pad".
// Any other value yields the default together with an
// [errors.ErrCodeInvalidWall] error, which callers report as a warning.
func ParseMaxWall(s string) (MaxWall, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return MaxWall{Mode: WallFixed, Value: DefaultMaxWall}, nil
	case MinPadSymbol:
		return MaxWall{Mode: WallMinPad}, nil
	case MaxPadSymbol:
		return MaxWall{Mode: WallMaxPad}, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return MaxWall{Mode: WallFixed, Value: DefaultMaxWall},
			errors.Wrap(errors.ErrCodeInvalidWall, err,
				"max wall %q is not a number, %q or %q; using %g", s, MinPadSymbol, MaxPadSymbol, DefaultMaxWall)
	}
	return MaxWall{Mode: WallFixed, Value: v}, nil
}

// String returns the setting in the form ParseMaxWall accepts.
func (m MaxWall) String() string {
	switch m.Mode {
	case WallMinPad:
		return MinPadSymbol
	case WallMaxPad:
		return MaxPadSymbol
	default:
		return strconv.FormatFloat(m.Value, 'g', -1, 64)
	}
}

// Resolve returns the maximum wall thickness for padding p.
func (m MaxWall) Resolve(p Padding) float64 {
	switch m.Mode {
	case WallMinPad:
		return min(p.Left, p.Right, p.Top, p.Bottom)
	case WallMaxPad:
		return max(p.Left, p.Right, p.Top, p.Bottom)
	default:
		return m.Value
	}
}
