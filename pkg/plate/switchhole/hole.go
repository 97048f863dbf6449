package switchhole

import "github.com/matzehuels/keyplate/pkg/geom"

const (
	// SwitchSize is the side of the square switch cutout.
	SwitchSize = 14.0

	// StabThreshold is the key length, in units, from which a stabilizer
	// is added.
	StabThreshold = 2.0

	// twoUnitSpan is the spacing below which the 2u relief is cut.
	twoUnitSpan = 24.0
)

// spans maps the minimum key length to the stabilizer spacing, longest
// first.
var spans = []struct {
	minUnits float64
	span     float64
}{
	{8.0, 133.35},
	{7.0, 114.0},
	{6.25, 100.0},
	{3.0, 38.1},
}

// StabSpan returns the distance between stabilizer clip centers for a key
// whose longer side is units long.
func StabSpan(units float64) float64 {
	for _, s := range spans {
		if units >= s.minUnits {
			return s.span
		}
	}
	return 23.8
}

// New returns the cutout for a key of w×h units, centered on the origin.
func New(w, h float64, style Style) geom.Shape {
	hole := geom.CenteredSquare(SwitchSize)

	long := max(w, h)
	if long < StabThreshold {
		return hole
	}

	hole = geom.Join(hole, geom.Flip(0, 1, Stabilizer(StabSpan(long), style)))
	if h > w {
		hole = geom.Turn(90, hole)
	}
	return hole
}

// Stabilizer returns the stabilizer cutout for clips span apart, drawn
// horizontally and centered on the origin.
func Stabilizer(span float64, style Style) geom.Shape {
	c := clip(style)
	stab := geom.Join(
		geom.Move(span/2, 0, c),
		geom.Move(-span/2, 0, geom.Flip(1, 0, c)),
	)
	if !style.hasCherry() {
		return stab
	}

	stab = geom.Join(stab, geom.CenteredRect(span, 4.6))
	if span < twoUnitSpan {
		stab = geom.Join(stab, geom.Move(-11.9, -5.97, geom.Rect(23.8, 10.7)))
	}
	return stab
}

// clip returns the cutout for one stabilizer housing, centered on the
// housing's axis.
func clip(style Style) geom.Shape {
	if !style.hasCherry() {
		return geom.Move(-1.6, -7.75, geom.Rect(3.3, 14))
	}

	// Bottom notch; the combined style widens it into a Costar slot.
	notch := geom.Move(-1.5, -1.2, geom.Rect(3.0, 2))
	if style == StyleBoth {
		notch = geom.Move(-1.65, -1.2, geom.Rect(3.3, 14))
	}

	return geom.Join(
		geom.Move(0, -6.77, geom.Join(
			geom.Move(-3.325, 0, geom.Rect(6.65, 12.3)),
			notch,
		)),
		geom.Move(0, -0.5, geom.Rect(4.2, 2.8)),
	)
}
