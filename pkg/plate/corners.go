package plate

import "github.com/matzehuels/keyplate/pkg/geom"

// cornerNotch is the material removed to round the corner at the origin:
// a 2r square centered there minus the circle tangent to its inner edges.
func cornerNotch(r float64) geom.Shape {
	return geom.Diff(
		geom.CenteredSquare(2*r),
		geom.Move(r, r, geom.Circ(r, cornerSegments)),
	)
}

// Corners returns the notches for all four exterior corners, in the order
// bottom-left, bottom-right, top-right, top-left.
func Corners(d Dimensions, r float64) geom.Shape {
	notch := cornerNotch(r)
	w, h := d.ExteriorWidth, d.ExteriorHeight
	return geom.Join(
		notch,
		geom.Move(w, 0, geom.Flip(1, 0, notch)),
		geom.Move(w, h, geom.Flip(1, 1, notch)),
		geom.Move(0, h, geom.Flip(0, 1, notch)),
	)
}
