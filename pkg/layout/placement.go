package layout

import "github.com/matzehuels/keyplate/pkg/geom"

// Placement is the position of one physical key.
type Placement struct {
	// Index is the key's position among all placed keys, in scan order.
	Index int
	Label string

	// WidthFactor and HeightFactor are the key size in units.
	WidthFactor  float64
	HeightFactor float64

	// Center is the key center before rotation.
	Center geom.Vec2

	// Anchor and Rotation describe the rotation applied about Anchor.
	Anchor   geom.Vec2
	Rotation float64

	// Corners is the key footprint after rotation, counter-clockwise from
	// the corner nearest the origin.
	Corners [4]geom.Vec2
}

func newPlacement(index int, label string, c CursorState, w, h float64) Placement {
	p := Placement{
		Index:        index,
		Label:        label,
		WidthFactor:  c.PendingWidth,
		HeightFactor: c.PendingHeight,
		Center:       geom.V(c.X+w/2, c.Y+h/2),
		Anchor:       geom.V(c.AnchorX, c.AnchorY),
		Rotation:     c.Rotation,
	}
	half := geom.V(w/2, h/2)
	local := [4]geom.Vec2{
		{X: -half.X, Y: -half.Y},
		{X: half.X, Y: -half.Y},
		{X: half.X, Y: half.Y},
		{X: -half.X, Y: half.Y},
	}
	for i, pt := range local {
		p.Corners[i] = p.Transform().Apply(pt)
	}
	return p
}

// Rotated reports whether the key is rotated.
func (p Placement) Rotated() bool { return p.Rotation != 0 }

// Transform maps key-local coordinates (origin at the key center) to
// layout coordinates.
func (p Placement) Transform() geom.Affine {
	m := geom.TranslateBy(p.Center)
	if !p.Rotated() {
		return m
	}
	return m.
		Then(geom.TranslateBy(p.Anchor.Neg())).
		Then(geom.RotateBy(p.Rotation)).
		Then(geom.TranslateBy(p.Anchor))
}

// Position returns the key center after rotation.
func (p Placement) Position() geom.Vec2 {
	return p.Transform().Apply(geom.Vec2{})
}

// Apply wraps s, drawn around the origin, in the key's transform.
// Unrotated keys get a single translation.
func (p Placement) Apply(s geom.Shape) geom.Shape {
	moved := geom.MoveBy(p.Center, s)
	if !p.Rotated() {
		return moved
	}
	return geom.MoveBy(p.Anchor,
		geom.Turn(p.Rotation,
			geom.MoveBy(p.Anchor.Neg(), moved)))
}
