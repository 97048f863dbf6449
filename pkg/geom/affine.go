package geom

// Affine is a 2D affine transform [A B C; D E F] mapping (x, y) to
// (A·x + B·y + C, D·x + E·y + F).
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// Identity is the transform that leaves points unchanged.
var Identity = Affine{A: 1, E: 1}

// TranslateBy returns the transform that moves points by v.
func TranslateBy(v Vec2) Affine { return Affine{A: 1, C: v.X, E: 1, F: v.Y} }

// RotateBy returns the counter-clockwise rotation about the origin.
func RotateBy(degrees float64) Affine {
	x := V(1, 0).Rotate(degrees)
	return Affine{A: x.X, B: -x.Y, D: x.Y, E: x.X}
}

// MirrorBy returns the reflection across the line perpendicular to normal.
func MirrorBy(normal Vec2) Affine {
	x := V(1, 0).Reflect(normal)
	y := V(0, 1).Reflect(normal)
	return Affine{A: x.X, B: y.X, D: x.Y, E: y.Y}
}

// Then returns the transform that applies m first and n second.
func (m Affine) Then(n Affine) Affine {
	return Affine{
		A: n.A*m.A + n.B*m.D,
		B: n.A*m.B + n.B*m.E,
		C: n.A*m.C + n.B*m.F + n.C,
		D: n.D*m.A + n.E*m.D,
		E: n.D*m.B + n.E*m.E,
		F: n.D*m.C + n.E*m.F + n.F,
	}
}

// Apply maps p through m.
func (m Affine) Apply(p Vec2) Vec2 {
	return Vec2{X: m.A*p.X + m.B*p.Y + m.C, Y: m.D*p.X + m.E*p.Y + m.F}
}

// Local returns the transform a node applies to its children, or Identity
// for nodes that do not transform.
func Local(s Shape) Affine {
	switch n := s.(type) {
	case Translate:
		return TranslateBy(n.Offset)
	case Rotate:
		return RotateBy(n.Degrees)
	case Mirror:
		return MirrorBy(n.Normal)
	default:
		return Identity
	}
}

// Walk visits s and its descendants depth-first in operand order. fn
// receives each node with the transform mapping its local coordinates to
// the coordinates of the root. Returning false skips the node's children.
func Walk(s Shape, fn func(s Shape, world Affine) bool) {
	walk(s, Identity, fn)
}

func walk(s Shape, world Affine, fn func(Shape, Affine) bool) {
	if s == nil || !fn(s, world) {
		return
	}
	inner := Local(s).Then(world)
	for _, c := range Children(s) {
		walk(c, inner, fn)
	}
}
