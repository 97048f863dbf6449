package geom

import "math"

// Vec2 is a point or offset in the plate plane.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a point in space. Only [Polyhedron] uses it.
type Vec3 struct {
	X, Y, Z float64
}

// V returns the vector (x, y).
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Neg returns -v.
func (v Vec2) Neg() Vec2 { return Vec2{X: -v.X, Y: -v.Y} }

// Rotate returns v rotated counter-clockwise about the origin.
func (v Vec2) Rotate(degrees float64) Vec2 {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// RotateAbout returns v rotated counter-clockwise about pivot.
func (v Vec2) RotateAbout(pivot Vec2, degrees float64) Vec2 {
	return v.Sub(pivot).Rotate(degrees).Add(pivot)
}

// Reflect mirrors v across the line through the origin perpendicular to
// normal. A zero normal leaves v unchanged.
func (v Vec2) Reflect(normal Vec2) Vec2 {
	n2 := normal.X*normal.X + normal.Y*normal.Y
	if n2 == 0 {
		return v
	}
	k := 2 * (v.X*normal.X + v.Y*normal.Y) / n2
	return Vec2{X: v.X - k*normal.X, Y: v.Y - k*normal.Y}
}
