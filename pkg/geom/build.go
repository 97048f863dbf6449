package geom

// Rect returns a w×h rectangle with its lower-left corner at the origin.
func Rect(w, h float64) Shape { return Rectangle{Size: V(w, h)} }

// CenteredRect returns a w×h rectangle centered on the origin.
func CenteredRect(w, h float64) Shape { return Rectangle{Size: V(w, h), Center: true} }

// Square returns an s×s square with its lower-left corner at the origin.
func Square(s float64) Shape { return Rect(s, s) }

// CenteredSquare returns an s×s square centered on the origin.
func CenteredSquare(s float64) Shape { return CenteredRect(s, s) }

// Circ returns a circle of radius r drawn with the given segment count.
func Circ(r float64, segments int) Shape { return Circle{Radius: r, Segments: segments} }

// Poly returns a polygon through pts. The slice is copied.
func Poly(pts ...Vec2) Shape { return Polygon{Points: append([]Vec2(nil), pts...)} }

// Join returns the union of shapes.
func Join(shapes ...Shape) Shape { return Union{Children: shapes} }

// Diff returns base minus every cut.
func Diff(base Shape, cuts ...Shape) Shape {
	return Difference{Children: append([]Shape{base}, cuts...)}
}

// Intersect returns the intersection of shapes.
func Intersect(shapes ...Shape) Shape { return Intersection{Children: shapes} }

// Move translates s by (x, y).
func Move(x, y float64, s Shape) Shape { return Translate{Offset: V(x, y), Child: s} }

// MoveBy translates s by v.
func MoveBy(v Vec2, s Shape) Shape { return Translate{Offset: v, Child: s} }

// Turn rotates s counter-clockwise by degrees about the origin.
func Turn(degrees float64, s Shape) Shape { return Rotate{Degrees: degrees, Child: s} }

// Flip mirrors s across the line perpendicular to (nx, ny).
func Flip(nx, ny float64, s Shape) Shape { return Mirror{Normal: V(nx, ny), Child: s} }

// Paint tags s with a display color.
func Paint(name string, s Shape) Shape { return Color{Name: name, Child: s} }
