package geom

// Bounds is a running axis-aligned bounding box. The zero value is empty.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
	nonEmpty   bool
}

// Extend grows b to include every point in pts and returns the result.
func (b Bounds) Extend(pts ...Vec2) Bounds {
	for _, p := range pts {
		if !b.nonEmpty {
			b = Bounds{MinX: p.X, MaxX: p.X, MinY: p.Y, MaxY: p.Y, nonEmpty: true}
			continue
		}
		b.MinX = min(b.MinX, p.X)
		b.MaxX = max(b.MaxX, p.X)
		b.MinY = min(b.MinY, p.Y)
		b.MaxY = max(b.MaxY, p.Y)
	}
	return b
}

// Empty reports whether no point has been added.
func (b Bounds) Empty() bool { return !b.nonEmpty }

// Width returns the horizontal span, or 0 when empty.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical span, or 0 when empty.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Min returns the minimum corner.
func (b Bounds) Min() Vec2 { return Vec2{X: b.MinX, Y: b.MinY} }

// Max returns the maximum corner.
func (b Bounds) Max() Vec2 { return Vec2{X: b.MaxX, Y: b.MaxY} }
