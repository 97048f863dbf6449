package plate

import "github.com/matzehuels/keyplate/pkg/geom"

// Dimensions holds the interior (key area) and exterior (plate) sizes.
type Dimensions struct {
	InteriorWidth, InteriorHeight float64
	ExteriorWidth, ExteriorHeight float64
}

// NewDimensions sizes a plate around bounds with padding p.
func NewDimensions(b geom.Bounds, p Padding) Dimensions {
	d := Dimensions{
		InteriorWidth:  b.Width(),
		InteriorHeight: b.Height(),
	}
	d.ExteriorWidth = d.InteriorWidth + p.Left + p.Right
	d.ExteriorHeight = d.InteriorHeight + p.Top + p.Bottom
	return d
}

// Center returns the center of the exterior rectangle.
func (d Dimensions) Center() geom.Vec2 {
	return geom.V(d.ExteriorWidth/2, d.ExteriorHeight/2)
}

// Walls is the mid-layer wall thickness on each side.
type Walls struct {
	Left, Right float64
	Top, Bottom float64
}

// NewWalls caps each side's padding at the resolved maximum wall.
func NewWalls(p Padding, m MaxWall) Walls {
	limit := m.Resolve(p)
	return Walls{
		Left:   min(limit, p.Left),
		Right:  min(limit, p.Right),
		Top:    min(limit, p.Top),
		Bottom: min(limit, p.Bottom),
	}
}
