package plate

import (
	"github.com/matzehuels/keyplate/pkg/geom"
	"github.com/matzehuels/keyplate/pkg/layout"
	"github.com/matzehuels/keyplate/pkg/plate/switchhole"
)

// Part names, in output order.
const (
	PartTop          = "top"
	PartBottom       = "bottom"
	PartHoles        = "holes"
	PartMid          = "mid_closed"
	PartMidSectioned = "mid_sectioned"
)

// Part is a named construction tree ready for a sink.
type Part struct {
	Name  string
	Shape geom.Shape
}

// Plates is the result of [Compose].
type Plates struct {
	Top          geom.Shape
	Bottom       geom.Shape
	Holes        geom.Shape
	Mid          geom.Shape
	MidSectioned geom.Shape // nil unless Options.Sectioned

	Dimensions Dimensions
	Walls      Walls
	Padding    Padding

	// HoleCenters holds every switch center in plate coordinates, in
	// placement order.
	HoleCenters []geom.Vec2

	// ScrewCenters holds screw hole centers, bottom row then top row.
	ScrewCenters []geom.Vec2
}

// Parts returns the non-nil trees in output order.
func (p *Plates) Parts() []Part {
	parts := []Part{
		{PartTop, p.Top},
		{PartBottom, p.Bottom},
		{PartHoles, p.Holes},
		{PartMid, p.Mid},
	}
	if p.MidSectioned != nil {
		parts = append(parts, Part{PartMidSectioned, p.MidSectioned})
	}
	return parts
}

// Compose builds every plate for res. The only error is an invalid
// option; geometric degeneracy is passed through.
func Compose(res layout.Result, opts Options) (*Plates, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	style, _ := switchhole.ParseStyle(string(opts.Style))

	dims := NewDimensions(res.Bounds, opts.Padding)
	walls := NewWalls(opts.Padding, opts.MaxWall)
	fr := frame{bounds: res.Bounds, pad: opts.Padding, height: dims.ExteriorHeight}

	holes := make([]geom.Shape, len(res.Placements))
	centers := make([]geom.Vec2, len(res.Placements))
	for i, p := range res.Placements {
		holes[i] = p.Apply(switchhole.New(p.WidthFactor, p.HeightFactor, style))
		centers[i] = fr.point(p.Position())
	}
	keyHoles := fr.normalize(geom.Join(holes...))

	exterior := geom.Rect(dims.ExteriorWidth, dims.ExteriorHeight)
	top := geom.Diff(exterior, keyHoles)
	if opts.ShowPoints {
		top = geom.Join(top, geom.Paint("red", fr.normalize(markers(res.Points))))
	}

	plates := &Plates{
		Top:         fr.flip(top),
		Bottom:      exterior,
		Holes:       fr.flip(keyHoles),
		Dimensions:  dims,
		Walls:       walls,
		Padding:     opts.Padding,
		HoleCenters: centers,
	}

	plates.Mid = BuildMid(plates.Bottom, dims, walls, opts.Padding)
	if opts.Sectioned {
		plates.MidSectioned = Section(plates.Mid, dims, walls)
	}

	if opts.CornerRadius > 0 {
		notches := Corners(dims, opts.CornerRadius)
		plates.Top = geom.Diff(plates.Top, notches)
		plates.Bottom = geom.Diff(plates.Bottom, notches)
	}
	if opts.screwsEnabled() {
		plates.ScrewCenters = ScrewHoles(dims, walls, opts.ScrewHoles)
		cuts := screwCuts(plates.ScrewCenters, opts.ScrewDiameter, opts.screwSegments())
		plates.Top = geom.Diff(plates.Top, cuts)
		plates.Bottom = geom.Diff(plates.Bottom, cuts)
	}
	return plates, nil
}

// frame maps layout coordinates (origin top left, y down) to plate
// coordinates (origin bottom left, y up).
type frame struct {
	bounds geom.Bounds
	pad    Padding
	height float64
}

func (f frame) normalize(s geom.Shape) geom.Shape {
	return geom.Move(f.pad.Left, f.pad.Top,
		geom.Move(-f.bounds.MinX, -f.bounds.MinY, s))
}

func (f frame) flip(s geom.Shape) geom.Shape {
	return geom.Move(0, f.height, geom.Flip(0, 1, s))
}

// point applies normalize then flip to a single point.
func (f frame) point(p geom.Vec2) geom.Vec2 {
	x := p.X - f.bounds.MinX + f.pad.Left
	y := p.Y - f.bounds.MinY + f.pad.Top
	return geom.V(x, f.height-y)
}

func markers(points []geom.Vec2) geom.Shape {
	dots := make([]geom.Shape, len(points))
	for i, p := range points {
		dots[i] = geom.MoveBy(p, geom.Circ(markerRadius, DefaultScrewSegments))
	}
	return geom.Join(dots...)
}
