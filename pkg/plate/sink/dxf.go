package sink

import (
	"math"
	"os"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/matzehuels/keyplate/pkg/errors"
	"github.com/matzehuels/keyplate/pkg/geom"
)

// DefaultCells is the number of marching squares cells along the longest
// side of the traced area.
const DefaultCells = 600

// ErrEmpty is returned by [RenderDXF] for trees that enclose no area.
var ErrEmpty = errors.New(errors.ErrCodeUnsupported, "shape encloses no area")

// DXFOption configures DXF rendering via [RenderDXF].
type DXFOption func(*dxfRenderer)

type dxfRenderer struct {
	cells int
}

// WithCells sets the trace resolution.
func WithCells(n int) DXFOption { return func(r *dxfRenderer) { r.cells = n } }

// RenderDXF traces the outline of s and returns it as a DXF document.
func RenderDXF(s geom.Shape, opts ...DXFOption) ([]byte, error) {
	r := dxfRenderer{cells: DefaultCells}
	for _, opt := range opts {
		opt(&r)
	}
	if r.cells <= 0 {
		r.cells = DefaultCells
	}

	field, err := ToSDF(s)
	if err != nil {
		return nil, err
	}
	if field == nil {
		return nil, ErrEmpty
	}

	// sdfx only writes DXF to a named file.
	f, err := os.CreateTemp("", "keyplate-*.dxf")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create dxf temp file")
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	render.ToDXF(field, path, render.NewMarchingSquaresQuadtree(r.cells))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read traced dxf")
	}
	return data, nil
}

// ToSDF converts s into a signed distance field. A nil field with a nil
// error means s encloses no area. Color nodes are ignored and circles
// become regular polygons with their segment count, matching how they
// render in OpenSCAD.
func ToSDF(s geom.Shape) (sdf.SDF2, error) {
	switch n := s.(type) {
	case geom.Rectangle:
		if n.Size.X <= 0 || n.Size.Y <= 0 {
			return nil, nil
		}
		box := sdf.Box2D(v2.Vec{X: n.Size.X, Y: n.Size.Y}, 0)
		if n.Center {
			return box, nil
		}
		return sdf.Transform2D(box, sdf.Translate2d(v2.Vec{X: n.Size.X / 2, Y: n.Size.Y / 2})), nil

	case geom.Circle:
		if n.Radius <= 0 {
			return nil, nil
		}
		if n.Segments < 3 {
			return sdf.Circle2D(n.Radius)
		}
		return sdf.Polygon2D(ngon(n.Segments, n.Radius))

	case geom.Polygon:
		if len(n.Points) < 3 {
			return nil, nil
		}
		pts := make([]v2.Vec, len(n.Points))
		for i, p := range n.Points {
			pts[i] = v2.Vec{X: p.X, Y: p.Y}
		}
		return sdf.Polygon2D(pts)

	case geom.Polyhedron:
		return nil, errors.New(errors.ErrCodeUnsupported, "dxf: polyhedron has no 2D outline")

	case geom.Union:
		parts, err := fields(n.Children)
		if err != nil || len(parts) == 0 {
			return nil, err
		}
		if len(parts) == 1 {
			return parts[0], nil
		}
		return sdf.Union2D(parts...), nil

	case geom.Difference:
		if len(n.Children) == 0 {
			return nil, nil
		}
		base, err := ToSDF(n.Children[0])
		if err != nil || base == nil {
			return nil, err
		}
		cuts, err := fields(n.Children[1:])
		if err != nil {
			return nil, err
		}
		for _, c := range cuts {
			base = sdf.Difference2D(base, c)
		}
		return base, nil

	case geom.Intersection:
		var acc sdf.SDF2
		for i, c := range n.Children {
			f, err := ToSDF(c)
			if err != nil || f == nil {
				return nil, err
			}
			if i == 0 {
				acc = f
				continue
			}
			acc = sdf.Intersect2D(acc, f)
		}
		return acc, nil

	case geom.Translate:
		return transformed(n.Child, sdf.Translate2d(v2.Vec{X: n.Offset.X, Y: n.Offset.Y}))
	case geom.Rotate:
		return transformed(n.Child, sdf.Rotate2d(sdf.DtoR(n.Degrees)))
	case geom.Mirror:
		return transformed(n.Child, mirror(n.Normal))
	case geom.Color:
		return ToSDF(n.Child)

	case nil:
		return nil, errors.New(errors.ErrCodeInternal, "nil shape")
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "dxf: unknown shape %T", s)
	}
}

// fields converts shapes and drops the empty ones.
func fields(shapes []geom.Shape) ([]sdf.SDF2, error) {
	var out []sdf.SDF2
	for _, s := range shapes {
		f, err := ToSDF(s)
		if err != nil {
			return nil, err
		}
		if f != nil {
			out = append(out, f)
		}
	}
	return out, nil
}

func transformed(child geom.Shape, m sdf.M33) (sdf.SDF2, error) {
	f, err := ToSDF(child)
	if err != nil || f == nil {
		return nil, err
	}
	return sdf.Transform2D(f, m), nil
}

// mirror reflects across the line perpendicular to normal: rotate the
// normal onto x, negate x, rotate back.
func mirror(normal geom.Vec2) sdf.M33 {
	if normal.X == 0 && normal.Y == 0 {
		return sdf.Identity2d()
	}
	theta := math.Atan2(normal.Y, normal.X)
	return sdf.Rotate2d(theta).
		Mul(sdf.Scale2d(v2.Vec{X: -1, Y: 1})).
		Mul(sdf.Rotate2d(-theta))
}

// ngon returns the vertices of a regular polygon with the first vertex on
// the positive x axis.
func ngon(n int, r float64) []v2.Vec {
	pts := make([]v2.Vec, n)
	for i := range pts {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		pts[i] = v2.Vec{X: r * cos, Y: r * sin}
	}
	return pts
}
