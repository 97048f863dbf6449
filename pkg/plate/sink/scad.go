package sink

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/keyplate/pkg/errors"
	"github.com/matzehuels/keyplate/pkg/geom"
)

// SCADOption configures OpenSCAD rendering via [RenderSCAD].
type SCADOption func(*scadRenderer)

type scadRenderer struct {
	header string
	indent string
}

// WithSCADHeader writes text as a comment at the top of the file.
func WithSCADHeader(text string) SCADOption { return func(r *scadRenderer) { r.header = text } }

// WithSCADIndent sets the per-level indentation (default one tab).
func WithSCADIndent(indent string) SCADOption { return func(r *scadRenderer) { r.indent = indent } }

// RenderSCAD writes s as OpenSCAD source. Transforms carry a zero z
// component so the output also works inside 3D scenes.
func RenderSCAD(s geom.Shape, opts ...SCADOption) ([]byte, error) {
	r := scadRenderer{indent: "\t"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	if r.header != "" {
		for _, line := range strings.Split(r.header, "\n") {
			fmt.Fprintf(&buf, "// %s\n", line)
		}
		buf.WriteByte('\n')
	}
	if err := r.write(&buf, s, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *scadRenderer) write(buf *bytes.Buffer, s geom.Shape, depth int) error {
	pad := strings.Repeat(r.indent, depth)

	switch n := s.(type) {
	case geom.Rectangle:
		fmt.Fprintf(buf, "%ssquare(center = %t, size = %s);\n", pad, n.Center, vec(n.Size))
	case geom.Circle:
		fmt.Fprintf(buf, "%scircle($fn = %d, r = %s);\n", pad, n.Segments, num(n.Radius))
	case geom.Polygon:
		pts := make([]string, len(n.Points))
		for i, p := range n.Points {
			pts[i] = vec(p)
		}
		fmt.Fprintf(buf, "%spolygon(points = [%s]);\n", pad, strings.Join(pts, ", "))
	case geom.Polyhedron:
		pts := make([]string, len(n.Points))
		for i, p := range n.Points {
			pts[i] = "[" + num(p.X) + ", " + num(p.Y) + ", " + num(p.Z) + "]"
		}
		faces := make([]string, len(n.Faces))
		for i, f := range n.Faces {
			idx := make([]string, len(f))
			for j, v := range f {
				idx[j] = strconv.Itoa(v)
			}
			faces[i] = "[" + strings.Join(idx, ", ") + "]"
		}
		fmt.Fprintf(buf, "%spolyhedron(faces = [%s], points = [%s]);\n",
			pad, strings.Join(faces, ", "), strings.Join(pts, ", "))
	case geom.Union:
		return r.block(buf, pad+"union()", n.Children, depth)
	case geom.Difference:
		return r.block(buf, pad+"difference()", n.Children, depth)
	case geom.Intersection:
		return r.block(buf, pad+"intersection()", n.Children, depth)
	case geom.Translate:
		return r.block(buf, pad+"translate(v = "+vec3(n.Offset)+")", []geom.Shape{n.Child}, depth)
	case geom.Rotate:
		return r.block(buf, pad+"rotate(a = "+num(n.Degrees)+")", []geom.Shape{n.Child}, depth)
	case geom.Mirror:
		return r.block(buf, pad+"mirror(v = "+vec3(n.Normal)+")", []geom.Shape{n.Child}, depth)
	case geom.Color:
		return r.block(buf, pad+"color(c = "+strconv.Quote(n.Name)+")", []geom.Shape{n.Child}, depth)
	case nil:
		return errors.New(errors.ErrCodeInternal, "nil shape")
	default:
		return errors.New(errors.ErrCodeUnsupported, "scad: unknown shape %T", s)
	}
	return nil
}

func (r *scadRenderer) block(buf *bytes.Buffer, head string, children []geom.Shape, depth int) error {
	buf.WriteString(head)
	buf.WriteString(" {\n")
	for _, c := range children {
		if err := r.write(buf, c, depth+1); err != nil {
			return err
		}
	}
	buf.WriteString(strings.Repeat(r.indent, depth))
	buf.WriteString("}\n")
	return nil
}

func num(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func vec(v geom.Vec2) string { return "[" + num(v.X) + ", " + num(v.Y) + "]" }

func vec3(v geom.Vec2) string { return "[" + num(v.X) + ", " + num(v.Y) + ", 0]" }
