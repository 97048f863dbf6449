package sink

import (
	"encoding/json"

	"github.com/matzehuels/keyplate/pkg/errors"
	"github.com/matzehuels/keyplate/pkg/geom"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	name    string
	compact bool
}

// WithJSONName records the part name in the document.
func WithJSONName(name string) JSONOption { return func(r *jsonRenderer) { r.name = name } }

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// Units is the linear unit every coordinate is expressed in.
const Units = "mm"

type jsonOutput struct {
	Name  string   `json:"name,omitempty"`
	Units string   `json:"units"`
	Shape jsonNode `json:"shape"`
}

type jsonNode struct {
	Kind     geom.Kind    `json:"kind"`
	Size     *[2]float64  `json:"size,omitempty"`
	Center   bool         `json:"center,omitempty"`
	Radius   float64      `json:"radius,omitempty"`
	Segments int          `json:"segments,omitempty"`
	Points   [][2]float64 `json:"points,omitempty"`
	Vertices [][3]float64 `json:"vertices,omitempty"`
	Faces    [][]int      `json:"faces,omitempty"`
	Offset   *[2]float64  `json:"offset,omitempty"`
	Degrees  float64      `json:"degrees,omitempty"`
	Normal   *[2]float64  `json:"normal,omitempty"`
	Color    string       `json:"color,omitempty"`
	Children []jsonNode   `json:"children,omitempty"`
}

// RenderJSON encodes s as a JSON document. The encoding keeps every node
// and operand order, so [ParseJSON] returns an identical tree.
func RenderJSON(s geom.Shape, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	root, err := encodeNode(s)
	if err != nil {
		return nil, err
	}
	out := jsonOutput{Name: r.name, Units: Units, Shape: root}
	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}

// ParseJSON decodes a document written by [RenderJSON] and returns its
// name and tree.
func ParseJSON(data []byte) (string, geom.Shape, error) {
	var doc jsonOutput
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode shape document")
	}
	s, err := decodeNode(doc.Shape)
	if err != nil {
		return "", nil, err
	}
	return doc.Name, s, nil
}

func pair(v geom.Vec2) *[2]float64 { return &[2]float64{v.X, v.Y} }

func unpair(p *[2]float64) geom.Vec2 {
	if p == nil {
		return geom.Vec2{}
	}
	return geom.V(p[0], p[1])
}

func encodeNode(s geom.Shape) (jsonNode, error) {
	if s == nil {
		return jsonNode{}, errors.New(errors.ErrCodeInternal, "nil shape")
	}
	n := jsonNode{Kind: s.Kind()}

	switch v := s.(type) {
	case geom.Rectangle:
		n.Size, n.Center = pair(v.Size), v.Center
	case geom.Circle:
		n.Radius, n.Segments = v.Radius, v.Segments
	case geom.Polygon:
		for _, p := range v.Points {
			n.Points = append(n.Points, [2]float64{p.X, p.Y})
		}
	case geom.Polyhedron:
		for _, p := range v.Points {
			n.Vertices = append(n.Vertices, [3]float64{p.X, p.Y, p.Z})
		}
		n.Faces = v.Faces
	case geom.Translate:
		n.Offset = pair(v.Offset)
	case geom.Rotate:
		n.Degrees = v.Degrees
	case geom.Mirror:
		n.Normal = pair(v.Normal)
	case geom.Color:
		n.Color = v.Name
	}

	for _, c := range geom.Children(s) {
		child, err := encodeNode(c)
		if err != nil {
			return jsonNode{}, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

func decodeNode(n jsonNode) (geom.Shape, error) {
	var children []geom.Shape
	for _, c := range n.Children {
		s, err := decodeNode(c)
		if err != nil {
			return nil, err
		}
		children = append(children, s)
	}
	only := func() (geom.Shape, error) {
		if len(children) != 1 {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"%s node needs exactly one child, got %d", n.Kind, len(children))
		}
		return children[0], nil
	}

	switch n.Kind {
	case geom.KindRectangle:
		return geom.Rectangle{Size: unpair(n.Size), Center: n.Center}, nil
	case geom.KindCircle:
		return geom.Circle{Radius: n.Radius, Segments: n.Segments}, nil
	case geom.KindPolygon:
		var pts []geom.Vec2
		for _, p := range n.Points {
			pts = append(pts, geom.V(p[0], p[1]))
		}
		return geom.Polygon{Points: pts}, nil
	case geom.KindPolyhedron:
		var pts []geom.Vec3
		for _, p := range n.Vertices {
			pts = append(pts, geom.Vec3{X: p[0], Y: p[1], Z: p[2]})
		}
		return geom.Polyhedron{Points: pts, Faces: n.Faces}, nil
	case geom.KindUnion:
		return geom.Union{Children: children}, nil
	case geom.KindDifference:
		if len(children) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "difference node has no base")
		}
		return geom.Difference{Children: children}, nil
	case geom.KindIntersection:
		return geom.Intersection{Children: children}, nil
	case geom.KindTranslate:
		c, err := only()
		return geom.Translate{Offset: unpair(n.Offset), Child: c}, err
	case geom.KindRotate:
		c, err := only()
		return geom.Rotate{Degrees: n.Degrees, Child: c}, err
	case geom.KindMirror:
		c, err := only()
		return geom.Mirror{Normal: unpair(n.Normal), Child: c}, err
	case geom.KindColor:
		c, err := only()
		return geom.Color{Name: n.Color, Child: c}, err
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown shape kind %q", n.Kind)
	}
}
