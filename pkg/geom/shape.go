package geom

// Kind identifies the concrete type of a [Shape].
type Kind string

// Shape kinds. The string values are stable and appear in JSON output.
const (
	KindRectangle    Kind = "rectangle"
	KindCircle       Kind = "circle"
	KindPolygon      Kind = "polygon"
	KindPolyhedron   Kind = "polyhedron"
	KindUnion        Kind = "union"
	KindDifference   Kind = "difference"
	KindIntersection Kind = "intersection"
	KindTranslate    Kind = "translate"
	KindRotate       Kind = "rotate"
	KindMirror       Kind = "mirror"
	KindColor        Kind = "color"
)

// Shape is a node in a construction tree.
type Shape interface {
	Kind() Kind
}

// Rectangle is an axis-aligned rectangle. Unless Center is set its
// lower-left corner sits at the origin.
type Rectangle struct {
	Size   Vec2
	Center bool
}

// Circle is a circle centered at the origin, approximated by Segments
// straight edges when a sink needs a polygon.
type Circle struct {
	Radius   float64
	Segments int
}

// Polygon is a closed simple polygon.
type Polygon struct {
	Points []Vec2
}

// Polyhedron is a closed 3D mesh. 2D sinks reject it.
type Polyhedron struct {
	Points []Vec3
	Faces  [][]int
}

// Union is the union of its children.
type Union struct {
	Children []Shape
}

// Difference is the first child minus every following child.
type Difference struct {
	Children []Shape
}

// Intersection is the region shared by all children.
type Intersection struct {
	Children []Shape
}

// Translate moves Child by Offset.
type Translate struct {
	Offset Vec2
	Child  Shape
}

// Rotate turns Child counter-clockwise about the origin.
type Rotate struct {
	Degrees float64
	Child   Shape
}

// Mirror reflects Child across the line through the origin perpendicular
// to Normal. Normal (1,1) swaps and negates both axes.
type Mirror struct {
	Normal Vec2
	Child  Shape
}

// Color tags Child with a display color. It has no geometric effect.
type Color struct {
	Name  string
	Child Shape
}

func (Rectangle) Kind() Kind    { return KindRectangle }
func (Circle) Kind() Kind       { return KindCircle }
func (Polygon) Kind() Kind      { return KindPolygon }
func (Polyhedron) Kind() Kind   { return KindPolyhedron }
func (Union) Kind() Kind        { return KindUnion }
func (Difference) Kind() Kind   { return KindDifference }
func (Intersection) Kind() Kind { return KindIntersection }
func (Translate) Kind() Kind    { return KindTranslate }
func (Rotate) Kind() Kind       { return KindRotate }
func (Mirror) Kind() Kind       { return KindMirror }
func (Color) Kind() Kind        { return KindColor }

// Children returns the direct children of s in operand order.
func Children(s Shape) []Shape {
	switch n := s.(type) {
	case Union:
		return n.Children
	case Difference:
		return n.Children
	case Intersection:
		return n.Children
	case Translate:
		return []Shape{n.Child}
	case Rotate:
		return []Shape{n.Child}
	case Mirror:
		return []Shape{n.Child}
	case Color:
		return []Shape{n.Child}
	default:
		return nil
	}
}
