package sink

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/matzehuels/keyplate/pkg/errors"
	"github.com/matzehuels/keyplate/pkg/geom"
)

// plateWithHole is a 20×20 plate with a 10×10 hole in the middle and a
// rounded-off corner marker.
func plateWithHole() geom.Shape {
	return geom.Diff(
		geom.Rect(20, 20),
		geom.Move(10, 10, geom.CenteredSquare(10)),
		geom.Move(20, 0, geom.Flip(1, 0, geom.Circ(2, 12))),
	)
}

func TestRenderSCAD(t *testing.T) {
	tree := geom.Join(
		geom.Move(1.5, 2, geom.Turn(90, geom.CenteredRect(14, 14))),
		geom.Paint("red", geom.Circ(1, 20)),
	)
	got, err := RenderSCAD(tree, WithSCADHeader("top"), WithSCADIndent("  "))
	if err != nil {
		t.Fatalf("RenderSCAD: %v", err)
	}

	want := `// top

union() {
  translate(v = [1.5, 2, 0]) {
    rotate(a = 90) {
      square(center = true, size = [14, 14]);
    }
  }
  color(c = "red") {
    circle($fn = 20, r = 1);
  }
}
`
	if string(got) != want {
		t.Errorf("RenderSCAD =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderSCADPrimitives(t *testing.T) {
	tests := []struct {
		name  string
		shape geom.Shape
		want  string
	}{
		{"rectangle", geom.Rect(3, 4), "square(center = false, size = [3, 4]);"},
		{"polygon", geom.Poly(geom.V(0, 0), geom.V(1, 0), geom.V(0, 1)), "polygon(points = [[0, 0], [1, 0], [0, 1]]);"},
		{"mirror", geom.Flip(0, 1, geom.Square(1)), "mirror(v = [0, 1, 0]) {"},
		{"difference", geom.Diff(geom.Square(2), geom.Square(1)), "difference() {"},
		{"intersection", geom.Intersect(geom.Square(2), geom.Square(1)), "intersection() {"},
		{
			"polyhedron",
			geom.Polyhedron{Points: []geom.Vec3{{}, {X: 1}, {Y: 1}, {Z: 1}}, Faces: [][]int{{0, 1, 2}}},
			"polyhedron(faces = [[0, 1, 2]], points = [[0, 0, 0], [1, 0, 0], [0, 1, 0], [0, 0, 1]]);",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderSCAD(tt.shape)
			if err != nil {
				t.Fatalf("RenderSCAD: %v", err)
			}
			if !strings.Contains(string(got), tt.want) {
				t.Errorf("output %q missing %q", got, tt.want)
			}
		})
	}
}

func TestRenderJSONRoundTrip(t *testing.T) {
	tree := geom.Join(
		plateWithHole(),
		geom.Paint("red", geom.Move(1, 1, geom.Circ(1, 20))),
		geom.Intersect(geom.Square(4), geom.Turn(45, geom.Square(4))),
		geom.Poly(geom.V(0, 0), geom.V(3, 0), geom.V(0, 3)),
		geom.Move(0, 0, geom.Square(1)),
	)

	data, err := RenderJSON(tree, WithJSONName("top"))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	name, got, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if name != "top" {
		t.Errorf("name = %q, want top", name)
	}
	if !reflect.DeepEqual(got, tree) {
		t.Errorf("round trip changed the tree:\n got %#v\nwant %#v", got, tree)
	}
}

func TestRenderJSONCompact(t *testing.T) {
	data, err := RenderJSON(geom.Square(1), WithJSONCompact())
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	if bytes.Contains(data, []byte("\n")) {
		t.Errorf("compact output has newlines: %s", data)
	}
	if !bytes.Contains(data, []byte(`"units":"mm"`)) {
		t.Errorf("output missing units: %s", data)
	}
}

func TestParseJSONInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{"},
		{"unknown kind", `{"units":"mm","shape":{"kind":"torus"}}`},
		{"translate without child", `{"units":"mm","shape":{"kind":"translate","offset":[1,2]}}`},
		{"empty difference", `{"units":"mm","shape":{"kind":"difference"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseJSON([]byte(tt.data))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidInput)
			}
		})
	}
}

func inside(f sdf.SDF2, x, y float64) bool { return f.Evaluate(v2.Vec{X: x, Y: y}) < 0 }

func TestToSDF(t *testing.T) {
	f, err := ToSDF(plateWithHole())
	if err != nil {
		t.Fatalf("ToSDF: %v", err)
	}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"plate material", 2, 18, true},
		{"hole", 10, 10, false},
		{"outside", 25, 10, false},
		{"mirrored corner cut", 19.5, 0.5, false},
		{"near corner", 1, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inside(f, tt.x, tt.y); got != tt.want {
				t.Errorf("inside(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestToSDFMirrorDiagonal(t *testing.T) {
	// (1,1) maps (x, y) to (-y, -x).
	f, err := ToSDF(geom.Flip(1, 1, geom.Move(5, 1, geom.CenteredSquare(1))))
	if err != nil {
		t.Fatalf("ToSDF: %v", err)
	}
	if !inside(f, -1, -5) {
		t.Error("mirrored square should cover (-1,-5)")
	}
	if inside(f, 5, 1) {
		t.Error("original position should be empty")
	}
}

func TestToSDFEmpty(t *testing.T) {
	for name, s := range map[string]geom.Shape{
		"empty union":         geom.Join(),
		"zero rectangle":      geom.Rect(0, 5),
		"difference of empty": geom.Diff(geom.Join(), geom.Square(1)),
	} {
		f, err := ToSDF(s)
		if err != nil || f != nil {
			t.Errorf("%s: ToSDF = %v, %v; want nil, nil", name, f, err)
		}
	}
}

func TestToSDFPolyhedron(t *testing.T) {
	_, err := ToSDF(geom.Join(geom.Square(1), geom.Polyhedron{}))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeUnsupported)
	}
}

func TestRenderDXF(t *testing.T) {
	data, err := RenderDXF(plateWithHole(), WithCells(40))
	if err != nil {
		t.Fatalf("RenderDXF: %v", err)
	}
	if !bytes.Contains(data, []byte("EOF")) {
		t.Errorf("output is not a DXF document: %.80q", data)
	}
}

func TestRenderDXFEmpty(t *testing.T) {
	if _, err := RenderDXF(geom.Join()); err != ErrEmpty {
		t.Errorf("error = %v, want ErrEmpty", err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in      string
		want    []Format
		wantErr bool
	}{
		{"", []Format{FormatSCAD}, false},
		{"dxf", []Format{FormatDXF}, false},
		{"scad, JSON,scad", []Format{FormatSCAD, FormatJSON}, false},
		{"svg", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormats(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidFormat) {
					t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidFormat)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormats: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFormats = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	data, err := Render(FormatSCAD, "bottom", geom.Square(1))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(string(data), "// bottom\n") {
		t.Errorf("missing header: %q", data)
	}
	if _, err := Render("svg", "x", geom.Square(1)); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestToDOT(t *testing.T) {
	tree := geom.Diff(geom.Rect(20, 10), geom.Move(5, 5, geom.CenteredSquare(2)))
	dot := ToDOT(tree, TreeOptions{Detailed: true})

	for _, want := range []string{
		"digraph G {",
		`n0 [label="difference", shape=ellipse];`,
		`n1 [label="rectangle\nsize [20, 10]", fillcolor=lightgrey];`,
		"n0 -> n1;",
		"n0 -> n2 [style=dashed];",
		`n2 [label="translate\n[5, 5]"];`,
		"n2 -> n3;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	plain := ToDOT(tree, TreeOptions{})
	if strings.Contains(plain, "size [20, 10]") {
		t.Error("plain labels should omit parameters")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	if !strings.HasPrefix(got, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`) {
		t.Errorf("normalizeViewBox = %s", got)
	}
	if string(normalizeViewBox([]byte("<svg>"))) != "<svg>" {
		t.Error("input without viewBox should be unchanged")
	}
}

func TestFormatExt(t *testing.T) {
	if FormatTree.Ext() != "tree.svg" || FormatDXF.Ext() != "dxf" {
		t.Errorf("Ext: tree=%s dxf=%s", FormatTree.Ext(), FormatDXF.Ext())
	}
}
