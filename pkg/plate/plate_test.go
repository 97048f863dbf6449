package plate

import (
	"math"
	"reflect"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/matzehuels/keyplate/pkg/errors"
	"github.com/matzehuels/keyplate/pkg/geom"
	"github.com/matzehuels/keyplate/pkg/kle"
	"github.com/matzehuels/keyplate/pkg/layout"
	"github.com/matzehuels/keyplate/pkg/plate/sink"
	"github.com/matzehuels/keyplate/pkg/plate/switchhole"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func nearVec(a, b geom.Vec2) bool { return near(a.X, b.X) && near(a.Y, b.Y) }

func place(rows ...kle.Row) layout.Result {
	return layout.Place(kle.Layout{Rows: rows})
}

func key() kle.KeyPlaceholder { return kle.KeyPlaceholder{} }

// switchCenters returns the world position of every 14×14 switch square.
func switchCenters(s geom.Shape) []geom.Vec2 {
	var out []geom.Vec2
	geom.Walk(s, func(n geom.Shape, world geom.Affine) bool {
		if r, ok := n.(geom.Rectangle); ok && r.Center && r.Size == geom.V(switchhole.SwitchSize, switchhole.SwitchSize) {
			out = append(out, world.Apply(geom.Vec2{}))
		}
		return true
	})
	return out
}

func compose(t *testing.T, res layout.Result, opts Options) *Plates {
	t.Helper()
	p, err := Compose(res, opts)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	return p
}

func TestComposeSingleKey(t *testing.T) {
	p := compose(t, place(kle.Row{key()}), DefaultOptions())

	if !near(p.Dimensions.ExteriorWidth, layout.Pitch) || !near(p.Dimensions.ExteriorHeight, layout.Pitch) {
		t.Errorf("exterior = %vx%v, want %vx%v", p.Dimensions.ExteriorWidth, p.Dimensions.ExteriorHeight, layout.Pitch, layout.Pitch)
	}
	centers := switchCenters(p.Holes)
	if len(centers) != 1 {
		t.Fatalf("holes = %d, want 1", len(centers))
	}
	if !nearVec(centers[0], geom.V(9.525, 9.525)) {
		t.Errorf("hole center = %v, want (9.525, 9.525)", centers[0])
	}
	if got := switchCenters(p.Top); len(got) != 1 || !nearVec(got[0], centers[0]) {
		t.Errorf("top plate holes = %v, want %v", got, centers)
	}
	if got := switchCenters(p.Bottom); len(got) != 0 {
		t.Errorf("bottom plate has %d switch holes, want 0", len(got))
	}
	if p.MidSectioned != nil {
		t.Error("sectioned mid-layer should be absent by default")
	}
	if len(p.Parts()) != 4 {
		t.Errorf("parts = %d, want 4", len(p.Parts()))
	}
}

func TestComposeExteriorIncludesPadding(t *testing.T) {
	res := place(
		kle.Row{key(), kle.WidthFactor(2), key()},
		kle.Row{kle.Rotation(15), key()},
	)
	opts := DefaultOptions()
	opts.Padding = Padding{Left: 3, Right: 5, Top: 7, Bottom: 11}
	p := compose(t, res, opts)

	d := p.Dimensions
	if !near(d.ExteriorWidth, d.InteriorWidth+3+5) {
		t.Errorf("exterior width = %v, want %v", d.ExteriorWidth, d.InteriorWidth+8)
	}
	if !near(d.ExteriorHeight, d.InteriorHeight+7+11) {
		t.Errorf("exterior height = %v, want %v", d.ExteriorHeight, d.InteriorHeight+18)
	}
	if !near(d.InteriorWidth, res.Bounds.Width()) || !near(d.InteriorHeight, res.Bounds.Height()) {
		t.Errorf("interior = %vx%v, want bounds %vx%v", d.InteriorWidth, d.InteriorHeight, res.Bounds.Width(), res.Bounds.Height())
	}
}

func TestComposeHoleCentersMatchTree(t *testing.T) {
	res := place(
		kle.Row{key(), key()},
		kle.Row{kle.CursorDX(0.5), key()},
	)
	opts := DefaultOptions()
	opts.Padding = Padding{Left: 2, Right: 2, Top: 4, Bottom: 4}
	p := compose(t, res, opts)

	got := switchCenters(p.Holes)
	if len(got) != len(p.HoleCenters) {
		t.Fatalf("tree holes = %d, recorded = %d", len(got), len(p.HoleCenters))
	}
	for i := range got {
		if !nearVec(got[i], p.HoleCenters[i]) {
			t.Errorf("hole %d = %v, recorded %v", i, got[i], p.HoleCenters[i])
		}
	}

	// Holes span the interior exactly: one half pitch in from each edge.
	var b geom.Bounds
	b = b.Extend(got...)
	if !near(b.Width()+layout.Pitch, p.Dimensions.InteriorWidth) {
		t.Errorf("hole span width = %v, want %v", b.Width()+layout.Pitch, p.Dimensions.InteriorWidth)
	}
	if !near(b.Height()+layout.Pitch, p.Dimensions.InteriorHeight) {
		t.Errorf("hole span height = %v, want %v", b.Height()+layout.Pitch, p.Dimensions.InteriorHeight)
	}
	if !near(b.MinX-layout.Pitch/2, opts.Padding.Left) || !near(b.MinY-layout.Pitch/2, opts.Padding.Bottom) {
		t.Errorf("hole min = %v, want half pitch inside padding", b.Min())
	}
}

func TestComposeFlipsRows(t *testing.T) {
	p := compose(t, place(kle.Row{key()}, kle.Row{key()}), DefaultOptions())
	got := switchCenters(p.Holes)
	if len(got) != 2 {
		t.Fatalf("holes = %d, want 2", len(got))
	}
	if got[0].Y <= got[1].Y {
		t.Errorf("first row y = %v should be above second row y = %v", got[0].Y, got[1].Y)
	}
}

func TestComposeInvalidStyle(t *testing.T) {
	opts := DefaultOptions()
	opts.Style = "alps"
	_, err := Compose(place(kle.Row{key()}), opts)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestComposeEmptyLayout(t *testing.T) {
	opts := DefaultOptions()
	opts.Padding = Padding{Left: 5, Right: 5, Top: 5, Bottom: 5}
	p := compose(t, layout.Result{}, opts)
	if !near(p.Dimensions.ExteriorWidth, 10) || !near(p.Dimensions.ExteriorHeight, 10) {
		t.Errorf("exterior = %vx%v, want 10x10", p.Dimensions.ExteriorWidth, p.Dimensions.ExteriorHeight)
	}
	if len(switchCenters(p.Holes)) != 0 {
		t.Error("empty layout should have no holes")
	}
}

func TestComposeDeterministic(t *testing.T) {
	res := place(
		kle.Row{kle.Rotation(10), kle.AnchorX(1), key(), kle.WidthFactor(6.25), key()},
		kle.Row{kle.DecalMark{}, key(), key()},
	)
	opts := DefaultOptions()
	opts.Padding = Padding{Left: 6, Right: 6, Top: 6, Bottom: 6}
	opts.CornerRadius = 2
	opts.ScrewHoles = 6
	opts.ScrewDiameter = 3
	opts.Sectioned = true

	a := compose(t, res, opts)
	b := compose(t, res, opts)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different trees")
	}
}

func TestComposeShowPoints(t *testing.T) {
	opts := DefaultOptions()
	opts.ShowPoints = true
	p := compose(t, place(kle.Row{key(), key()}), opts)

	var dots int
	var colored bool
	geom.Walk(p.Top, func(n geom.Shape, _ geom.Affine) bool {
		switch n := n.(type) {
		case geom.Color:
			colored = n.Name == "red"
		case geom.Circle:
			if n.Radius == markerRadius {
				dots++
			}
		}
		return true
	})
	if !colored {
		t.Error("markers should be tagged red")
	}
	if dots != 8 {
		t.Errorf("markers = %d, want 8", dots)
	}
}

func TestCornerNotches(t *testing.T) {
	d := Dimensions{ExteriorWidth: 40, ExteriorHeight: 20}
	u, ok := Corners(d, 2).(geom.Union)
	if !ok || len(u.Children) != 4 {
		t.Fatalf("Corners = %#v, want union of 4", u)
	}

	// The circle center of each notch must sit r inside its corner.
	want := []geom.Vec2{geom.V(2, 2), geom.V(38, 2), geom.V(38, 18), geom.V(2, 18)}
	for i, c := range u.Children {
		var center geom.Vec2
		geom.Walk(c, func(n geom.Shape, world geom.Affine) bool {
			if _, ok := n.(geom.Circle); ok {
				center = world.Apply(geom.Vec2{})
			}
			return true
		})
		if !nearVec(center, want[i]) {
			t.Errorf("corner %d circle at %v, want %v", i, center, want[i])
		}
	}
}

func TestComposeCornersCutBothPlates(t *testing.T) {
	opts := DefaultOptions()
	opts.CornerRadius = 3
	p := compose(t, place(kle.Row{key()}), opts)
	for name, s := range map[string]geom.Shape{"top": p.Top, "bottom": p.Bottom} {
		d, ok := s.(geom.Difference)
		if !ok || len(d.Children) != 2 {
			t.Errorf("%s = %T, want difference with corners", name, s)
			continue
		}
		if _, ok := d.Children[1].(geom.Union); !ok {
			t.Errorf("%s cut = %T, want union of notches", name, d.Children[1])
		}
	}
}

func TestScrewHoles(t *testing.T) {
	tests := []struct {
		name  string
		dims  Dimensions
		walls Walls
		count int
		want  []geom.Vec2
	}{
		{
			name:  "four equal walls",
			dims:  Dimensions{ExteriorWidth: 100, ExteriorHeight: 50},
			walls: Walls{Left: 6, Right: 6, Top: 6, Bottom: 6},
			count: 4,
			want: []geom.Vec2{
				geom.V(3, 3), geom.V(97, 3),
				geom.V(3, 47), geom.V(97, 47),
			},
		},
		{
			name:  "thick side walls",
			dims:  Dimensions{ExteriorWidth: 100, ExteriorHeight: 50},
			walls: Walls{Left: 8, Right: 4, Top: 4, Bottom: 4},
			count: 4,
			want: []geom.Vec2{
				geom.V(4, 6), geom.V(98, 2),
				geom.V(4, 44), geom.V(98, 48),
			},
		},
		{
			name:  "thick right wall",
			dims:  Dimensions{ExteriorWidth: 100, ExteriorHeight: 50},
			walls: Walls{Left: 4, Right: 10, Top: 4, Bottom: 4},
			count: 4,
			want: []geom.Vec2{
				geom.V(2, 2), geom.V(95, 7),
				geom.V(2, 48), geom.V(95, 43),
			},
		},
		{
			name:  "intermediate holes",
			dims:  Dimensions{ExteriorWidth: 100, ExteriorHeight: 50},
			walls: Walls{Left: 10, Right: 10, Top: 10, Bottom: 10},
			count: 8,
			want: []geom.Vec2{
				geom.V(5, 5), geom.V(27.5, 5), geom.V(72.5, 5), geom.V(95, 5),
				geom.V(5, 45), geom.V(27.5, 45), geom.V(72.5, 45), geom.V(95, 45),
			},
		},
		{
			name:  "too few",
			dims:  Dimensions{ExteriorWidth: 100, ExteriorHeight: 50},
			count: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScrewHoles(tt.dims, tt.walls, tt.count)
			if len(got) != len(tt.want) {
				t.Fatalf("holes = %v, want %v", got, tt.want)
			}
			for i := range got {
				if !nearVec(got[i], tt.want[i]) {
					t.Errorf("hole %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestComposeScrewHoles(t *testing.T) {
	res := place(kle.Row{key(), key(), key()})

	tests := []struct {
		name     string
		count    int
		diameter float64
		want     int
		wantErr  bool
	}{
		{"enabled", 4, 3, 4, false},
		{"three is off", 3, 3, 0, false},
		{"zero diameter is off", 4, 0, 0, false},
		{"odd count", 5, 3, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Padding = Padding{Left: 5, Right: 5, Top: 5, Bottom: 5}
			opts.ScrewHoles = tt.count
			opts.ScrewDiameter = tt.diameter

			p, err := Compose(res, opts)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidConfig) {
					t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidConfig)
				}
				return
			}
			if err != nil {
				t.Fatalf("Compose: %v", err)
			}
			if len(p.ScrewCenters) != tt.want {
				t.Errorf("screws = %d, want %d", len(p.ScrewCenters), tt.want)
			}
		})
	}
}

func TestScrewSegmentsFallback(t *testing.T) {
	for _, segs := range []int{0, 2, -1} {
		if got := (Options{ScrewSegments: segs}).screwSegments(); got != DefaultScrewSegments {
			t.Errorf("screwSegments(%d) = %d, want %d", segs, got, DefaultScrewSegments)
		}
	}
	if got := (Options{ScrewSegments: 6}).screwSegments(); got != 6 {
		t.Errorf("screwSegments(6) = %d", got)
	}
}

func TestMidInteriorCutoutMatchesBounds(t *testing.T) {
	res := place(kle.Row{key(), key()}, kle.Row{key()})
	for _, radius := range []float64{0, 2} {
		opts := DefaultOptions()
		opts.Padding = Padding{Left: 4, Right: 6, Top: 8, Bottom: 10}
		opts.CornerRadius = radius
		opts.ScrewHoles = 4
		opts.ScrewDiameter = 2
		p := compose(t, res, opts)

		d, ok := p.Mid.(geom.Difference)
		if !ok || len(d.Children) != 3 {
			t.Fatalf("mid = %#v, want difference of 3", p.Mid)
		}
		if _, ok := d.Children[0].(geom.Rectangle); !ok {
			t.Errorf("radius %v: mid base = %T, want plain rectangle", radius, d.Children[0])
		}
		want := geom.Move(4, 10, geom.Rect(res.Bounds.Width(), res.Bounds.Height()))
		if !reflect.DeepEqual(d.Children[1], want) {
			t.Errorf("radius %v: interior cut = %#v, want %#v", radius, d.Children[1], want)
		}
	}
}

func TestMidWallCut(t *testing.T) {
	d := Dimensions{InteriorWidth: 80, InteriorHeight: 30, ExteriorWidth: 100, ExteriorHeight: 50}
	w := Walls{Left: 5, Right: 5, Top: 8, Bottom: 10}
	mid := BuildMid(geom.Rect(100, 50), d, w, Padding{Left: 10, Right: 10, Top: 10, Bottom: 10})

	want := geom.Move(5, 10, geom.Rect(90, 32))
	if got := mid.(geom.Difference).Children[2]; !reflect.DeepEqual(got, want) {
		t.Errorf("wall cut = %#v, want %#v", got, want)
	}
}

func TestSection(t *testing.T) {
	d := Dimensions{ExteriorWidth: 100, ExteriorHeight: 60}
	w := Walls{Left: 5, Right: 6, Top: 7, Bottom: 8}
	u, ok := Section(geom.Rect(100, 60), d, w).(geom.Union)
	if !ok || len(u.Children) != 4 {
		t.Fatalf("Section = %#v, want union of 4", u)
	}

	wantOffsets := []geom.Vec2{
		geom.V(0, 0),
		geom.V(8, 11),
		geom.V(17, 22),
		geom.V(25, 32),
	}
	// Every quadrant's outer corner must land on its piece offset.
	outer := []geom.Vec2{geom.V(0, 0), geom.V(100, 0), geom.V(0, 60), geom.V(100, 60)}
	for i, c := range u.Children {
		tr, ok := c.(geom.Translate)
		if !ok {
			t.Fatalf("piece %d = %T, want translate", i, c)
		}
		if !nearVec(tr.Offset, wantOffsets[i]) {
			t.Errorf("piece %d offset = %v, want %v", i, tr.Offset, wantOffsets[i])
		}

		var world geom.Affine
		geom.Walk(c, func(n geom.Shape, m geom.Affine) bool {
			if _, ok := n.(geom.Intersection); ok {
				world = m
				return false
			}
			return true
		})
		if got := world.Apply(outer[i]); !nearVec(got, wantOffsets[i]) {
			t.Errorf("piece %d outer corner maps to %v, want %v", i, got, wantOffsets[i])
		}
	}
}

func TestSectionClearance(t *testing.T) {
	p := Padding{Left: 5, Right: 6, Top: 7, Bottom: 8}
	d := Dimensions{InteriorWidth: 89, InteriorHeight: 45, ExteriorWidth: 100, ExteriorHeight: 60}
	w := Walls{Left: 5, Right: 6, Top: 7, Bottom: 8}
	mid := BuildMid(geom.Rect(d.ExteriorWidth, d.ExteriorHeight), d, w, p)

	u, ok := Section(mid, d, w).(geom.Union)
	if !ok || len(u.Children) != 4 {
		t.Fatalf("Section = %#v, want union of 4", u)
	}
	pieces := make([]sdf.SDF2, len(u.Children))
	for i, c := range u.Children {
		f, err := sink.ToSDF(c)
		if err != nil || f == nil {
			t.Fatalf("piece %d: ToSDF = %v, %v", i, f, err)
		}
		pieces[i] = f
	}

	// Every point of a later piece stays sectionGap clear of each earlier one.
	const step = 0.25
	for k := 1; k < len(pieces); k++ {
		covered := 0
		for x := -1.0; x <= 130; x += step {
			for y := -1.0; y <= 100; y += step {
				pt := v2.Vec{X: x, Y: y}
				if pieces[k].Evaluate(pt) >= 0 {
					continue
				}
				covered++
				for j := 0; j < k; j++ {
					if dist := pieces[j].Evaluate(pt); dist < sectionGap-1e-9 {
						t.Fatalf("piece %d at (%g, %g) is %g from piece %d, want >= %g", k, x, y, dist, j, sectionGap)
					}
				}
			}
		}
		if covered == 0 {
			t.Errorf("piece %d has no material", k)
		}
	}
}

func TestComposeNegativeRadius(t *testing.T) {
	res := place(kle.Row{key(), key()})
	flat := DefaultOptions()
	neg := DefaultOptions()
	neg.CornerRadius = -3

	want := compose(t, res, flat)
	got := compose(t, res, neg)
	if !reflect.DeepEqual(got.Top, want.Top) || !reflect.DeepEqual(got.Bottom, want.Bottom) {
		t.Error("negative corner radius should leave corners square")
	}
}

func TestComposeNegativePadding(t *testing.T) {
	opts := DefaultOptions()
	opts.Padding = Padding{Left: -2, Right: 1}
	p := compose(t, place(kle.Row{key()}), opts)
	if !near(p.Dimensions.ExteriorWidth, 19.05-1) {
		t.Errorf("exterior width = %g, want %g", p.Dimensions.ExteriorWidth, 19.05-1)
	}
}

func TestComposeSectioned(t *testing.T) {
	opts := DefaultOptions()
	opts.Sectioned = true
	p := compose(t, place(kle.Row{key()}), opts)
	parts := p.Parts()
	if len(parts) != 5 || parts[4].Name != PartMidSectioned {
		t.Errorf("parts = %v, want sectioned last", parts)
	}
}
