package plate

import (
	"testing"

	"github.com/matzehuels/keyplate/pkg/errors"
)

func TestParsePadding(t *testing.T) {
	tests := []struct {
		name       string
		horizontal string
		vertical   string
		want       Padding
		wantErr    bool
	}{
		{"empty", "", "", Padding{}, false},
		{"single", "5", "3", Padding{Left: 5, Right: 5, Top: 3, Bottom: 3}, false},
		{"pairs", "4,6", "1, 2", Padding{Left: 4, Right: 6, Top: 1, Bottom: 2}, false},
		{"bad horizontal", "x", "", Padding{}, true},
		{"bad second", "1,y", "", Padding{}, true},
		{"bad vertical", "", "1,2,3", Padding{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePadding(tt.horizontal, tt.vertical)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidConfig) {
					t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidConfig)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePadding: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParsePadding = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseMaxWall(t *testing.T) {
	tests := []struct {
		in      string
		want    MaxWall
		wantErr bool
	}{
		{"", MaxWall{Mode: WallFixed, Value: DefaultMaxWall}, false},
		{"4.5", MaxWall{Mode: WallFixed, Value: 4.5}, false},
		{"min_pad", MaxWall{Mode: WallMinPad}, false},
		{"max_pad", MaxWall{Mode: WallMaxPad}, false},
		{"thick", MaxWall{Mode: WallFixed, Value: DefaultMaxWall}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMaxWall(tt.in)
			if got != tt.want {
				t.Errorf("ParseMaxWall(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidWall) {
					t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidWall)
				}
				if errors.IsFatal(err) {
					t.Error("invalid wall should not be fatal")
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestMaxWallString(t *testing.T) {
	for _, s := range []string{"min_pad", "max_pad", "7.5"} {
		m, err := ParseMaxWall(s)
		if err != nil {
			t.Fatal(err)
		}
		if m.String() != s {
			t.Errorf("String() = %q, want %q", m.String(), s)
		}
	}
}

func TestNewWalls(t *testing.T) {
	p := Padding{Left: 2, Right: 12, Top: 6, Bottom: 9}
	tests := []struct {
		name string
		max  MaxWall
		want Walls
	}{
		{"fixed", MaxWall{Mode: WallFixed, Value: 8}, Walls{Left: 2, Right: 8, Top: 6, Bottom: 8}},
		{"min pad", MaxWall{Mode: WallMinPad}, Walls{Left: 2, Right: 2, Top: 2, Bottom: 2}},
		{"max pad", MaxWall{Mode: WallMaxPad}, Walls{Left: 2, Right: 12, Top: 6, Bottom: 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewWalls(p, tt.max); got != tt.want {
				t.Errorf("NewWalls = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		ok     bool
	}{
		{"defaults", func(*Options) {}, true},
		{"negative pad", func(o *Options) { o.Padding.Left = -1 }, true},
		{"negative radius", func(o *Options) { o.CornerRadius = -1 }, true},
		{"odd screws", func(o *Options) { o.ScrewHoles, o.ScrewDiameter = 7, 2 }, false},
		{"odd screws disabled", func(o *Options) { o.ScrewHoles = 7 }, true},
		{"costar", func(o *Options) { o.Style = "costar" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			tt.modify(&o)
			if err := o.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}
