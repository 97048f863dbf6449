package errors

import (
	"strings"
	"testing"
)

func TestValidateLayoutSize(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"empty", 0, true},
		{"small", 120, false},
		{"at limit", MaxLayoutBytes, false},
		{"over limit", MaxLayoutBytes + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLayoutSize(tt.n)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLayoutSize(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeLoad) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeLoad)
			}
		})
	}
}

func TestValidateArtifactName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plate", "top.scad", false},
		{"underscore", "mid_closed.dxf", false},
		{"tree svg", "holes.tree.svg", false},

		{"empty", "", true},
		{"slash", "out/top.scad", true},
		{"backslash", "out\\top.scad", true},
		{"hidden", ".top.scad", true},
		{"control char", "top\x01.scad", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArtifactName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateArtifactName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out", false},
		{"absolute", "/tmp/plates", false},
		{"dot", ".", false},

		{"empty", "", true},
		{"null byte", "out\x00", true},
		{"newline", "out\nx", true},
		{"at limit", strings.Repeat("a", maxPathLength), false},
		{"too long", strings.Repeat("a", maxPathLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
