package errors

import (
	"strings"
	"unicode"
)

// MaxLayoutBytes caps layout documents. A full-size KLE export is a few
// kilobytes.
const MaxLayoutBytes = 1 << 20

const maxPathLength = 500

// ValidateLayoutSize rejects empty and oversized layouts with LOAD_ERROR.
func ValidateLayoutSize(n int) error {
	switch {
	case n == 0:
		return New(ErrCodeLoad, "layout is empty")
	case n > MaxLayoutBytes:
		return New(ErrCodeLoad, "layout too large (%d bytes, max %d)", n, MaxLayoutBytes)
	}
	return nil
}

// ValidateArtifactName accepts plain file names such as "mid_closed.dxf".
func ValidateArtifactName(name string) error {
	switch {
	case name == "":
		return New(ErrCodeInvalidPath, "artifact name is empty")
	case strings.ContainsAny(name, `/\`):
		return New(ErrCodeInvalidPath, "artifact name %q contains a path separator", name)
	case strings.HasPrefix(name, "."):
		return New(ErrCodeInvalidPath, "artifact name %q is hidden", name)
	case hasControl(name):
		return New(ErrCodeInvalidPath, "artifact name contains control characters")
	}
	return nil
}

// ValidatePath checks an output directory from a flag or config file.
func ValidatePath(path string) error {
	switch {
	case path == "":
		return New(ErrCodeInvalidPath, "output path is empty")
	case len(path) > maxPathLength:
		return New(ErrCodeInvalidPath, "output path longer than %d bytes", maxPathLength)
	case hasControl(path):
		return New(ErrCodeInvalidPath, "output path contains control characters")
	}
	return nil
}

func hasControl(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}
