package switchhole

import (
	"strings"

	"github.com/matzehuels/keyplate/pkg/errors"
)

// Style selects the stabilizer cutout shape.
type Style string

// Supported stabilizer styles.
const (
	StyleBoth   Style = "both"
	StyleCherry Style = "cherry"
	StyleCostar Style = "costar"
)

// DefaultStyle is used when no style is configured.
const DefaultStyle = StyleBoth

// ParseStyle converts a configured style name. Matching is case-insensitive;
// an empty name selects [DefaultStyle].
func ParseStyle(s string) (Style, error) {
	if s == "" {
		return DefaultStyle, nil
	}
	switch st := Style(strings.ToLower(s)); st {
	case StyleBoth, StyleCherry, StyleCostar:
		return st, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig,
		"invalid stabilizer style: %q (must be one of: both, cherry, costar)", s)
}

// hasCherry reports whether the style includes the Cherry clip and bar.
func (s Style) hasCherry() bool { return s == StyleBoth || s == StyleCherry }
