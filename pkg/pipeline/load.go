package pipeline

import (
	"strings"

	kpio "github.com/matzehuels/keyplate/pkg/io"
	"github.com/matzehuels/keyplate/pkg/kle"
)

// Load reads the layout named by opts and returns its raw bytes and the
// decoded layout.
func Load(opts Options) ([]byte, kle.Layout, error) {
	if opts.Layout != "" {
		return kpio.ReadLayout(strings.NewReader(opts.Layout))
	}
	return kpio.ImportLayout(opts.LayoutPath)
}
