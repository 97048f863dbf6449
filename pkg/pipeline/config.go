package pipeline

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/keyplate/pkg/errors"
)

// LoadConfig reads build options from a TOML file:
//
//	layout         = "ansi-60.json"
//	stabs          = "cherry"
//	horizontal_pad = "5"
//	vertical_pad   = "4,6"
//	corner_radius  = 3
//	num_holes      = 6
//	hole_diameter  = 2.2
//	max_wall       = "min_pad"
//	formats        = ["scad", "dxf"]
//
// A relative layout path is resolved against the config file's directory.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func LoadConfig(path string) (Options, error) {
	var opts Options
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Options{}, errors.New(errors.ErrCodeInvalidConfig,
			"config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if opts.LayoutPath != "" && !filepath.IsAbs(opts.LayoutPath) {
		opts.LayoutPath = filepath.Join(filepath.Dir(path), opts.LayoutPath)
	}
	return opts, nil
}
