package sink

import (
	"slices"
	"strings"

	"github.com/matzehuels/keyplate/pkg/errors"
	"github.com/matzehuels/keyplate/pkg/geom"
)

// Format is an output format name.
type Format string

// Supported formats.
const (
	FormatSCAD Format = "scad"
	FormatJSON Format = "json"
	FormatDXF  Format = "dxf"
	FormatDOT  Format = "dot"
	FormatTree Format = "tree"
)

// Formats lists every supported format in canonical order.
var Formats = []Format{FormatSCAD, FormatJSON, FormatDXF, FormatDOT, FormatTree}

// Ext returns the file extension, without the dot.
func (f Format) Ext() string {
	if f == FormatTree {
		return "tree.svg"
	}
	return string(f)
}

// ParseFormats reads a comma separated format list. Duplicates are dropped
// and an empty list selects SCAD.
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	for _, part := range strings.Split(s, ",") {
		f := Format(strings.ToLower(strings.TrimSpace(part)))
		if f == "" {
			continue
		}
		if !slices.Contains(Formats, f) {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"unknown format %q (must be one of: scad, json, dxf, dot, tree)", part)
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		out = []Format{FormatSCAD}
	}
	return out, nil
}

// Render renders s as f. name is recorded where the format has room for it.
func Render(f Format, name string, s geom.Shape) ([]byte, error) {
	switch f {
	case FormatSCAD:
		return RenderSCAD(s, WithSCADHeader(name))
	case FormatJSON:
		return RenderJSON(s, WithJSONName(name))
	case FormatDXF:
		return RenderDXF(s)
	case FormatDOT:
		return []byte(ToDOT(s, TreeOptions{Detailed: true})), nil
	case FormatTree:
		return RenderTree(s, TreeOptions{Detailed: true})
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
	}
}
