package sink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/keyplate/pkg/errors"
	"github.com/matzehuels/keyplate/pkg/geom"
)

// TreeOptions configures construction tree diagrams.
type TreeOptions struct {
	// Detailed adds node parameters (sizes, offsets, angles) to labels.
	// When false, only the node kind is shown.
	Detailed bool
}

// ToDOT converts a construction tree to Graphviz DOT. Nodes are numbered
// depth-first; edges to difference operands after the first are dashed
// to mark them as cuts.
func ToDOT(s geom.Shape, opts TreeOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.05\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	next := 0
	var visit func(s geom.Shape) string
	visit = func(s geom.Shape) string {
		id := "n" + strconv.Itoa(next)
		next++
		fmt.Fprintf(&buf, "  %s [%s];\n", id, strings.Join(nodeAttrs(s, opts.Detailed), ", "))

		_, isDiff := s.(geom.Difference)
		for i, c := range geom.Children(s) {
			child := visit(c)
			if isDiff && i > 0 {
				fmt.Fprintf(&buf, "  %s -> %s [style=dashed];\n", id, child)
			} else {
				fmt.Fprintf(&buf, "  %s -> %s;\n", id, child)
			}
		}
		return id
	}
	if s != nil {
		visit(s)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(s geom.Shape, detailed bool) []string {
	label := string(s.Kind())
	if detailed {
		if p := nodeParams(s); p != "" {
			label += "\n" + p
		}
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}

	switch n := s.(type) {
	case geom.Rectangle, geom.Circle, geom.Polygon, geom.Polyhedron:
		attrs = append(attrs, "fillcolor=lightgrey")
	case geom.Union, geom.Difference, geom.Intersection:
		attrs = append(attrs, "shape=ellipse")
	case geom.Color:
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", n.Name))
	}
	return attrs
}

func nodeParams(s geom.Shape) string {
	switch n := s.(type) {
	case geom.Rectangle:
		p := "size " + vec(n.Size)
		if n.Center {
			p += " centered"
		}
		return p
	case geom.Circle:
		return fmt.Sprintf("r %s, %d segments", num(n.Radius), n.Segments)
	case geom.Polygon:
		return fmt.Sprintf("%d points", len(n.Points))
	case geom.Polyhedron:
		return fmt.Sprintf("%d points, %d faces", len(n.Points), len(n.Faces))
	case geom.Translate:
		return vec(n.Offset)
	case geom.Rotate:
		return num(n.Degrees) + "°"
	case geom.Mirror:
		return "normal " + vec(n.Normal)
	case geom.Color:
		return n.Name
	}
	return ""
}

// RenderTree renders the construction tree of s as an SVG diagram.
func RenderTree(s geom.Shape, opts TreeOptions) ([]byte, error) {
	return RenderDOT(ToDOT(s, opts))
}

// RenderDOT lays out DOT source with Graphviz and returns SVG.
func RenderDOT(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render tree")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one
// whose viewBox starts at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
