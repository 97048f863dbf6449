// Package sink renders plate construction trees into output formats.
//
// # Overview
//
// A "sink" turns a [geom.Shape] into bytes. This package provides:
//
//   - SCAD: OpenSCAD source, one module tree per part
//   - JSON: a lossless tree encoding that [ParseJSON] reads back
//   - DXF: 2D outlines traced from a signed distance field
//   - DOT and tree: the construction tree as a Graphviz graph, as source
//     or rendered to SVG
//
// Every renderer takes functional options:
//
//	scad, err := sink.RenderSCAD(plates.Top, sink.WithSCADHeader("top plate"))
//	data, err := sink.RenderJSON(plates.Top, sink.WithJSONName("top"))
//	dxf, err := sink.RenderDXF(plates.Top, sink.WithCells(800))
//
// # DXF Output
//
// [RenderDXF] converts the tree with [ToSDF] and traces it with
// sdfx's marching squares renderer. The trace is an approximation whose
// resolution is set by [WithCells]. Polyhedra cannot be represented in 2D
// and yield an [errors.ErrCodeUnsupported] error. Trees that enclose no
// area yield [ErrEmpty].
//
// # Formats
//
// [Format] names the supported outputs and [ParseFormats] reads a comma
// separated list of them. [Render] dispatches on a Format.
//
// [geom.Shape]: github.com/matzehuels/keyplate/pkg/geom.Shape
// [errors.ErrCodeUnsupported]: github.com/matzehuels/keyplate/pkg/errors.ErrCodeUnsupported
package sink
