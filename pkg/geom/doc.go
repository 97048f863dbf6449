// Package geom provides the 2D construction trees that plate builders produce
// and sinks consume.
//
// # Overview
//
// A plate is described as constructive solid geometry (CSG): primitive shapes
// combined by boolean operators and rigid transforms. This package defines
// those building blocks as an explicit tree of immutable values:
//
//   - Primitives: [Rectangle], [Circle], [Polygon], [Polyhedron]
//   - Booleans: [Union], [Difference], [Intersection]
//   - Transforms: [Translate], [Rotate], [Mirror]
//   - Decoration: [Color] (debug overlays only)
//
// Trees are built with small constructor functions that read like the
// drawing they describe:
//
//	notch := geom.Diff(
//	    geom.CenteredSquare(2*r),
//	    geom.Move(r, r, geom.Circ(r, 80)),
//	)
//
// Nothing in this package serializes or evaluates a tree. Sinks (see
// pkg/plate/sink) walk a tree with a type switch over [Shape].
//
// # Operand Order
//
// Boolean operands keep the order in which they were supplied. Order never
// changes the resulting solid, but it does change the emitted text, and the
// pipeline promises bit-identical output for identical input.
//
// # Bounds
//
// [Bounds] accumulates the min/max extent of a point set. The layout engine
// feeds it every key-space corner to size the plates.
package geom
