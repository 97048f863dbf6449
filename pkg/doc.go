// Package pkg provides the libraries behind keyplate, which turns Keyboard
// Layout Editor (KLE) layouts into switch-plate geometry.
//
// # Overview
//
// A layout flows through four stages:
//
//	KLE JSON
//	    ↓
//	[kle] parse rows, keys and property objects
//	    ↓
//	[layout] walk the cursor and place every key
//	    ↓
//	[plate] compose top, bottom, holes and mid layers as [geom] trees
//	    ↓
//	[plate/sink] emit OpenSCAD, JSON, DXF or DOT
//
// [pipeline] runs these stages with caching ([cache]), observability hooks
// ([observability]) and structured errors ([errors]).
//
// # Quick Start
//
//	l, err := kle.Parse(data)
//	if err != nil {
//	    return err
//	}
//	opts := plate.DefaultOptions()
//	plates, err := plate.Compose(layout.Place(l), opts)
//	if err != nil {
//	    return err
//	}
//	scad, err := sink.RenderSCAD(plates.Top)
//
// # Packages
//
//   - [kle], [layout]: layout parsing and key placement
//   - [geom]: CSG shape tree, affine transforms and 2D primitives
//   - [plate], [plate/switchhole]: plate composition and switch cutouts
//   - [plate/sink]: output formats
//   - [pipeline]: load, place, compose and render orchestration
//   - [cache]: file, Redis and MongoDB artifact caches
//   - [io]: layout import and artifact export
//   - [api], [client], [httputil]: HTTP build service types and client
//   - [errors], [observability], [buildinfo]: ambient support
package pkg
