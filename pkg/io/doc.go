// Package io moves layouts and build outputs between keyplate and the
// filesystem.
//
// # Import
//
// [ImportLayout] and [ReadLayout] read a KLE raw-data document and return
// both the decoded [kle.Layout] and the raw bytes. The raw bytes are what
// the pipeline hashes for cache keys, so two copies of the same export
// share cached artifacts even when they live at different paths.
//
// Documents larger than [errors.MaxLayoutBytes] are rejected before
// decoding.
//
// # Export
//
// [ExportFiles] writes rendered artifacts into a directory, one file per
// artifact. Every name must be a plain basename:
//
//	files := []io.File{
//	    {Name: "top.scad", Data: top},
//	    {Name: "mid_closed.dxf", Data: mid},
//	}
//	paths, err := io.ExportFiles("out", files)
//
// Files are written to a temporary name and renamed into place, so an
// interrupted build never leaves a truncated artifact behind.
//
// # Manifest
//
// [WriteManifest] records what a build produced:
//
//	{
//	  "build_id": "5b0c...",
//	  "layout_hash": "9f2e...",
//	  "units": "mm",
//	  "width": 304.8,
//	  "height": 114.3,
//	  "files": ["top.scad", "bottom.scad", "holes.scad", "mid_closed.scad"]
//	}
package io
