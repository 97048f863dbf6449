// Package kle reads keyboard-layout-editor (KLE) layout descriptions.
//
// # Overview
//
// A KLE layout is an array of rows. Each row is an array whose items are
// either key labels (strings, ignored apart from their position) or
// modifier objects that change how the following keys are placed:
//
//	[
//	  ["Esc", {"x": 1}, "F1", "F2"],
//	  [{"w": 1.5}, "Tab", "Q"],
//	  [{"r": 15, "rx": 4, "ry": 1}, "A"]
//	]
//
// [Parse] turns that loosely typed document into a [Layout]: a list of
// [Row] values holding a closed set of [Entry] variants. Consumers switch
// over the variants instead of probing map keys.
//
// # Recognized Modifiers
//
//	r       [Rotation]      rotation in degrees, persists across rows
//	w, h    [WidthFactor], [HeightFactor]  size of the next key in units
//	rx, ry  [AnchorX], [AnchorY]  rotation anchor in units; resets the cursor
//	x, y    [CursorDX], [CursorDY]  cursor nudge in units
//	d       [DecalMark]     the next key is a decal and gets no cutout
//
// Fields present in one object are emitted in the order above. Fields with
// non-numeric values are dropped. Any other field (colors, labels, fonts)
// is ignored.
//
// # Input Forms
//
// Parse accepts both the JSON download from keyboard-layout-editor.com and
// the text of its "Raw data" tab, which omits the outer brackets and uses
// JSON5 syntax (unquoted keys, trailing commas). A leading metadata object
// is skipped.
package kle
