// Package plate composes keyboard case plates from key placements.
//
// # Overview
//
// [Compose] takes the output of layout.Place and produces a [Plates] value
// holding one construction tree per part:
//
//   - Top: the switch plate, an exterior rectangle minus every switch hole
//   - Bottom: the plain exterior rectangle
//   - Holes: the switch holes alone, for cutting into plates drawn elsewhere
//   - Mid: the structural frame between top and bottom
//   - MidSectioned: the frame cut into four quadrants and nested for cutting
//     from a smaller sheet (only with [Options.Sectioned])
//
// The exterior is the key bounding box grown by the configured [Padding].
// Layout coordinates put the origin at the top left with y growing down;
// plates put it at the bottom left. Compose translates the keys so the
// bounding box starts at the padded origin and mirrors the result once.
//
// # Corners and Screw Holes
//
// With [Options.CornerRadius] > 0 each exterior corner is rounded. With
// more than three screw holes and a positive diameter, holes are placed in
// a bottom and a top row, kept clear of the walls (see [ScrewHoles]). Both
// are cut from the top and bottom plates identically.
//
// # Mid-Layer
//
// The mid-layer is derived from the plain bottom plate, before corners and
// screw holes are cut. It keeps a frame whose width on each side is the
// smaller of the configured maximum wall and that side's padding (see
// [Walls]).
//
// Nothing here checks that the result can be manufactured. A corner radius
// larger than the padding, for example, produces self-intersecting geometry
// that is passed through unchanged.
package plate
