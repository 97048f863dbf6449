// Package layout interprets a KLE layout into absolute key placements.
//
// # Overview
//
// KLE describes keys relative to a cursor that walks each row left to
// right. [Place] replays that walk with an explicit [CursorState] value and
// returns one [Placement] per physical key, the bounding box of every key
// footprint, and the footprint corners in scan order.
//
// Distances are in millimeters. One unit is [Pitch] (19.05 mm), the
// standard key-to-key spacing.
//
// # Cursor Rules
//
//   - Each row starts at the anchor's x; y carries over from the previous row.
//   - A key occupies width·pitch × height·pitch starting at the cursor; the
//     cursor then advances by the key's width.
//   - After a row, y advances by exactly one pitch, whatever the key
//     heights in that row were.
//   - Rotation and the anchor persist across rows. Rotated keys turn about
//     the anchor.
//   - A decal consumes the following key without placing it or moving the
//     cursor.
//
// # Placements
//
// A [Placement] records the unrotated key center together with the anchor
// and rotation that move it into place. [Placement.Apply] wraps any shape
// in the same transform, which is how plate builders position switch
// holes.
package layout
