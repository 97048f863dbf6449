package plate

import "github.com/matzehuels/keyplate/pkg/geom"

// BuildMid cuts the mid-layer frame out of bottom, the plain exterior
// rectangle. The first cut is the key bounding box; the second leaves
// walls of the given thickness on each side.
func BuildMid(bottom geom.Shape, d Dimensions, w Walls, p Padding) geom.Shape {
	return geom.Diff(bottom,
		geom.Move(p.Left, p.Bottom, geom.Rect(d.InteriorWidth, d.InteriorHeight)),
		geom.Move(w.Left, w.Bottom, geom.Rect(
			d.ExteriorWidth-w.Left-w.Right,
			d.ExteriorHeight-w.Bottom-w.Top,
		)),
	)
}

// quadrant describes one quarter of the mid-layer.
type quadrant struct {
	origin geom.Vec2 // lower-left corner in plate coordinates
	mirror geom.Vec2 // x and y are 1 when that axis is mirrored
	armX   float64   // vertical arm width after mirroring
	armY   float64   // horizontal arm width after mirroring
}

// Section splits mid at the plate center into four L-shaped pieces, turns
// each into the bottom-left orientation and nests them diagonally so each
// piece sits inside the corner of the previous one, sectionGap apart.
// Pieces are ordered bottom-left, bottom-right, top-left, top-right.
func Section(mid geom.Shape, d Dimensions, w Walls) geom.Shape {
	cx, cy := d.ExteriorWidth/2, d.ExteriorHeight/2
	quads := []quadrant{
		{origin: geom.V(0, 0), armX: w.Left, armY: w.Bottom},
		{origin: geom.V(cx, 0), mirror: geom.V(1, 0), armX: w.Right, armY: w.Bottom},
		{origin: geom.V(0, cy), mirror: geom.V(0, 1), armX: w.Left, armY: w.Top},
		{origin: geom.V(cx, cy), mirror: geom.V(1, 1), armX: w.Right, armY: w.Top},
	}

	pieces := make([]geom.Shape, 0, len(quads))
	var offset geom.Vec2
	for _, q := range quads {
		piece := geom.Intersect(mid, geom.MoveBy(q.origin, geom.Rect(cx, cy)))
		piece = orient(piece, q, d)
		pieces = append(pieces, geom.MoveBy(offset, piece))
		offset = offset.Add(geom.V(q.armX+sectionGap, q.armY+sectionGap))
	}
	return geom.Join(pieces...)
}

// orient mirrors a quadrant piece so its outer corner lands on the origin.
func orient(piece geom.Shape, q quadrant, d Dimensions) geom.Shape {
	if q.mirror.Y != 0 {
		piece = geom.Move(0, d.ExteriorHeight, geom.Flip(0, 1, piece))
	}
	if q.mirror.X != 0 {
		piece = geom.Move(d.ExteriorWidth, 0, geom.Flip(1, 0, piece))
	}
	return piece
}
