package plate

import "github.com/matzehuels/keyplate/pkg/geom"

// ScrewHoles returns the centers of count screw holes, half in a bottom row
// and half in a top row, each row ordered left to right.
//
// The outer holes of a row are inset from the side by half the thicker of
// the two walls meeting at that corner. When the side wall is the thicker
// one, the hole also moves from the row's center line toward the plate
// center by that inset.
//
// count must be even and greater than three; smaller counts yield nil.
func ScrewHoles(d Dimensions, w Walls, count int) []geom.Vec2 {
	if count <= 3 {
		return nil
	}
	perRow := count / 2
	holes := make([]geom.Vec2, 0, 2*perRow)
	holes = append(holes, screwRow(d, w, w.Bottom, w.Bottom/2, 1, perRow)...)
	holes = append(holes, screwRow(d, w, w.Top, d.ExteriorHeight-w.Top/2, -1, perRow)...)
	return holes
}

// screwRow places n holes along a row whose wall is rowWall thick and
// centered at y. sign points from the row toward the plate center.
func screwRow(d Dimensions, w Walls, rowWall, y, sign float64, n int) []geom.Vec2 {
	outer := func(sideWall float64) (float64, float64) {
		inset := max(rowWall, sideWall) / 2
		if sideWall > rowWall {
			return inset, y + sign*inset
		}
		return inset, y
	}

	startInset, startY := outer(w.Left)
	endInset, endY := outer(w.Right)
	startX := startInset
	endX := d.ExteriorWidth - endInset

	row := make([]geom.Vec2, 0, n)
	row = append(row, geom.V(startX, startY))
	if n > 2 {
		step := (endX - startX) / float64(n-2)
		for k := 1; k <= n-2; k++ {
			row = append(row, geom.V(startX+(float64(k)-0.5)*step, y))
		}
	}
	return append(row, geom.V(endX, endY))
}

// screwCuts returns the union of circles of the given diameter at centers.
func screwCuts(centers []geom.Vec2, diameter float64, segments int) geom.Shape {
	cuts := make([]geom.Shape, len(centers))
	for i, c := range centers {
		cuts[i] = geom.MoveBy(c, geom.Circ(diameter/2, segments))
	}
	return geom.Join(cuts...)
}
