package layout

import (
	"github.com/matzehuels/keyplate/pkg/geom"
	"github.com/matzehuels/keyplate/pkg/kle"
)

// Result is the outcome of interpreting a layout.
type Result struct {
	// Placements holds one entry per physical key in scan order.
	Placements []Placement

	// Bounds covers every key footprint corner.
	Bounds geom.Bounds

	// Points holds the footprint corners of every placed key in scan order,
	// four per key.
	Points []geom.Vec2

	// Decals counts the skipped decal keys.
	Decals int
}

// Place interprets l. It never fails: unknown or malformed modifiers were
// already dropped by the parser.
func Place(l kle.Layout) Result {
	var res Result
	c := NewCursor()

	for _, row := range l.Rows {
		c = c.StartRow()
		for _, e := range row {
			key, ok := e.(kle.KeyPlaceholder)
			if !ok {
				c = c.Apply(e)
				continue
			}

			var p Placement
			var placed bool
			p, placed, c = c.Key(len(res.Placements), key.Label)
			if !placed {
				res.Decals++
				continue
			}
			res.Placements = append(res.Placements, p)
			res.Points = append(res.Points, p.Corners[:]...)
			res.Bounds = res.Bounds.Extend(p.Corners[:]...)
		}
		c = c.EndRow()
	}
	return res
}
