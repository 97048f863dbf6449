package kle

// Layout is an ordered list of rows.
type Layout struct {
	Rows []Row
}

// Row is an ordered list of entries.
type Row []Entry

// Entry is one item of a row. The set of implementations is closed.
type Entry interface {
	isEntry()
}

// Rotation sets the rotation, in degrees, of all following keys.
type Rotation float64

// WidthFactor sets the width of the next key in units.
type WidthFactor float64

// HeightFactor sets the height of the next key in units.
type HeightFactor float64

// AnchorX sets the x coordinate of the rotation anchor in units and moves
// the cursor to the anchor.
type AnchorX float64

// AnchorY sets the y coordinate of the rotation anchor in units and moves
// the cursor to the anchor.
type AnchorY float64

// CursorDX moves the cursor horizontally by a number of units.
type CursorDX float64

// CursorDY moves the cursor vertically by a number of units.
type CursorDY float64

// DecalMark marks the next key as a decal.
type DecalMark struct{}

// KeyPlaceholder is a key. Label is informational only.
type KeyPlaceholder struct {
	Label string
}

func (Rotation) isEntry()       {}
func (WidthFactor) isEntry()    {}
func (HeightFactor) isEntry()   {}
func (AnchorX) isEntry()        {}
func (AnchorY) isEntry()        {}
func (CursorDX) isEntry()       {}
func (CursorDY) isEntry()       {}
func (DecalMark) isEntry()      {}
func (KeyPlaceholder) isEntry() {}

// KeyCount returns the number of key placeholders, decals included.
func (l Layout) KeyCount() int {
	n := 0
	for _, row := range l.Rows {
		for _, e := range row {
			if _, ok := e.(KeyPlaceholder); ok {
				n++
			}
		}
	}
	return n
}
