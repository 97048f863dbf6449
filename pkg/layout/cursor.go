package layout

import "github.com/matzehuels/keyplate/pkg/kle"

// Pitch is the standard key spacing in millimeters.
const Pitch = 19.05

// CursorState is the interpreter state for one scan of a layout.
type CursorState struct {
	X, Y             float64
	AnchorX, AnchorY float64
	Rotation         float64
	PendingWidth     float64
	PendingHeight    float64
	SkipNext         bool
}

// NewCursor returns the state at the start of a layout.
func NewCursor() CursorState {
	return CursorState{PendingWidth: 1, PendingHeight: 1}
}

// StartRow returns the state at the start of the next row.
func (c CursorState) StartRow() CursorState {
	c.X = c.AnchorX
	c.PendingWidth = 1
	c.PendingHeight = 1
	c.SkipNext = false
	return c
}

// EndRow returns the state after a row is finished.
func (c CursorState) EndRow() CursorState {
	c.Y += Pitch
	return c
}

// Apply returns the state after a modifier entry. Key placeholders are
// handled by [CursorState.Key] and leave the state unchanged here.
func (c CursorState) Apply(e kle.Entry) CursorState {
	switch m := e.(type) {
	case kle.Rotation:
		c.Rotation = float64(m)
	case kle.WidthFactor:
		c.PendingWidth = float64(m)
	case kle.HeightFactor:
		c.PendingHeight = float64(m)
	case kle.AnchorX:
		c.AnchorX = float64(m) * Pitch
		c.X, c.Y = c.AnchorX, c.AnchorY
	case kle.AnchorY:
		c.AnchorY = float64(m) * Pitch
		c.X, c.Y = c.AnchorX, c.AnchorY
	case kle.CursorDX:
		c.X += float64(m) * Pitch
	case kle.CursorDY:
		c.Y += float64(m) * Pitch
	case kle.DecalMark:
		c.SkipNext = true
	}
	return c
}

// Key consumes one key placeholder. It returns the placement for the key,
// whether a key was placed (false for decals), and the next state.
func (c CursorState) Key(index int, label string) (Placement, bool, CursorState) {
	if c.SkipNext {
		c.SkipNext = false
		return Placement{}, false, c
	}

	w := c.PendingWidth * Pitch
	h := c.PendingHeight * Pitch
	p := newPlacement(index, label, c, w, h)

	c.X += w
	c.PendingWidth = 1
	c.PendingHeight = 1
	return p, true, c
}
