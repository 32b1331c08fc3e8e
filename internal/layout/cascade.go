package layout

import "github.com/yourusername/desk-cli/internal/types"

const (
	DefaultCascadeOrigin = 100
	DefaultCascadeStep   = 30
	DefaultCascadeSlots  = 5
)

// Cascade places new windows diagonally offset from each other so that they
// never open exactly on top of one another.
type Cascade struct {
	Origin types.Point `json:"origin" yaml:"origin"`
	Step   int         `json:"step" yaml:"step"`
	Slots  int         `json:"slots" yaml:"slots"`
}

// DefaultCascade returns the standard (100,100) origin, 30px step, 5 slot cycle
func DefaultCascade() Cascade {
	return Cascade{
		Origin: types.Point{X: DefaultCascadeOrigin, Y: DefaultCascadeOrigin},
		Step:   DefaultCascadeStep,
		Slots:  DefaultCascadeSlots,
	}
}

// Place returns the position for a window opened when n windows are already open.
// n is the current count, not a running total, so closing windows frees slots.
func (c Cascade) Place(n int) types.Point {
	slots := c.Slots
	if slots <= 0 {
		slots = 1
	}
	if n < 0 {
		n = 0
	}
	offset := (n % slots) * c.Step
	return c.Origin.Add(offset, offset)
}

// Maximized returns the area a maximized window covers: the whole desktop
// below the menu bar.
func Maximized(desktop types.Size) types.Rect {
	h := desktop.Height - types.MenuBarHeight
	if h < 0 {
		h = 0
	}
	return types.Rect{X: 0, Y: types.MenuBarHeight, Width: desktop.Width, Height: h}
}
