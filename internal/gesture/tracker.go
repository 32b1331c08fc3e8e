// Package gesture turns pointer input into desktop commands.
//
// A Tracker follows one pointer through press, move and release. Each move
// while a gesture is active yields a single MoveWindow or ResizeWindow
// command; the registry never learns that a gesture exists. Releasing or
// abandoning a gesture keeps whatever was last applied.
package gesture

import (
	"github.com/yourusername/desk-cli/internal/desktop"
	"github.com/yourusername/desk-cli/internal/types"
	"github.com/yourusername/desk-cli/internal/window"
)

// Mode is the tracker state
type Mode int

const (
	Idle Mode = iota
	Dragging
	Resizing
)

func (m Mode) String() string {
	switch m {
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	default:
		return "idle"
	}
}

// Tracker is the pointer-capture state for one pointer.
// The zero value is an idle tracker. A Tracker is not safe for concurrent use.
type Tracker struct {
	mode      Mode
	windowID  string
	maximized bool
	start     types.Point
	origin    types.Point
	size      types.Size
}

// Mode returns the current state
func (t *Tracker) Mode() Mode {
	return t.mode
}

// WindowID returns the window under gesture, or "" when idle
func (t *Tracker) WindowID() string {
	return t.windowID
}

// BeginDrag starts moving w by its title bar. Pressing an unfocused window
// focuses it, so the returned command should be dispatched when ok is true.
func (t *Tracker) BeginDrag(w window.Record, pointer types.Point) (desktop.Command, bool) {
	t.begin(Dragging, w, pointer)
	return press(w)
}

// BeginResize starts resizing w from its bottom-right corner
func (t *Tracker) BeginResize(w window.Record, pointer types.Point) (desktop.Command, bool) {
	t.begin(Resizing, w, pointer)
	return press(w)
}

func (t *Tracker) begin(mode Mode, w window.Record, pointer types.Point) {
	t.mode = mode
	t.windowID = w.ID
	t.maximized = w.Maximized
	t.start = pointer
	t.origin = w.Position
	t.size = w.Size
}

func press(w window.Record) (desktop.Command, bool) {
	if w.Focused {
		return nil, false
	}
	return desktop.FocusWindow{ID: w.ID}, true
}

// Move reports a pointer position. While a gesture is active it returns the
// command that places the window under the pointer.
func (t *Tracker) Move(pointer types.Point) (desktop.Command, bool) {
	dx := pointer.X - t.start.X
	dy := pointer.Y - t.start.Y

	switch t.mode {
	case Dragging:
		if t.maximized {
			return nil, false
		}
		return desktop.MoveWindow{ID: t.windowID, Position: t.origin.Add(dx, dy)}, true

	case Resizing:
		size := types.ClampSize(types.Size{Width: t.size.Width + dx, Height: t.size.Height + dy})
		return desktop.ResizeWindow{ID: t.windowID, Size: size}, true
	}
	return nil, false
}

// End releases the pointer. The last applied move or resize stands.
func (t *Tracker) End() {
	*t = Tracker{}
}

// ToggleMaximize returns the command for the title bar maximize button
func ToggleMaximize(w window.Record) desktop.Command {
	if w.Maximized {
		return desktop.RestoreWindow{ID: w.ID}
	}
	return desktop.MaximizeWindow{ID: w.ID}
}
