package window

import (
	"fmt"

	"github.com/yourusername/desk-cli/internal/types"
)

// Record is the authoritative state of one open window
type Record struct {
	ID         string           `json:"id"`
	Kind       types.WindowKind `json:"kind"`
	Title      string           `json:"title"`
	Position   types.Point      `json:"position"`
	Size       types.Size       `json:"size"`
	Focused    bool             `json:"focused"`
	Minimized  bool             `json:"minimized"`
	Maximized  bool             `json:"maximized"`
	StackOrder int              `json:"stackOrder"`
	Content    Content          `json:"content"`
	Restore    *types.Rect      `json:"restore,omitempty"` // Geometry from before maximize
}

// Visible returns true unless the window is minimized.
// Minimized hides a window even when it is also flagged maximized.
func (r Record) Visible() bool {
	return !r.Minimized
}

// Frame returns the window's position and size as a Rect
func (r Record) Frame() types.Rect {
	return types.NewRect(r.Position, r.Size)
}

// State returns a short label for the window's display state
func (r Record) State() string {
	switch {
	case r.Minimized && r.Maximized:
		return "minimized (maximized)"
	case r.Minimized:
		return "minimized"
	case r.Maximized:
		return "maximized"
	default:
		return "normal"
	}
}

// FormatFrame returns a formatted string representation of the window frame
func (r Record) FormatFrame() string {
	return fmt.Sprintf("%s @ %s", r.Size, r.Position)
}

// Clone returns a deep copy
func (r Record) Clone() Record {
	out := r
	out.Content = r.Content.Clone()
	if r.Restore != nil {
		g := *r.Restore
		out.Restore = &g
	}
	return out
}
