package desktop

import (
	"github.com/yourusername/desk-cli/internal/files"
	"github.com/yourusername/desk-cli/internal/window"
)

// Snapshot is a point-in-time copy of the whole desktop.
// Nothing in a Snapshot is shared with the controller.
type Snapshot struct {
	Windows   []window.Record `json:"windows"`
	FocusedID string          `json:"focusedId,omitempty"`
	Files     []files.Entry   `json:"files"`
	DarkMode  bool            `json:"darkMode"`
	Version   uint64          `json:"version"`
}

// Window returns a window by id
func (s Snapshot) Window(id string) (window.Record, bool) {
	for _, w := range s.Windows {
		if w.ID == id {
			return w, true
		}
	}
	return window.Record{}, false
}

// Focused returns the focused window, if any
func (s Snapshot) Focused() (window.Record, bool) {
	if s.FocusedID == "" {
		return window.Record{}, false
	}
	return s.Window(s.FocusedID)
}

// File returns a file tree entry by id at any depth
func (s Snapshot) File(id string) (files.Entry, bool) {
	return files.NewTree(s.Files).Find(id)
}

// ByStackOrder returns the windows ordered back to front
func (s Snapshot) ByStackOrder() []window.Record {
	out := make([]window.Record, len(s.Windows))
	copy(out, s.Windows)
	return window.SortByStackOrder(out)
}

// Clone returns a deep copy
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Windows = make([]window.Record, len(s.Windows))
	for i, w := range s.Windows {
		out.Windows[i] = w.Clone()
	}
	out.Files = make([]files.Entry, len(s.Files))
	for i, e := range s.Files {
		out.Files[i] = e.Clone()
	}
	return out
}
