package window

import (
	"sort"

	"github.com/yourusername/desk-cli/internal/types"
)

// SortByStackOrder orders windows back to front. Ties keep their input order.
func SortByStackOrder(windows []Record) []Record {
	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].StackOrder < windows[j].StackOrder
	})
	return windows
}

// Topmost returns the visible window painted in front of all others
func Topmost(windows []Record) (Record, bool) {
	var top Record
	found := false
	for _, w := range windows {
		if !w.Visible() {
			continue
		}
		if !found || w.StackOrder > top.StackOrder {
			top = w
			found = true
		}
	}
	return top, found
}

// At returns the frontmost visible window under p. A maximized window
// covers the whole desktop below the menu bar.
func At(windows []Record, p types.Point) (Record, bool) {
	var hits []Record
	for _, w := range windows {
		if w.Maximized && p.Y >= types.MenuBarHeight || !w.Maximized && w.Frame().Contains(p) {
			hits = append(hits, w)
		}
	}
	return Topmost(hits)
}
