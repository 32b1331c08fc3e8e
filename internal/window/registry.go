// Package window implements the window registry: the ordered set of open
// windows, their stacking order and the single focused window.
//
// Registry is a value type. Every transition returns a new Registry and leaves
// the receiver untouched, so a Registry handed to a reader can never change
// under it. Unknown window ids are no-ops, never errors.
package window

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/yourusername/desk-cli/internal/layout"
	"github.com/yourusername/desk-cli/internal/types"
)

// IDFunc allocates window ids. It must never return the same id twice.
type IDFunc func() string

// UUIDs allocates random UUIDv4 ids
func UUIDs() IDFunc {
	return uuid.NewString
}

// SequentialIDs allocates prefix-1, prefix-2, ... ids.
// The counter is shared by every Registry derived from the one it was given to.
func SequentialIDs(prefix string) IDFunc {
	var n atomic.Int64
	return func() string {
		return prefix + strconv.FormatInt(n.Add(1), 10)
	}
}

// Option configures a new Registry
type Option func(*Registry)

// WithIDFunc overrides the id allocator
func WithIDFunc(fn IDFunc) Option {
	return func(r *Registry) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// WithCascade overrides the placement rule for new windows
func WithCascade(c layout.Cascade) Option {
	return func(r *Registry) {
		r.cascade = c
	}
}

// Registry is an immutable snapshot of all open windows
type Registry struct {
	windows []Record
	focused string
	cascade layout.Cascade
	newID   IDFunc
}

// NewRegistry creates an empty registry
func NewRegistry(opts ...Option) Registry {
	r := Registry{
		cascade: layout.DefaultCascade(),
		newID:   UUIDs(),
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// WithPlacement returns a copy of the registry that places new windows with c
func (r Registry) WithPlacement(c layout.Cascade) Registry {
	r.cascade = c
	return r
}

func (r Registry) nextID() string {
	if r.newID == nil {
		return uuid.NewString()
	}
	return r.newID()
}

func (r Registry) placement() layout.Cascade {
	if r.cascade.Slots <= 0 {
		return layout.DefaultCascade()
	}
	return r.cascade
}

func (r Registry) index(id string) int {
	for i, w := range r.windows {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// with returns a registry sharing configuration but holding new windows
func (r Registry) with(windows []Record, focused string) Registry {
	r.windows = windows
	r.focused = focused
	return r
}

// focusOnly returns a copy of the windows where only index i is focused,
// with fn applied to window i
func (r Registry) focusOnly(i int, fn func(*Record)) []Record {
	out := make([]Record, len(r.windows))
	for j, w := range r.windows {
		w.Focused = j == i
		if j == i && fn != nil {
			fn(&w)
		}
		out[j] = w
	}
	return out
}

// update returns a copy of the windows with fn applied to window i only
func (r Registry) update(i int, fn func(*Record)) []Record {
	out := make([]Record, len(r.windows))
	copy(out, r.windows)
	fn(&out[i])
	return out
}

// === Transitions ===

// Open adds a new focused window on top of the stack.
// Content that does not fit the kind is dropped. Open always succeeds.
func (r Registry) Open(kind types.WindowKind, title string, size types.Size, content Content) (Registry, Record) {
	if !content.FitsKind(kind) {
		content = NoContent()
	}

	rec := Record{
		ID:         r.nextID(),
		Kind:       kind,
		Title:      title,
		Position:   r.placement().Place(len(r.windows)),
		Size:       types.ClampSize(size),
		Focused:    true,
		StackOrder: r.MaxStackOrder() + 1,
		Content:    content.Clone(),
	}

	out := make([]Record, 0, len(r.windows)+1)
	for _, w := range r.windows {
		w.Focused = false
		out = append(out, w)
	}
	out = append(out, rec)

	return r.with(out, rec.ID), rec
}

// Close removes a window. When the focused window is closed, focus moves to
// the first remaining window, which is raised to the top of the stack.
func (r Registry) Close(id string) Registry {
	i := r.index(id)
	if i < 0 {
		return r
	}

	remaining := make([]Record, 0, len(r.windows)-1)
	remaining = append(remaining, r.windows[:i]...)
	remaining = append(remaining, r.windows[i+1:]...)

	if r.focused != id {
		return r.with(remaining, r.focused)
	}

	next := r.with(remaining, "")
	if len(remaining) == 0 {
		return next
	}
	return next.Focus(remaining[0].ID)
}

// Minimize hides a window and takes focus away from it.
// Focus is not handed to another window.
func (r Registry) Minimize(id string) Registry {
	i := r.index(id)
	if i < 0 {
		return r
	}

	focused := r.focused
	if focused == id {
		focused = ""
	}

	return r.with(r.update(i, func(w *Record) {
		w.Minimized = true
		w.Focused = false
	}), focused)
}

// Maximize flags a window maximized and focuses it without changing its
// stack order. The geometry it had before is kept for Restore.
func (r Registry) Maximize(id string) Registry {
	i := r.index(id)
	if i < 0 {
		return r
	}

	return r.with(r.focusOnly(i, func(w *Record) {
		if !w.Maximized && w.Restore == nil {
			g := w.Frame()
			w.Restore = &g
		}
		w.Maximized = true
	}), id)
}

// Restore clears the minimized and maximized flags and focuses the window.
// Geometry saved by Maximize is reinstated.
func (r Registry) Restore(id string) Registry {
	i := r.index(id)
	if i < 0 {
		return r
	}

	return r.with(r.focusOnly(i, func(w *Record) {
		w.Minimized = false
		w.Maximized = false
		if w.Restore != nil {
			w.Position = w.Restore.Origin()
			w.Size = types.ClampSize(w.Restore.Size())
			w.Restore = nil
		}
	}), id)
}

// Focus raises a window above every other and focuses it
func (r Registry) Focus(id string) Registry {
	i := r.index(id)
	if i < 0 {
		return r
	}

	top := r.MaxStackOrder() + 1
	return r.with(r.focusOnly(i, func(w *Record) {
		w.StackOrder = top
	}), id)
}

// Move replaces a window's position. Callers must not move maximized windows;
// the registry does not check.
func (r Registry) Move(id string, pos types.Point) Registry {
	i := r.index(id)
	if i < 0 {
		return r
	}

	return r.with(r.update(i, func(w *Record) {
		w.Position = pos
	}), r.focused)
}

// Resize replaces a window's size, clamped to the minimum window size
func (r Registry) Resize(id string, size types.Size) Registry {
	i := r.index(id)
	if i < 0 {
		return r
	}

	return r.with(r.update(i, func(w *Record) {
		w.Size = types.ClampSize(size)
	}), r.focused)
}

// === Queries ===

// Len returns the number of open windows
func (r Registry) Len() int {
	return len(r.windows)
}

// Windows returns a copy of the windows in insertion order
func (r Registry) Windows() []Record {
	out := make([]Record, len(r.windows))
	for i, w := range r.windows {
		out[i] = w.Clone()
	}
	return out
}

// Get returns a window by id
func (r Registry) Get(id string) (Record, bool) {
	if i := r.index(id); i >= 0 {
		return r.windows[i].Clone(), true
	}
	return Record{}, false
}

// FocusedID returns the focused window id, or "" when nothing is focused
func (r Registry) FocusedID() string {
	return r.focused
}

// MaxStackOrder returns the highest stack order, or 0 when empty
func (r Registry) MaxStackOrder() int {
	top := 0
	for _, w := range r.windows {
		if w.StackOrder > top {
			top = w.StackOrder
		}
	}
	return top
}

// ByStackOrder returns the windows ordered back to front
func (r Registry) ByStackOrder() []Record {
	return SortByStackOrder(r.Windows())
}

// Visible returns the windows that are not minimized, back to front
func (r Registry) Visible() []Record {
	var out []Record
	for _, w := range r.ByStackOrder() {
		if w.Visible() {
			out = append(out, w)
		}
	}
	return out
}

// Verify checks the registry invariants: unique ids, at most one focused
// window, and agreement between the focused id and the focused flag.
func (r Registry) Verify() error {
	seen := make(map[string]bool, len(r.windows))
	focusedCount := 0
	for _, w := range r.windows {
		if seen[w.ID] {
			return fmt.Errorf("duplicate window id %s", w.ID)
		}
		seen[w.ID] = true

		if w.Focused {
			focusedCount++
			if w.ID != r.focused {
				return fmt.Errorf("window %s is focused but focused id is %q", w.ID, r.focused)
			}
		}
		if w.Size.Width < types.MinWindowWidth || w.Size.Height < types.MinWindowHeight {
			return fmt.Errorf("window %s is %s, below the minimum size", w.ID, w.Size)
		}
	}

	if focusedCount > 1 {
		return fmt.Errorf("%d windows are focused", focusedCount)
	}
	if r.focused != "" && focusedCount == 0 {
		return fmt.Errorf("focused id %s does not match any focused window", r.focused)
	}
	return nil
}
