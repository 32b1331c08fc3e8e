// Package files holds the virtual file tree shown on the desktop.
//
// The tree is built once from static data and is never structurally
// mutated. Selection is the only state that changes, and every change
// produces a new Tree that shares nothing mutable with the old one.
package files

import (
	"strings"

	"github.com/yourusername/desk-cli/internal/types"
)

// Entry is a node in the virtual file tree
type Entry struct {
	ID       string         `json:"id" yaml:"id"`
	Name     string         `json:"name" yaml:"name"`
	Kind     types.FileKind `json:"kind" yaml:"kind"`
	Content  string         `json:"content,omitempty" yaml:"content,omitempty"`
	Children []Entry        `json:"children,omitempty" yaml:"children,omitempty"`
	Position *types.Point   `json:"position,omitempty" yaml:"position,omitempty"`
	Selected bool           `json:"selected" yaml:"-"`
}

// IsFolder returns true for folder entries
func (e Entry) IsFolder() bool {
	return e.Kind == types.FileFolder
}

// Clone returns a deep copy of the entry
func (e Entry) Clone() Entry {
	out := e
	if e.Position != nil {
		p := *e.Position
		out.Position = &p
	}
	if e.Children != nil {
		out.Children = cloneEntries(e.Children)
	}
	return out
}

func cloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}

// Tree is an immutable, ordered sequence of top-level entries
type Tree struct {
	entries []Entry
}

// NewTree builds a tree from entries. The entries are copied.
func NewTree(entries []Entry) Tree {
	return Tree{entries: cloneEntries(entries)}
}

// Entries returns a deep copy of the top-level entries
func (t Tree) Entries() []Entry {
	return cloneEntries(t.entries)
}

// Len returns the number of top-level entries
func (t Tree) Len() int {
	return len(t.entries)
}

// Select marks id as selected.
//
// Selection is two levels deep: the top-level entry matching id is selected,
// every other top-level entry is deselected, and the direct children of every
// non-matching folder are set to selected exactly when their id matches.
// Deeper levels are left untouched.
func (t Tree) Select(id string) Tree {
	next := make([]Entry, len(t.entries))
	for i, e := range t.entries {
		if e.ID == id {
			e.Selected = true
			next[i] = e
			continue
		}

		e.Selected = false
		if e.IsFolder() && e.Children != nil {
			children := make([]Entry, len(e.Children))
			for j, child := range e.Children {
				child.Selected = child.ID == id
				children[j] = child
			}
			e.Children = children
		}
		next[i] = e
	}
	return Tree{entries: next}
}

// Find looks up an entry by id at any depth
func (t Tree) Find(id string) (Entry, bool) {
	if e, ok := findIn(t.entries, id); ok {
		return e.Clone(), true
	}
	return Entry{}, false
}

func findIn(entries []Entry, id string) (Entry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
		if e.IsFolder() {
			if found, ok := findIn(e.Children, id); ok {
				return found, true
			}
		}
	}
	return Entry{}, false
}

// Resolve looks up an entry by slash-separated names, e.g. "Blog/Web Performance.txt".
// A segment that matches no name may instead give the entry id, with or
// without a ".txt" suffix, so "Blog/blog-3.txt" also resolves.
func (t Tree) Resolve(path string) (Entry, bool) {
	path = strings.Trim(path, "/")
	if path == "" {
		return Entry{}, false
	}

	level := t.entries
	parts := strings.Split(path, "/")
	for i, seg := range parts {
		match := lookup(level, seg)
		if match == nil {
			return Entry{}, false
		}
		if i == len(parts)-1 {
			return match.Clone(), true
		}
		if !match.IsFolder() {
			return Entry{}, false
		}
		level = match.Children
	}
	return Entry{}, false
}

func lookup(level []Entry, seg string) *Entry {
	for i := range level {
		if level[i].Name == seg {
			return &level[i]
		}
	}
	id := strings.TrimSuffix(seg, ".txt")
	for i := range level {
		if level[i].ID == seg || (level[i].ID == id && !level[i].IsFolder()) {
			return &level[i]
		}
	}
	return nil
}

// SelectedIDs returns the ids of every selected entry, depth first
func (t Tree) SelectedIDs() []string {
	var ids []string
	var walk func([]Entry)
	walk = func(entries []Entry) {
		for _, e := range entries {
			if e.Selected {
				ids = append(ids, e.ID)
			}
			walk(e.Children)
		}
	}
	walk(t.entries)
	return ids
}
