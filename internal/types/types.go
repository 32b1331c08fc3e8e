package types

import "fmt"

const (
	// MinWindowWidth is the narrowest a window may be resized to
	MinWindowWidth = 300
	// MinWindowHeight is the shortest a window may be resized to
	MinWindowHeight = 200
	// MenuBarHeight is the strip at the top of the desktop a maximized window leaves free
	MenuBarHeight = 28
)

// WindowKind is the content type hosted by a window
type WindowKind string

const (
	KindTerminal     WindowKind = "terminal"
	KindBrowser      WindowKind = "browser"
	KindFileExplorer WindowKind = "fileExplorer"
)

// WindowKinds lists every known window kind in display order
var WindowKinds = []WindowKind{KindTerminal, KindBrowser, KindFileExplorer}

// ParseWindowKind converts a string to a WindowKind
func ParseWindowKind(s string) (WindowKind, bool) {
	for _, k := range WindowKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// FileKind is the type of a file tree entry
type FileKind string

const (
	FileFolder FileKind = "folder"
	FileText   FileKind = "text"
	FileImage  FileKind = "image"
)

// Valid reports whether k is a known file kind
func (k FileKind) Valid() bool {
	switch k {
	case FileFolder, FileText, FileImage:
		return true
	}
	return false
}

// Point is a position in desktop coordinates
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// String returns "(x, y)"
func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Add returns p translated by (dx, dy)
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Size is a width and height in desktop pixels
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// String returns "WxH"
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ClampSize applies the minimum window size floor
func ClampSize(s Size) Size {
	if s.Width < MinWindowWidth {
		s.Width = MinWindowWidth
	}
	if s.Height < MinWindowHeight {
		s.Height = MinWindowHeight
	}
	return s
}

// Rect is a position plus a size
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewRect builds a Rect from a position and a size
func NewRect(p Point, s Size) Rect {
	return Rect{X: p.X, Y: p.Y, Width: s.Width, Height: s.Height}
}

// Origin returns the top-left corner
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rect's dimensions
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Contains checks if a point is inside the rect
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}
