package output

import (
	"github.com/yourusername/desk-cli/internal/types"
	"github.com/yourusername/desk-cli/internal/window"
)

// DefaultDesktop is the pixel area assumed when none is given
var DefaultDesktop = types.Size{Width: 1440, Height: 900}

// ScalingContext handles coordinate transformation from desktop pixels to terminal cells
type ScalingContext struct {
	// Desktop bounds in pixels
	MinX, MinY int
	MaxX, MaxY int

	// Terminal dimensions in characters
	TermWidth  int
	TermHeight int

	// Scale factors
	ScaleX float64
	ScaleY float64
}

// border is the number of cells kept free around the desktop edge
const border = 1

// NewScalingContext maps a desktop of the given size onto a terminal area.
// The area grows to cover windows dragged past the desktop edge, so every
// window stays on the canvas.
func NewScalingContext(desktop types.Size, windows []window.Record, termWidth, termHeight int) *ScalingContext {
	if desktop.Width <= 0 || desktop.Height <= 0 {
		desktop = DefaultDesktop
	}

	minX, minY := 0, 0
	maxX, maxY := desktop.Width, desktop.Height
	for _, w := range windows {
		if !w.Visible() || w.Maximized {
			continue
		}
		if w.Position.X < minX {
			minX = w.Position.X
		}
		if w.Position.Y < minY {
			minY = w.Position.Y
		}
		if r := w.Position.X + w.Size.Width; r > maxX {
			maxX = r
		}
		if b := w.Position.Y + w.Size.Height; b > maxY {
			maxY = b
		}
	}

	availWidth := termWidth - 2*border
	availHeight := termHeight - 2*border
	if availWidth < 10 {
		availWidth = 10
	}
	if availHeight < 5 {
		availHeight = 5
	}

	return &ScalingContext{
		MinX:       minX,
		MinY:       minY,
		MaxX:       maxX,
		MaxY:       maxY,
		TermWidth:  termWidth,
		TermHeight: termHeight,
		ScaleX:     float64(availWidth) / float64(maxX-minX),
		ScaleY:     float64(availHeight) / float64(maxY-minY),
	}
}

// PixelToTerminal converts desktop coordinates to terminal coordinates
func (sc *ScalingContext) PixelToTerminal(p types.Point) (int, int) {
	x := int(float64(p.X-sc.MinX) * sc.ScaleX)
	y := int(float64(p.Y-sc.MinY) * sc.ScaleY)
	return x + border, y + border
}

// ScaleSize converts pixel dimensions to terminal character dimensions
func (sc *ScalingContext) ScaleSize(s types.Size) (int, int) {
	w := int(float64(s.Width) * sc.ScaleX)
	h := int(float64(s.Height) * sc.ScaleY)

	// Minimum size of 3x2 for visibility
	if w < 3 {
		w = 3
	}
	if h < 2 {
		h = 2
	}
	return w, h
}

// Project converts a desktop rectangle to a cell rectangle clamped to the canvas
func (sc *ScalingContext) Project(r types.Rect) (x, y, w, h int) {
	x, y = sc.PixelToTerminal(r.Origin())
	w, h = sc.ScaleSize(r.Size())
	return sc.ClampToCanvas(x, y, w, h)
}

// ClampToCanvas ensures coordinates are within canvas bounds
func (sc *ScalingContext) ClampToCanvas(x, y, w, h int) (int, int, int, int) {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}

	if x+w > sc.TermWidth {
		w = sc.TermWidth - x
	}
	if y+h > sc.TermHeight {
		h = sc.TermHeight - y
	}

	if w < 3 {
		w = 3
	}
	if h < 2 {
		h = 2
	}
	return x, y, w, h
}
