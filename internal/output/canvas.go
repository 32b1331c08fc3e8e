package output

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// BoxStyle is the rune set used to draw window frames
type BoxStyle struct {
	Corners    [4]rune // top-left, top-right, bottom-left, bottom-right
	Horizontal rune
	Vertical   rune
	TitleBar   rune // top edge of the focused window
	Shade      rune // window interior
}

var (
	ASCIIStyle = BoxStyle{
		Corners:    [4]rune{'+', '+', '+', '+'},
		Horizontal: '-',
		Vertical:   '|',
		TitleBar:   '=',
		Shade:      ' ',
	}

	UnicodeStyle = BoxStyle{
		Corners:    [4]rune{'┌', '┐', '└', '┘'},
		Horizontal: '─',
		Vertical:   '│',
		TitleBar:   '━',
		Shade:      ' ',
	}
)

// continuation fills the second cell of a double-width rune
const continuation rune = 0

// Canvas is a fixed grid of terminal cells, stored row-major.
// Drawing outside the grid is silently clipped.
type Canvas struct {
	Width  int
	Height int
	cells  []rune
	style  BoxStyle
}

func NewCanvas(width, height int, useUnicode bool) *Canvas {
	width, height = max(width, 0), max(height, 0)
	c := &Canvas{
		Width:  width,
		Height: height,
		cells:  make([]rune, width*height),
		style:  ASCIIStyle,
	}
	if useUnicode {
		c.style = UnicodeStyle
	}
	for i := range c.cells {
		c.cells[i] = ' '
	}
	return c
}

// index returns the offset of (x, y), or -1 when it is off the canvas
func (c *Canvas) index(x, y int) int {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return -1
	}
	return y*c.Width + x
}

// put writes one cell. Overwriting either half of a double-width rune
// blanks the other half so rows keep their width.
func (c *Canvas) put(x, y int, r rune) {
	i := c.index(x, y)
	if i < 0 {
		return
	}
	if r != continuation {
		if c.cells[i] == continuation && x > 0 {
			c.cells[i-1] = ' '
		}
		if x+1 < c.Width && c.cells[i+1] == continuation {
			c.cells[i+1] = ' '
		}
	}
	c.cells[i] = r
}

// GetCell returns the rune shown at (x, y); the right half of a wide rune
// and off-canvas positions read as a space.
func (c *Canvas) GetCell(x, y int) rune {
	if i := c.index(x, y); i >= 0 && c.cells[i] != continuation {
		return c.cells[i]
	}
	return ' '
}

// DrawBox outlines a rectangle without touching its interior
func (c *Canvas) DrawBox(x, y, width, height int) {
	c.frame(x, y, width, height, c.style.Horizontal)
}

// DrawWindow draws an opaque window: later windows hide earlier ones.
// A focused window gets a heavy title bar.
func (c *Canvas) DrawWindow(x, y, width, height int, focused bool) {
	if width < 2 || height < 2 {
		return
	}
	c.FillRect(x+1, y+1, width-2, height-2, c.style.Shade)
	top := c.style.Horizontal
	if focused {
		top = c.style.TitleBar
	}
	c.frame(x, y, width, height, top)
}

func (c *Canvas) frame(x, y, width, height int, top rune) {
	if width < 2 || height < 2 {
		return
	}
	right, bottom := x+width-1, y+height-1

	c.FillRect(x+1, y, width-2, 1, top)
	c.FillRect(x+1, bottom, width-2, 1, c.style.Horizontal)
	c.FillRect(x, y+1, 1, height-2, c.style.Vertical)
	c.FillRect(right, y+1, 1, height-2, c.style.Vertical)

	for i, p := range [4][2]int{{x, y}, {right, y}, {x, bottom}, {right, bottom}} {
		c.put(p[0], p[1], c.style.Corners[i])
	}
}

// DrawText writes text from (x, y) and returns how many cells it took.
// Zero-width runes are dropped.
func (c *Canvas) DrawText(x, y int, text string) int {
	col := x
	for _, r := range text {
		switch runewidth.RuneWidth(r) {
		case 0:
			continue
		case 2:
			c.put(col, y, r)
			c.put(col+1, y, continuation)
			col += 2
		default:
			c.put(col, y, r)
			col++
		}
	}
	return col - x
}

// DrawTextCentered centres text in a span of width cells, cutting it short
// when it does not fit
func (c *Canvas) DrawTextCentered(x, y, width int, text string) {
	if width <= 0 {
		return
	}
	text = runewidth.Truncate(text, width, "")
	c.DrawText(x+(width-runewidth.StringWidth(text))/2, y, text)
}

func (c *Canvas) FillRect(x, y, width, height int, r rune) {
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			c.put(col, row, r)
		}
	}
}

// String joins the rows with newlines
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(len(c.cells) + c.Height)
	for y := 0; y < c.Height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, r := range c.cells[y*c.Width : (y+1)*c.Width] {
			if r != continuation {
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}
