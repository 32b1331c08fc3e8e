package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/sys/unix"

	"github.com/yourusername/desk-cli/internal/desktop"
	"github.com/yourusername/desk-cli/internal/layout"
	"github.com/yourusername/desk-cli/internal/types"
	"github.com/yourusername/desk-cli/internal/window"
)

// VisualizationOptions controls the appearance of the visualization
type VisualizationOptions struct {
	UseUnicode bool
	ShowIDs    bool
	ShowIcons  bool
	MaxWidth   int
	MaxHeight  int
	Desktop    types.Size
}

// DefaultVisualizationOptions returns sensible defaults for the current terminal
func DefaultVisualizationOptions() VisualizationOptions {
	width, height := getTerminalSize()
	return VisualizationOptions{
		UseUnicode: supportsUnicode(),
		ShowIcons:  true,
		MaxWidth:   width,
		MaxHeight:  height - 3, // header and footer lines
		Desktop:    DefaultDesktop,
	}
}

// Visualize renders the desktop as text: icons first, then every visible
// window back to front, so the focused window ends up on top.
func Visualize(snap desktop.Snapshot, opts VisualizationOptions) string {
	var sb strings.Builder
	if opts.Desktop.Width <= 0 || opts.Desktop.Height <= 0 {
		opts.Desktop = DefaultDesktop
	}

	mode := "light"
	if snap.DarkMode {
		mode = "dark"
	}
	fmt.Fprintf(&sb, "Desktop %dx%d (%s mode, version %d)\n", opts.Desktop.Width, opts.Desktop.Height, mode, snap.Version)

	windows := snap.ByStackOrder()
	sc := NewScalingContext(opts.Desktop, windows, opts.MaxWidth, opts.MaxHeight)
	canvas := NewCanvas(opts.MaxWidth, opts.MaxHeight, opts.UseUnicode)
	canvas.DrawBox(0, 0, sc.TermWidth, sc.TermHeight)

	if opts.ShowIcons {
		for _, e := range snap.Files {
			if e.Position == nil {
				continue
			}
			x, y := sc.PixelToTerminal(*e.Position)
			canvas.DrawText(x, y, runewidth.Truncate("["+e.Name+"]", 16, "..."))
		}
	}

	var hidden []string
	for _, w := range windows {
		if !w.Visible() {
			hidden = append(hidden, w.Title)
			continue
		}

		frame := w.Frame()
		if w.Maximized {
			frame = layout.Maximized(opts.Desktop)
		}
		x, y, width, height := sc.Project(frame)
		canvas.DrawWindow(x, y, width, height, w.Focused)

		if height >= 3 && width > 2 {
			canvas.DrawText(x+1, y+1, runewidth.Truncate(windowLabel(w, opts.ShowIDs), width-2, "..."))
		}
	}

	sb.WriteString(canvas.String())
	fmt.Fprintf(&sb, "\nTotal: %d windows", len(windows))
	if len(hidden) > 0 {
		fmt.Fprintf(&sb, " (minimized: %s)", strings.Join(hidden, ", "))
	}
	sb.WriteString("\n")
	return sb.String()
}

// windowLabel creates the title line drawn inside a window frame
func windowLabel(w window.Record, showID bool) string {
	label := w.Title
	if label == "" {
		label = string(w.Kind)
	}
	if w.Maximized {
		label += " [max]"
	}
	if showID {
		return fmt.Sprintf("[%s] %s", w.ID, label)
	}
	return label
}

// getTerminalSize returns the current terminal dimensions
func getTerminalSize() (width, height int) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		// Default to 80x24 if we can't detect
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// supportsUnicode checks if the terminal supports Unicode
func supportsUnicode() bool {
	lang := os.Getenv("LANG")
	lcAll := os.Getenv("LC_ALL")

	return strings.Contains(lang, "UTF-8") || strings.Contains(lcAll, "UTF-8")
}

// PrintVisualization writes a colored visualization to w
func PrintVisualization(w io.Writer, snap desktop.Snapshot, opts VisualizationOptions) error {
	result := Visualize(snap, opts)

	if color.NoColor {
		_, err := fmt.Fprint(w, result)
		return err
	}

	c := color.New(color.FgCyan)
	if snap.DarkMode {
		c = color.New(color.FgHiMagenta)
	}
	_, err := c.Fprint(w, result)
	return err
}
