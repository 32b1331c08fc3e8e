package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/yourusername/desk-cli/internal/desktop"
	"github.com/yourusername/desk-cli/internal/files"
	"github.com/yourusername/desk-cli/internal/launch"
	"github.com/yourusername/desk-cli/internal/logging"
	"github.com/yourusername/desk-cli/internal/types"
	"github.com/yourusername/desk-cli/internal/window"
)

func TestCanvasDrawBox(t *testing.T) {
	c := NewCanvas(5, 3, false)
	c.DrawBox(0, 0, 5, 3)

	want := "+---+\n|   |\n+---+"
	if got := c.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestCanvasDrawWindowCoversBelow(t *testing.T) {
	c := NewCanvas(6, 4, false)
	c.FillRect(0, 0, 6, 4, '#')
	c.DrawWindow(0, 0, 6, 4, true)

	lines := strings.Split(c.String(), "\n")
	if lines[0] != "+====+" {
		t.Errorf("title bar = %q, want focused edge", lines[0])
	}
	if lines[1] != "|    |" {
		t.Errorf("interior = %q, want cleared", lines[1])
	}
}

func TestCanvasWideRunes(t *testing.T) {
	c := NewCanvas(6, 1, false)
	if n := c.DrawText(0, 0, "日本x"); n != 5 {
		t.Errorf("DrawText() cells = %d, want 5", n)
	}
	if got := c.String(); got != "日本x " {
		t.Errorf("String() = %q", got)
	}
	if c.GetCell(1, 0) != ' ' {
		t.Error("continuation cell should read as blank")
	}
}

func TestCanvasCenteredTruncates(t *testing.T) {
	c := NewCanvas(4, 1, false)
	c.DrawTextCentered(0, 0, 4, "abcdefgh")
	if got := c.String(); got != "abcd" {
		t.Errorf("String() = %q, want abcd", got)
	}
}

func TestScalingContext(t *testing.T) {
	sc := NewScalingContext(types.Size{Width: 1000, Height: 500}, nil, 102, 52)

	x, y := sc.PixelToTerminal(types.Point{X: 500, Y: 250})
	if x != 51 || y != 26 {
		t.Errorf("PixelToTerminal(center) = (%d, %d), want (51, 26)", x, y)
	}

	w, h := sc.ScaleSize(types.Size{Width: 10, Height: 1})
	if w != 3 || h != 2 {
		t.Errorf("ScaleSize(tiny) = %dx%d, want minimum 3x2", w, h)
	}
}

func TestScalingContextCoversOffscreenWindows(t *testing.T) {
	windows := []window.Record{{
		ID:       "w1",
		Position: types.Point{X: -200, Y: 0},
		Size:     types.Size{Width: 400, Height: 300},
	}}
	sc := NewScalingContext(types.Size{Width: 1000, Height: 500}, windows, 80, 24)
	if sc.MinX != -200 {
		t.Errorf("MinX = %d, want -200", sc.MinX)
	}

	x, _ := sc.PixelToTerminal(types.Point{X: -200, Y: 0})
	if x != border {
		t.Errorf("leftmost window x = %d, want %d", x, border)
	}
}

func testSnapshot(t *testing.T) desktop.Snapshot {
	t.Helper()
	c := desktop.New(desktop.WithIDFunc(window.SequentialIDs("w")), desktop.WithLogger(logging.Nop()))
	c.Dispatch(desktop.LaunchApp{App: "terminal"})
	c.Dispatch(desktop.LaunchApp{App: "browser"})
	s := c.Dispatch(desktop.LaunchApp{App: "files"})
	return c.Dispatch(desktop.MinimizeWindow{ID: s.FocusedID})
}

func TestVisualize(t *testing.T) {
	opts := VisualizationOptions{ShowIDs: true, MaxWidth: 80, MaxHeight: 90, Desktop: types.Size{Width: 1440, Height: 900}}
	got := Visualize(testSnapshot(t), opts)

	if !strings.HasPrefix(got, "Desktop 1440x900 (light mode, version 4)") {
		t.Errorf("header = %q", strings.SplitN(got, "\n", 2)[0])
	}
	for _, want := range []string{"[w1] Terminal", "[w2] Browser", "Total: 3 windows", "minimized: File Explorer"} {
		if !strings.Contains(got, want) {
			t.Errorf("visualization missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "[w3]") {
		t.Error("minimized window should not be drawn")
	}
}

func TestVisualizeMaximizedCoversDesktop(t *testing.T) {
	c := desktop.New(desktop.WithIDFunc(window.SequentialIDs("w")), desktop.WithLogger(logging.Nop()))
	s := c.Dispatch(desktop.LaunchApp{App: "terminal"})
	s = c.Dispatch(desktop.MaximizeWindow{ID: s.FocusedID})

	opts := VisualizationOptions{MaxWidth: 40, MaxHeight: 20, Desktop: types.Size{Width: 800, Height: 600}}
	lines := strings.Split(Visualize(s, opts), "\n")

	// Line 0 is the header and line 1 the desktop border; the window starts
	// below the menu bar and spans the full width.
	var top string
	for _, l := range lines[2:] {
		if strings.Contains(l, "====") {
			top = l
			break
		}
	}
	if top == "" {
		t.Fatalf("no focused title bar drawn:\n%s", strings.Join(lines, "\n"))
	}
	if !strings.HasPrefix(top, "|+") {
		t.Errorf("maximized window should start at the left edge: %q", top)
	}
}

func TestPrintWindowsTable(t *testing.T) {
	var buf bytes.Buffer
	PrintWindowsTable(&buf, testSnapshot(t).Windows)

	out := buf.String()
	for _, want := range []string{"w1", "Terminal", "terminal", "600x400", "minimized"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "w1") > strings.Index(out, "w2") {
		t.Error("windows should be listed back to front")
	}
}

func TestPrintFilesTable(t *testing.T) {
	var buf bytes.Buffer
	PrintFilesTable(&buf, testSnapshot(t).Files)

	out := buf.String()
	for _, want := range []string{"readme", "README", "folder", "blog"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Selected:") {
		t.Errorf("nothing is selected yet:\n%s", out)
	}

	buf.Reset()
	PrintFilesTable(&buf, files.NewTree(testSnapshot(t).Files).Select("blog-2").Entries())
	if !strings.Contains(buf.String(), "Selected: blog-2\n") {
		t.Errorf("selection footer missing:\n%s", buf.String())
	}
}

func TestPrintAppsTable(t *testing.T) {
	var buf bytes.Buffer
	PrintAppsTable(&buf, launch.DefaultApps())

	out := buf.String()
	for _, want := range []string{"files", "terminal", "browser", "https://github.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestPrintWindowDetail(t *testing.T) {
	w := window.Record{
		ID:       "w9",
		Title:    "Browser",
		Kind:     types.KindBrowser,
		Position: types.Point{X: 1, Y: 2},
		Size:     types.Size{Width: 800, Height: 600},
		Content:  window.URLContent("https://example.com"),
	}

	var buf bytes.Buffer
	PrintWindowDetail(&buf, w)
	out := buf.String()
	for _, want := range []string{"Window ID: w9", "800x600 @ (1, 2)", "State: normal", "Content: https://example.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail missing %q:\n%s", want, out)
		}
	}
}

func TestDocumentLanguage(t *testing.T) {
	if got := DocumentLanguage("main.go", "package main\n"); got != "Go" {
		t.Errorf("DocumentLanguage(main.go) = %q, want Go", got)
	}
	if got := DocumentLanguage("Intro.txt", "hello there\n"); got != "Markdown" {
		t.Errorf("DocumentLanguage(Intro.txt) = %q, want Markdown", got)
	}
}

func TestRenderDocumentPlain(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = saved }()

	var buf bytes.Buffer
	if err := RenderDocument(&buf, "README", "# Hello", false); err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}
	if got := buf.String(); got != "# Hello\n" {
		t.Errorf("RenderDocument() = %q", got)
	}
}

func TestRenderDocumentHighlighted(t *testing.T) {
	saved := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = saved }()

	var buf bytes.Buffer
	if err := RenderDocument(&buf, "README.md", "# Hello\n", true); err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Hello") || !strings.Contains(out, "\x1b[") {
		t.Errorf("RenderDocument() = %q, want escape codes around the text", out)
	}
}

func TestCanvasOverwriteWideRune(t *testing.T) {
	c := NewCanvas(4, 1, false)
	c.DrawText(0, 0, "日本")
	c.DrawText(1, 0, "x")
	if got := c.String(); got != " x本" {
		t.Errorf("String() = %q, want %q", got, " x本")
	}
}
