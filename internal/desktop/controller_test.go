package desktop

import (
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/yourusername/desk-cli/internal/files"
	"github.com/yourusername/desk-cli/internal/launch"
	"github.com/yourusername/desk-cli/internal/layout"
	"github.com/yourusername/desk-cli/internal/logging"
	"github.com/yourusername/desk-cli/internal/types"
	"github.com/yourusername/desk-cli/internal/window"
)

func newTestController(opts ...Option) *Controller {
	base := []Option{
		WithIDFunc(window.SequentialIDs("w")),
		WithLogger(logging.Nop()),
	}
	return New(append(base, opts...)...)
}

func TestEndToEndScenario(t *testing.T) {
	c := newTestController()

	s := c.Dispatch(OpenWindow{Kind: types.KindTerminal, Title: "Terminal", Size: types.Size{Width: 600, Height: 400}})
	if len(s.Windows) != 1 {
		t.Fatalf("len(Windows) = %d, want 1", len(s.Windows))
	}
	first := s.Windows[0]
	if !first.Focused || first.Position != (types.Point{X: 100, Y: 100}) || first.StackOrder != 1 {
		t.Errorf("first window = %+v", first)
	}
	if s.FocusedID != first.ID {
		t.Errorf("FocusedID = %q, want %q", s.FocusedID, first.ID)
	}

	s = c.Dispatch(OpenWindow{
		Kind:    types.KindBrowser,
		Title:   "Browser",
		Size:    types.Size{Width: 800, Height: 600},
		Content: window.URLContent("https://example.com"),
	})
	if len(s.Windows) != 2 {
		t.Fatalf("len(Windows) = %d, want 2", len(s.Windows))
	}
	second := s.Windows[1]
	if !second.Focused || second.Position != (types.Point{X: 130, Y: 130}) || second.StackOrder != 2 {
		t.Errorf("second window = %+v", second)
	}
	if second.Content.URL != "https://example.com" {
		t.Errorf("second URL = %q", second.Content.URL)
	}
	if s.Windows[0].Focused {
		t.Error("first window should lose focus")
	}

	s = c.Dispatch(FocusWindow{ID: first.ID})
	if !s.Windows[0].Focused || s.Windows[0].StackOrder != 3 {
		t.Errorf("first after focus = %+v", s.Windows[0])
	}
	if s.Windows[1].Focused {
		t.Error("second window should lose focus")
	}
	if s.FocusedID != first.ID {
		t.Errorf("FocusedID = %q, want %q", s.FocusedID, first.ID)
	}
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	c := newTestController()
	c.Dispatch(OpenWindow{Kind: types.KindTerminal, Title: "Terminal", Size: types.Size{Width: 600, Height: 400}})
	before := c.Snapshot()

	cmds := []Command{
		CloseWindow{ID: "missing"},
		FocusWindow{ID: "missing"},
		MinimizeWindow{ID: "missing"},
		MaximizeWindow{ID: "missing"},
		RestoreWindow{ID: "missing"},
		MoveWindow{ID: "missing", Position: types.Point{X: 1, Y: 1}},
		ResizeWindow{ID: "missing", Size: types.Size{Width: 900, Height: 900}},
		LaunchApp{App: "calculator"},
		OpenFile{Entry: files.Entry{ID: "pic", Name: "pic.png", Kind: types.FileImage}},
	}

	for _, cmd := range cmds {
		after := c.Dispatch(cmd)
		if !reflect.DeepEqual(before, after) {
			t.Errorf("%s changed the snapshot:\nbefore %+v\nafter  %+v", cmd.CommandName(), before, after)
		}
	}
}

func TestVersionCountsTransitions(t *testing.T) {
	c := newTestController()
	if v := c.Snapshot().Version; v != 0 {
		t.Fatalf("initial Version = %d, want 0", v)
	}

	c.Dispatch(ToggleDarkMode{})
	c.Dispatch(CloseWindow{ID: "missing"})
	c.Dispatch(ToggleDarkMode{})

	if v := c.Snapshot().Version; v != 2 {
		t.Errorf("Version = %d, want 2", v)
	}
}

func TestToggleDarkMode(t *testing.T) {
	c := newTestController(WithDarkMode(true))

	if s := c.Dispatch(ToggleDarkMode{}); s.DarkMode {
		t.Error("DarkMode should be off after one toggle")
	}
	if s := c.Dispatch(ToggleDarkMode{}); !s.DarkMode {
		t.Error("DarkMode should be on after two toggles")
	}
}

func TestOpenFile(t *testing.T) {
	c := newTestController()
	readme, ok := c.Snapshot().File("readme")
	if !ok {
		t.Fatal("seed tree has no readme")
	}

	s := c.Dispatch(OpenFile{Entry: readme})
	if len(s.Windows) != 1 {
		t.Fatalf("len(Windows) = %d, want 1", len(s.Windows))
	}
	w := s.Windows[0]
	if w.Kind != types.KindFileExplorer || w.Title != "README" || w.Content.Type != window.ContentText {
		t.Errorf("window = %+v", w)
	}
	if w.Content.Text != readme.Content {
		t.Error("window body should be the file content")
	}

	blog, _ := c.Snapshot().File("blog")
	s = c.Dispatch(OpenFile{Entry: blog})
	if got := s.Windows[1].Content; got.Type != window.ContentFolder || got.Folder == nil || got.Folder.ID != "blog" {
		t.Errorf("folder window content = %+v", got)
	}
}

func TestLaunchApp(t *testing.T) {
	c := newTestController()

	s := c.Dispatch(LaunchApp{App: "browser"})
	w, ok := s.Focused()
	if !ok {
		t.Fatal("no focused window after launch")
	}
	if w.Kind != types.KindBrowser || w.Size != (types.Size{Width: 800, Height: 600}) || w.Content.URL != "https://github.com" {
		t.Errorf("browser window = %+v", w)
	}
}

func TestSelectFile(t *testing.T) {
	c := newTestController()

	s := c.Dispatch(SelectFile{ID: "blog-2"})
	blog, _ := s.File("blog")
	if blog.Selected {
		t.Error("parent folder should not be selected")
	}
	if !blog.Children[1].Selected {
		t.Error("blog-2 should be selected")
	}

	s = c.Dispatch(SelectFile{ID: "readme"})
	readme, _ := s.File("readme")
	if !readme.Selected {
		t.Error("readme should be selected")
	}
	if blog, _ := s.File("blog"); blog.Children[1].Selected {
		t.Error("blog-2 should be deselected")
	}
}

func TestMaximizeRestoreRoundTrip(t *testing.T) {
	c := newTestController()
	s := c.Dispatch(LaunchApp{App: "terminal"})
	id := s.FocusedID

	c.Dispatch(MoveWindow{ID: id, Position: types.Point{X: 40, Y: 60}})
	c.Dispatch(MaximizeWindow{ID: id})
	s = c.Dispatch(RestoreWindow{ID: id})

	w, _ := s.Window(id)
	if w.Minimized || w.Maximized || !w.Focused {
		t.Errorf("after restore = %+v", w)
	}
	if w.Position != (types.Point{X: 40, Y: 60}) {
		t.Errorf("Position = %v, want (40, 60)", w.Position)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	c := newTestController()
	c.Dispatch(LaunchApp{App: "terminal"})

	s := c.Snapshot()
	s.Windows[0].Title = "hijacked"
	s.Files[0].Name = "hijacked"

	again := c.Snapshot()
	if again.Windows[0].Title != "Terminal" {
		t.Error("mutating a snapshot changed window state")
	}
	if again.Files[0].Name != "README" {
		t.Error("mutating a snapshot changed the file tree")
	}
}

func TestSubscribe(t *testing.T) {
	c := newTestController()

	var got []uint64
	cancel := c.Subscribe(func(s Snapshot) {
		got = append(got, s.Version)
	})

	c.Dispatch(ToggleDarkMode{})
	c.Dispatch(FocusWindow{ID: "missing"})
	c.Dispatch(LaunchApp{App: "files"})
	cancel()
	cancel()
	c.Dispatch(ToggleDarkMode{})

	want := []uint64{1, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("published versions = %v, want %v", got, want)
	}
}

func TestSubscribe_ListenerCanReadSnapshot(t *testing.T) {
	c := newTestController()

	var seen int
	c.Subscribe(func(s Snapshot) {
		seen = len(c.Snapshot().Windows)
	})
	c.Dispatch(LaunchApp{App: "terminal"})

	if seen != 1 {
		t.Errorf("listener saw %d windows, want 1", seen)
	}
}

func TestConcurrentDispatchKeepsInvariants(t *testing.T) {
	c := newTestController()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				s := c.Dispatch(LaunchApp{App: "terminal"})
				c.Dispatch(FocusWindow{ID: s.Windows[0].ID})
			}
		}()
	}
	wg.Wait()

	s := c.Snapshot()
	if len(s.Windows) != 200 {
		t.Fatalf("len(Windows) = %d, want 200", len(s.Windows))
	}
	focused := 0
	orders := make(map[int]bool)
	for _, w := range s.Windows {
		if w.Focused {
			focused++
		}
		if orders[w.StackOrder] {
			t.Errorf("duplicate stack order %d", w.StackOrder)
		}
		orders[w.StackOrder] = true
	}
	if focused != 1 {
		t.Errorf("focused windows = %d, want 1", focused)
	}
}

func TestSetPolicy(t *testing.T) {
	c := newTestController()

	policy := launch.DefaultPolicy()
	policy.Apps = append(policy.Apps, launch.App{
		ID: "notes", Name: "Notes", Kind: types.KindFileExplorer, Title: "Notes",
		Size: types.Size{Width: 400, Height: 300},
	})
	c.SetPolicy(policy, layout.Cascade{Origin: types.Point{X: 10, Y: 40}, Step: 20, Slots: 3})

	s := c.Dispatch(LaunchApp{App: "notes"})
	w := s.Windows[0]
	if w.Title != "Notes" || w.Position != (types.Point{X: 10, Y: 40}) {
		t.Errorf("window = %+v", w)
	}
	if _, ok := c.Policy().FindApp("notes"); !ok {
		t.Error("Policy() should report the new app")
	}
}

func TestProgrammerErrorsPanic(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
		want string
	}{
		{"nil controller", func() { var c *Controller; c.Snapshot() }, "not created with New"},
		{"zero controller", func() { var c Controller; c.Dispatch(ToggleDarkMode{}) }, "not created with New"},
		{"nil command", func() { newTestController().Dispatch(nil) }, "nil command"},
		{"unknown command", func() { newTestController().Dispatch(bogus{}) }, "unknown command type"},
		{"nil listener", func() { newTestController().Subscribe(nil) }, "nil listener"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("expected panic")
				}
				if msg, _ := r.(string); !strings.Contains(msg, tt.want) {
					t.Errorf("panic = %v, want it to mention %q", r, tt.want)
				}
			}()
			tt.fn()
		})
	}
}

type bogus struct{}

func (bogus) CommandName() string { return "bogus" }
