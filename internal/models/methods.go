package models

import (
	"github.com/yourusername/desk-cli/internal/types"
)

// RPC method names
const (
	MethodPing            = "ping"
	MethodSnapshot        = "snapshot"
	MethodWindowOpen      = "window.open"
	MethodWindowClose     = "window.close"
	MethodWindowMinimize  = "window.minimize"
	MethodWindowMaximize  = "window.maximize"
	MethodWindowRestore   = "window.restore"
	MethodWindowFocus     = "window.focus"
	MethodWindowMove      = "window.move"
	MethodWindowResize    = "window.resize"
	MethodWindowDrag      = "window.drag"
	MethodWindowToggleMax = "window.toggleMaximize"
	MethodFileOpen        = "file.open"
	MethodFileSelect      = "file.select"
	MethodToggleDarkMode  = "desktop.toggleDarkMode"
	MethodAppLaunch       = "app.launch"
	MethodTerminalExec    = "terminal.exec"
	MethodTerminalLines   = "terminal.lines"
	MethodBrowserNavigate = "browser.navigate"
	MethodBrowserBack     = "browser.back"
	MethodBrowserForward  = "browser.forward"
	MethodBrowserHome     = "browser.home"
	MethodBrowserLocation = "browser.location"
	EventSnapshot         = "snapshot"
)

// Methods lists every served method in display order
var Methods = []string{
	MethodPing, MethodSnapshot,
	MethodWindowOpen, MethodWindowClose, MethodWindowMinimize, MethodWindowMaximize,
	MethodWindowRestore, MethodWindowFocus, MethodWindowMove, MethodWindowResize,
	MethodWindowDrag, MethodWindowToggleMax,
	MethodFileOpen, MethodFileSelect, MethodToggleDarkMode, MethodAppLaunch,
	MethodTerminalExec, MethodTerminalLines,
	MethodBrowserNavigate, MethodBrowserBack, MethodBrowserForward, MethodBrowserHome, MethodBrowserLocation,
}

// PingResult answers ping
type PingResult struct {
	Pong    bool   `json:"pong"`
	Version string `json:"version"`
}

// OpenWindowParams are the params of window.open
type OpenWindowParams struct {
	Kind   types.WindowKind `json:"kind"`
	Title  string           `json:"title"`
	Size   types.Size       `json:"size"`
	Text   string           `json:"text,omitempty"`
	URL    string           `json:"url,omitempty"`
	FileID string           `json:"fileId,omitempty"`
}

// WindowParams name a single window
type WindowParams struct {
	ID string `json:"id"`
}

// MoveParams are the params of window.move
type MoveParams struct {
	ID       string      `json:"id"`
	Position types.Point `json:"position"`
}

// ResizeParams are the params of window.resize
type ResizeParams struct {
	ID   string     `json:"id"`
	Size types.Size `json:"size"`
}

// DragParams are the params of window.drag: the pointer is pressed at From,
// passes through Via and is released at To. Resize grabs the bottom-right
// corner instead of the title bar. An empty ID grabs the window under From.
type DragParams struct {
	ID     string        `json:"id,omitempty"`
	From   types.Point   `json:"from"`
	Via    []types.Point `json:"via,omitempty"`
	To     types.Point   `json:"to"`
	Resize bool          `json:"resize,omitempty"`
}

// FileParams name a file tree entry by id or slash path
type FileParams struct {
	ID   string `json:"id,omitempty"`
	Path string `json:"path,omitempty"`
}

// AppParams name a dock entry
type AppParams struct {
	App string `json:"app"`
}

// ExecParams are the params of terminal.exec
type ExecParams struct {
	ID    string `json:"id"`
	Input string `json:"input"`
}

// ExecResult answers terminal.exec and terminal.lines
type ExecResult struct {
	Output []string `json:"output"`
	Lines  []string `json:"lines"`
}

// NavigateParams are the params of browser.navigate
type NavigateParams struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// LocationResult answers the browser methods
type LocationResult struct {
	URL        string `json:"url"`
	Moved      bool   `json:"moved"`
	CanBack    bool   `json:"canBack"`
	CanForward bool   `json:"canForward"`
}
