package desktop

import (
	"github.com/yourusername/desk-cli/internal/files"
	"github.com/yourusername/desk-cli/internal/types"
	"github.com/yourusername/desk-cli/internal/window"
)

// Command is a user intent applied by Dispatch
type Command interface {
	// CommandName returns the wire name of the command, used in logs
	CommandName() string
}

// OpenWindow opens a new window at the next cascade slot
type OpenWindow struct {
	Kind    types.WindowKind
	Title   string
	Size    types.Size
	Content window.Content
}

// CloseWindow removes a window
type CloseWindow struct{ ID string }

// MinimizeWindow hides a window
type MinimizeWindow struct{ ID string }

// MaximizeWindow flags a window maximized
type MaximizeWindow struct{ ID string }

// RestoreWindow clears the minimized and maximized flags
type RestoreWindow struct{ ID string }

// FocusWindow raises and focuses a window
type FocusWindow struct{ ID string }

// MoveWindow sets a window's position
type MoveWindow struct {
	ID       string
	Position types.Point
}

// ResizeWindow sets a window's size
type ResizeWindow struct {
	ID   string
	Size types.Size
}

// OpenFile opens a window for a file tree entry according to the launch policy
type OpenFile struct{ Entry files.Entry }

// SelectFile changes the file selection
type SelectFile struct{ ID string }

// ToggleDarkMode flips the dark mode flag
type ToggleDarkMode struct{}

// LaunchApp opens the window for a dock entry
type LaunchApp struct{ App string }

func (OpenWindow) CommandName() string     { return "openWindow" }
func (CloseWindow) CommandName() string    { return "closeWindow" }
func (MinimizeWindow) CommandName() string { return "minimizeWindow" }
func (MaximizeWindow) CommandName() string { return "maximizeWindow" }
func (RestoreWindow) CommandName() string  { return "restoreWindow" }
func (FocusWindow) CommandName() string    { return "focusWindow" }
func (MoveWindow) CommandName() string     { return "moveWindow" }
func (ResizeWindow) CommandName() string   { return "resizeWindow" }
func (OpenFile) CommandName() string       { return "openFile" }
func (SelectFile) CommandName() string     { return "selectFile" }
func (ToggleDarkMode) CommandName() string { return "toggleDarkMode" }
func (LaunchApp) CommandName() string      { return "launchApp" }
