// Package launch turns "open this file" and "open this app" requests into
// concrete window-creation requests.
package launch

import (
	"github.com/yourusername/desk-cli/internal/files"
	"github.com/yourusername/desk-cli/internal/types"
	"github.com/yourusername/desk-cli/internal/window"
)

// Request describes a window to open
type Request struct {
	Kind    types.WindowKind
	Title   string
	Size    types.Size
	Content window.Content
}

// App is a dock entry
type App struct {
	ID    string           `json:"id" yaml:"id"`
	Name  string           `json:"name" yaml:"name"`
	Kind  types.WindowKind `json:"kind" yaml:"kind"`
	Title string           `json:"title" yaml:"title"`
	Size  types.Size       `json:"size" yaml:"size"`
	URL   string           `json:"url,omitempty" yaml:"url,omitempty"`
}

// Request converts a dock entry into a window request
func (a App) Request() Request {
	content := window.NoContent()
	if a.URL != "" {
		content = window.URLContent(a.URL)
	}
	return Request{Kind: a.Kind, Title: a.Title, Size: a.Size, Content: content}
}

// DefaultDocumentSize is the size of windows opened from files
var DefaultDocumentSize = types.Size{Width: 600, Height: 400}

// DefaultApps returns the standard dock: Files, Terminal and Browser
func DefaultApps() []App {
	return []App{
		{ID: "files", Name: "Files", Kind: types.KindFileExplorer, Title: "File Explorer", Size: types.Size{Width: 600, Height: 400}},
		{ID: "terminal", Name: "Terminal", Kind: types.KindTerminal, Title: "Terminal", Size: types.Size{Width: 600, Height: 400}},
		{ID: "browser", Name: "Browser", Kind: types.KindBrowser, Title: "Browser", Size: types.Size{Width: 800, Height: 600}, URL: "https://github.com"},
	}
}

// Policy holds the launch rules
type Policy struct {
	DefaultSize types.Size
	Apps        []App
}

// DefaultPolicy returns the standard launch rules
func DefaultPolicy() Policy {
	return Policy{DefaultSize: DefaultDocumentSize, Apps: DefaultApps()}
}

// ForFile returns the window request for opening a file tree entry.
// Text files open their body, folders open a listing of themselves, and
// every other kind opens nothing.
func (p Policy) ForFile(entry files.Entry) (Request, bool) {
	size := p.DefaultSize
	if size == (types.Size{}) {
		size = DefaultDocumentSize
	}

	switch entry.Kind {
	case types.FileText:
		return Request{
			Kind:    types.KindFileExplorer,
			Title:   entry.Name,
			Size:    size,
			Content: window.TextContent(entry.Content),
		}, true
	case types.FileFolder:
		return Request{
			Kind:    types.KindFileExplorer,
			Title:   entry.Name,
			Size:    size,
			Content: window.FolderContent(entry),
		}, true
	default:
		return Request{}, false
	}
}

// FindApp looks up a dock entry by id
func (p Policy) FindApp(id string) (App, bool) {
	for _, a := range p.Apps {
		if a.ID == id {
			return a, true
		}
	}
	return App{}, false
}

// ForApp returns the window request for launching a dock entry
func (p Policy) ForApp(id string) (Request, bool) {
	app, ok := p.FindApp(id)
	if !ok {
		return Request{}, false
	}
	return app.Request(), true
}
