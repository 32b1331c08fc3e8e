package window

import (
	"github.com/yourusername/desk-cli/internal/files"
	"github.com/yourusername/desk-cli/internal/types"
)

// ContentType tags which payload a Content carries
type ContentType string

const (
	ContentNone   ContentType = "none"
	ContentText   ContentType = "text"
	ContentURL    ContentType = "url"
	ContentFolder ContentType = "folder"
)

// Content is the payload rendered inside a window body.
// Exactly one of Text, URL or Folder is meaningful, selected by Type.
type Content struct {
	Type   ContentType  `json:"type"`
	Text   string       `json:"text,omitempty"`
	URL    string       `json:"url,omitempty"`
	Folder *files.Entry `json:"folder,omitempty"`
}

// NoContent returns an empty payload
func NoContent() Content {
	return Content{Type: ContentNone}
}

// TextContent returns a text payload (terminal preamble or document body)
func TextContent(text string) Content {
	return Content{Type: ContentText, Text: text}
}

// URLContent returns a browser location payload
func URLContent(url string) Content {
	return Content{Type: ContentURL, URL: url}
}

// FolderContent returns a payload referencing a folder subtree
func FolderContent(entry files.Entry) Content {
	e := entry.Clone()
	return Content{Type: ContentFolder, Folder: &e}
}

// IsEmpty returns true when no payload is set
func (c Content) IsEmpty() bool {
	return c.Type == "" || c.Type == ContentNone
}

// FitsKind reports whether this payload can be hosted by a window of the given kind.
// An empty payload fits every kind.
func (c Content) FitsKind(kind types.WindowKind) bool {
	if c.IsEmpty() {
		return true
	}
	switch kind {
	case types.KindTerminal:
		return c.Type == ContentText
	case types.KindBrowser:
		return c.Type == ContentURL
	case types.KindFileExplorer:
		return c.Type == ContentText || (c.Type == ContentFolder && c.Folder != nil)
	}
	return false
}

// Clone returns a deep copy
func (c Content) Clone() Content {
	if c.IsEmpty() {
		return NoContent()
	}
	out := c
	if c.Folder != nil {
		e := c.Folder.Clone()
		out.Folder = &e
	}
	return out
}
