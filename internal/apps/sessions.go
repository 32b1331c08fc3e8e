// Package apps keeps the per-window state of the built-in applications.
// Window records only carry their initial content; terminal scrollback and
// browser history live here, keyed by window id.
package apps

import (
	"sync"

	"github.com/yourusername/desk-cli/internal/apps/browser"
	"github.com/yourusername/desk-cli/internal/apps/terminal"
	"github.com/yourusername/desk-cli/internal/desktop"
	"github.com/yourusername/desk-cli/internal/files"
	"github.com/yourusername/desk-cli/internal/types"
	"github.com/yourusername/desk-cli/internal/window"
)

// Sessions maps window ids to application state. It is safe for
// concurrent use.
type Sessions struct {
	mu        sync.Mutex
	terminals map[string]*terminal.Session
	browsers  map[string]*browser.History
}

// NewSessions creates an empty registry
func NewSessions() *Sessions {
	return &Sessions{
		terminals: make(map[string]*terminal.Session),
		browsers:  make(map[string]*browser.History),
	}
}

// Terminal returns the session for a terminal window, creating it on first
// use. It reports false when w is not a terminal.
func (s *Sessions) Terminal(w window.Record, tree files.Tree) (*terminal.Session, bool) {
	if w.Kind != types.KindTerminal {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.terminals[w.ID]
	if !ok {
		sess = terminal.NewSession(tree, w.Content.Text)
		s.terminals[w.ID] = sess
	}
	return sess, true
}

// Browser returns the history for a browser window, creating it on first
// use. It reports false when w is not a browser.
func (s *Sessions) Browser(w window.Record) (*browser.History, bool) {
	if w.Kind != types.KindBrowser {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.browsers[w.ID]
	if !ok {
		h = browser.NewHistory(w.Content.URL)
		s.browsers[w.ID] = h
	}
	return h, true
}

// Len returns the number of live sessions
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.terminals) + len(s.browsers)
}

// Sync drops the state of windows that are no longer open. It is meant to
// be registered with desktop.Controller.Subscribe.
func (s *Sessions) Sync(snap desktop.Snapshot) {
	live := make(map[string]bool, len(snap.Windows))
	for _, w := range snap.Windows {
		live[w.ID] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.terminals {
		if !live[id] {
			delete(s.terminals, id)
		}
	}
	for id := range s.browsers {
		if !live[id] {
			delete(s.browsers, id)
		}
	}
}
