// Package terminal implements the built-in terminal window: a tiny command
// interpreter over the desktop file tree. No processes are ever started.
package terminal

import (
	"fmt"
	"strings"
	"sync"

	"github.com/yourusername/desk-cli/internal/files"
)

// Banner is printed when a session starts
var Banner = []string{
	"Welcome to Portfolio Terminal",
	`Type "help" for available commands`,
	"",
}

// Prompt prefixes echoed input lines
const Prompt = "$ "

type handler func(s *Session, args []string) string

var commands = map[string]handler{
	"help":     func(*Session, []string) string { return helpText },
	"clear":    (*Session).clear,
	"about":    func(*Session, []string) string { return aboutText },
	"skills":   func(*Session, []string) string { return skillsText },
	"projects": func(*Session, []string) string { return projectsText },
	"contact":  func(*Session, []string) string { return contactText },
	"ls":       (*Session).ls,
	"cat":      (*Session).cat,
}

// Commands returns the names of the built-in commands
func Commands() []string {
	return []string{"help", "clear", "about", "skills", "projects", "contact", "ls", "cat"}
}

// Session is the scrollback of one terminal window. It is safe for
// concurrent use.
type Session struct {
	mu      sync.Mutex
	tree    files.Tree
	lines   []string
	cleared bool
}

// NewSession starts a session over tree. A non-empty preamble is printed
// after the banner.
func NewSession(tree files.Tree, preamble string) *Session {
	s := &Session{tree: tree}
	s.lines = append(s.lines, Banner...)
	if preamble != "" {
		s.lines = append(s.lines, splitLines(preamble)...)
	}
	return s
}

// Lines returns a copy of the scrollback
func (s *Session) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

// Exec runs one input line and returns the lines it added to the scrollback.
// After clear the scrollback is empty and nothing is returned.
func (s *Session) Exec(input string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := len(s.lines)
	s.lines = append(s.lines, Prompt+input)

	fields := strings.Fields(input)
	if len(fields) == 0 {
		return append([]string(nil), s.lines[start:]...)
	}

	name, args := fields[0], fields[1:]
	fn, ok := commands[name]
	if !ok {
		s.lines = append(s.lines, fmt.Sprintf("Command not found: %s", name))
		return append([]string(nil), s.lines[start:]...)
	}

	s.cleared = false
	out := fn(s, args)
	if s.cleared {
		return nil
	}
	if out != "" {
		s.lines = append(s.lines, splitLines(out)...)
	}
	return append([]string(nil), s.lines[start:]...)
}

func (s *Session) clear([]string) string {
	s.lines = nil
	s.cleared = true
	return ""
}

func (s *Session) ls([]string) string {
	var names []string
	for _, e := range s.tree.Entries() {
		if e.IsFolder() {
			names = append(names, e.Name+"/")
		} else {
			names = append(names, e.Name)
		}
	}
	return strings.Join(names, "\n")
}

// cat accepts a slash-separated path (names or ids per segment) or a file id.
// Names may contain spaces, so every argument is part of the path.
func (s *Session) cat(args []string) string {
	if len(args) == 0 {
		return "Error: Please specify a file to read"
	}
	path := strings.Join(args, " ")

	entry, ok := s.tree.Resolve(path)
	if !ok {
		entry, ok = s.tree.Find(path)
	}
	if !ok {
		return fmt.Sprintf("Error: File %q not found", path)
	}
	if entry.IsFolder() {
		return fmt.Sprintf("Error: %q is a folder", path)
	}
	return strings.TrimRight(entry.Content, "\n")
}

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}
