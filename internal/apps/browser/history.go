// Package browser keeps the navigation history of a browser window.
// Pages are never fetched; a location is only a string.
package browser

import (
	"regexp"
	"strings"
	"sync"
)

// Home is the page opened by the home button
const Home = "https://github.com"

var schemeRe = regexp.MustCompile(`(?i)^https?://`)

// Normalize prefixes https:// unless the location already names http or https
func Normalize(location string) string {
	location = strings.TrimSpace(location)
	if schemeRe.MatchString(location) {
		return location
	}
	return "https://" + location
}

// History is a back/forward stack of visited locations. It is safe for
// concurrent use.
type History struct {
	mu      sync.Mutex
	entries []string
	index   int
}

// NewHistory starts a history at initial, or at Home when initial is empty.
// The initial location is kept as given.
func NewHistory(initial string) *History {
	if strings.TrimSpace(initial) == "" {
		initial = Home
	}
	return &History{entries: []string{initial}}
}

// Current returns the location being shown
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Navigate visits location and drops any forward history
func (h *History) Navigate(location string) string {
	location = Normalize(location)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.index+1:h.index+1], location)
	h.index = len(h.entries) - 1
	return location
}

// Home navigates to the home page
func (h *History) Home() string {
	return h.Navigate(Home)
}

// Back steps back one entry. It reports false at the start of history.
func (h *History) Back() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index == 0 {
		return h.entries[h.index], false
	}
	h.index--
	return h.entries[h.index], true
}

// Forward steps forward one entry. It reports false at the end of history.
func (h *History) Forward() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index == len(h.entries)-1 {
		return h.entries[h.index], false
	}
	h.index++
	return h.entries[h.index], true
}

// CanBack reports whether Back would move
func (h *History) CanBack() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index > 0
}

// CanForward reports whether Forward would move
func (h *History) CanForward() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index < len(h.entries)-1
}

// Entries returns a copy of the history and the current index
func (h *History) Entries() ([]string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...), h.index
}
