// Package desktop owns the desktop state and is the only place it changes.
//
// Every user intent arrives as a Command. Dispatch applies one command at a
// time, replaces the state with the result and hands a Snapshot to each
// subscriber. Readers only ever see Snapshots.
package desktop

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/yourusername/desk-cli/internal/files"
	"github.com/yourusername/desk-cli/internal/launch"
	"github.com/yourusername/desk-cli/internal/layout"
	"github.com/yourusername/desk-cli/internal/logging"
	"github.com/yourusername/desk-cli/internal/window"
)

// Listener receives every published snapshot. Listeners run synchronously
// inside Dispatch and must not call Dispatch themselves.
type Listener func(Snapshot)

type config struct {
	tree     files.Tree
	policy   launch.Policy
	cascade  layout.Cascade
	newID    window.IDFunc
	logger   zerolog.Logger
	darkMode bool
	hasLog   bool
}

// Option configures a Controller
type Option func(*config)

// WithTree sets the initial file tree
func WithTree(t files.Tree) Option {
	return func(c *config) { c.tree = t }
}

// WithPolicy sets the launch policy
func WithPolicy(p launch.Policy) Option {
	return func(c *config) { c.policy = p }
}

// WithCascade sets the placement rule for new windows
func WithCascade(cascade layout.Cascade) Option {
	return func(c *config) { c.cascade = cascade }
}

// WithIDFunc sets the window id allocator
func WithIDFunc(fn window.IDFunc) Option {
	return func(c *config) { c.newID = fn }
}

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.logger = l
		c.hasLog = true
	}
}

// WithDarkMode sets the initial dark mode flag
func WithDarkMode(on bool) Option {
	return func(c *config) { c.darkMode = on }
}

// Controller is the single writer of desktop state
type Controller struct {
	// pub serialises dispatches end to end so listeners see snapshots in order
	pub sync.Mutex
	mu  sync.RWMutex

	ready    bool
	registry window.Registry
	tree     files.Tree
	darkMode bool
	version  uint64
	policy   launch.Policy
	logger   zerolog.Logger

	listeners map[int]Listener
	order     []int
	nextSub   int
}

// New creates a controller with an empty desktop and the default file tree
func New(opts ...Option) *Controller {
	cfg := config{
		policy:  launch.DefaultPolicy(),
		cascade: layout.DefaultCascade(),
		newID:   window.UUIDs(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.tree.Len() == 0 {
		cfg.tree = files.DefaultTree()
	}
	if !cfg.hasLog {
		cfg.logger = logging.Logger
	}

	return &Controller{
		ready:     true,
		registry:  window.NewRegistry(window.WithIDFunc(cfg.newID), window.WithCascade(cfg.cascade)),
		tree:      cfg.tree,
		darkMode:  cfg.darkMode,
		policy:    cfg.policy,
		logger:    cfg.logger.With().Str("component", "desktop").Logger(),
		listeners: make(map[int]Listener),
	}
}

func (c *Controller) mustBeReady(op string) {
	if c == nil || !c.ready {
		panic(fmt.Sprintf("desktop: %s called on a controller not created with New", op))
	}
}

// Snapshot returns a deep copy of the current state
func (c *Controller) Snapshot() Snapshot {
	c.mustBeReady("Snapshot")
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Windows:   c.registry.Windows(),
		FocusedID: c.registry.FocusedID(),
		Files:     c.tree.Entries(),
		DarkMode:  c.darkMode,
		Version:   c.version,
	}
}

// Subscribe registers a listener for published snapshots. The returned
// function removes it and is safe to call more than once.
func (c *Controller) Subscribe(fn Listener) (cancel func()) {
	c.mustBeReady("Subscribe")
	if fn == nil {
		panic("desktop: Subscribe called with a nil listener")
	}

	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.listeners[id] = fn
	c.order = append(c.order, id)
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.listeners, id)
			for i, v := range c.order {
				if v == id {
					c.order = append(c.order[:i:i], c.order[i+1:]...)
					break
				}
			}
		})
	}
}

// SetPolicy replaces the launch policy and the placement of future windows.
// Open windows are left where they are.
func (c *Controller) SetPolicy(p launch.Policy, cascade layout.Cascade) {
	c.mustBeReady("SetPolicy")
	c.mu.Lock()
	defer c.mu.Unlock()
	c.policy = p
	c.registry = c.registry.WithPlacement(cascade)
}

// Policy returns the current launch policy
func (c *Controller) Policy() launch.Policy {
	c.mustBeReady("Policy")
	c.mu.RLock()
	defer c.mu.RUnlock()
	p := c.policy
	p.Apps = append([]launch.App(nil), c.policy.Apps...)
	return p
}

// Dispatch applies one command and returns the resulting snapshot.
// Commands naming unknown windows or files leave the state untouched and
// publish nothing.
func (c *Controller) Dispatch(cmd Command) Snapshot {
	c.mustBeReady("Dispatch")
	if cmd == nil {
		panic("desktop: Dispatch called with a nil command")
	}

	c.pub.Lock()
	defer c.pub.Unlock()

	c.mu.Lock()
	changed := c.apply(cmd)
	if changed {
		c.version++
	}
	snap := c.snapshotLocked()
	listeners := c.listenersLocked()
	c.mu.Unlock()

	if !changed {
		c.logger.Debug().Str("command", cmd.CommandName()).Msg("no-op")
		return snap
	}

	c.logger.Debug().
		Str("command", cmd.CommandName()).
		Uint64("version", snap.Version).
		Int("windows", len(snap.Windows)).
		Msg("applied")

	for _, fn := range listeners {
		fn(snap.Clone())
	}
	return snap
}

func (c *Controller) listenersLocked() []Listener {
	out := make([]Listener, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.listeners[id])
	}
	return out
}

// apply performs the transition for cmd and reports whether state changed
func (c *Controller) apply(cmd Command) bool {
	r := c.registry

	switch cmd := cmd.(type) {
	case OpenWindow:
		c.registry, _ = r.Open(cmd.Kind, cmd.Title, cmd.Size, cmd.Content)
		return true

	case CloseWindow:
		return c.known(cmd.ID, func() { c.registry = r.Close(cmd.ID) })
	case MinimizeWindow:
		return c.known(cmd.ID, func() { c.registry = r.Minimize(cmd.ID) })
	case MaximizeWindow:
		return c.known(cmd.ID, func() { c.registry = r.Maximize(cmd.ID) })
	case RestoreWindow:
		return c.known(cmd.ID, func() { c.registry = r.Restore(cmd.ID) })
	case FocusWindow:
		return c.known(cmd.ID, func() { c.registry = r.Focus(cmd.ID) })
	case MoveWindow:
		return c.known(cmd.ID, func() { c.registry = r.Move(cmd.ID, cmd.Position) })
	case ResizeWindow:
		return c.known(cmd.ID, func() { c.registry = r.Resize(cmd.ID, cmd.Size) })

	case OpenFile:
		req, ok := c.policy.ForFile(cmd.Entry)
		if !ok {
			return false
		}
		c.registry, _ = r.Open(req.Kind, req.Title, req.Size, req.Content)
		return true

	case LaunchApp:
		req, ok := c.policy.ForApp(cmd.App)
		if !ok {
			return false
		}
		c.registry, _ = r.Open(req.Kind, req.Title, req.Size, req.Content)
		return true

	case SelectFile:
		c.tree = c.tree.Select(cmd.ID)
		return true

	case ToggleDarkMode:
		c.darkMode = !c.darkMode
		return true

	default:
		panic(fmt.Sprintf("desktop: unknown command type %T", cmd))
	}
}

func (c *Controller) known(id string, fn func()) bool {
	if _, ok := c.registry.Get(id); !ok {
		return false
	}
	fn()
	return true
}
