// Package server exposes a desktop.Controller over the desk RPC protocol.
//
// Service maps method names to commands and is shared by every transport.
// Server serves it on a unix socket as newline-delimited JSON envelopes.
package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yourusername/desk-cli/internal/apps"
	"github.com/yourusername/desk-cli/internal/apps/browser"
	"github.com/yourusername/desk-cli/internal/desktop"
	"github.com/yourusername/desk-cli/internal/files"
	"github.com/yourusername/desk-cli/internal/gesture"
	"github.com/yourusername/desk-cli/internal/models"
	"github.com/yourusername/desk-cli/internal/types"
	"github.com/yourusername/desk-cli/internal/window"
)

// Service answers RPC methods against one controller
type Service struct {
	ctrl     *desktop.Controller
	sessions *apps.Sessions
	version  string
}

// NewService wraps ctrl. App sessions are dropped as their windows close.
func NewService(ctrl *desktop.Controller, version string) *Service {
	s := &Service{
		ctrl:     ctrl,
		sessions: apps.NewSessions(),
		version:  version,
	}
	ctrl.Subscribe(s.sessions.Sync)
	return s
}

// Controller returns the wrapped controller
func (s *Service) Controller() *desktop.Controller {
	return s.ctrl
}

// Handle runs one method. Errors wrap the models sentinels.
func (s *Service) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case models.MethodPing:
		return models.PingResult{Pong: true, Version: s.version}, nil
	case models.MethodSnapshot:
		return s.ctrl.Snapshot(), nil

	case models.MethodWindowOpen:
		return s.openWindow(params)
	case models.MethodWindowClose:
		return s.windowAction(params, func(id string) desktop.Command { return desktop.CloseWindow{ID: id} })
	case models.MethodWindowMinimize:
		return s.windowAction(params, func(id string) desktop.Command { return desktop.MinimizeWindow{ID: id} })
	case models.MethodWindowMaximize:
		return s.windowAction(params, func(id string) desktop.Command { return desktop.MaximizeWindow{ID: id} })
	case models.MethodWindowRestore:
		return s.windowAction(params, func(id string) desktop.Command { return desktop.RestoreWindow{ID: id} })
	case models.MethodWindowFocus:
		return s.windowAction(params, func(id string) desktop.Command { return desktop.FocusWindow{ID: id} })
	case models.MethodWindowMove:
		var p models.MoveParams
		if err := decode(params, &p); err != nil {
			return nil, err
		}
		return s.windowAction(params, func(id string) desktop.Command { return desktop.MoveWindow{ID: id, Position: p.Position} })
	case models.MethodWindowResize:
		var p models.ResizeParams
		if err := decode(params, &p); err != nil {
			return nil, err
		}
		return s.windowAction(params, func(id string) desktop.Command { return desktop.ResizeWindow{ID: id, Size: p.Size} })
	case models.MethodWindowDrag:
		return s.drag(params)
	case models.MethodWindowToggleMax:
		var p models.WindowParams
		if err := decode(params, &p); err != nil {
			return nil, err
		}
		w, err := s.window(p.ID)
		if err != nil {
			return nil, err
		}
		return s.ctrl.Dispatch(gesture.ToggleMaximize(w)), nil

	case models.MethodFileOpen:
		return s.openFile(params)
	case models.MethodFileSelect:
		entry, err := s.resolveFile(params)
		if err != nil {
			return nil, err
		}
		return s.ctrl.Dispatch(desktop.SelectFile{ID: entry.ID}), nil
	case models.MethodToggleDarkMode:
		return s.ctrl.Dispatch(desktop.ToggleDarkMode{}), nil
	case models.MethodAppLaunch:
		return s.launchApp(params)

	case models.MethodTerminalExec, models.MethodTerminalLines:
		return s.terminal(method, params)
	case models.MethodBrowserNavigate, models.MethodBrowserBack, models.MethodBrowserForward,
		models.MethodBrowserHome, models.MethodBrowserLocation:
		return s.browser(method, params)

	default:
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownMethod, method)
	}
}

func decode(params json.RawMessage, v any) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidParams, err)
	}
	return nil
}

func (s *Service) window(id string) (window.Record, error) {
	if id == "" {
		return window.Record{}, fmt.Errorf("%w: id is required", models.ErrInvalidParams)
	}
	w, ok := s.ctrl.Snapshot().Window(id)
	if !ok {
		return window.Record{}, fmt.Errorf("%w: window %s", models.ErrNotFound, id)
	}
	return w, nil
}

// windowAction checks the window exists so callers get an error rather than
// the silent no-op the controller applies
func (s *Service) windowAction(params json.RawMessage, cmd func(id string) desktop.Command) (any, error) {
	var p models.WindowParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if _, err := s.window(p.ID); err != nil {
		return nil, err
	}
	return s.ctrl.Dispatch(cmd(p.ID)), nil
}

// drag replays a pointer gesture on one window. Each pointer position is
// dispatched as its own command, as a renderer would while the button is held.
// Without an id the gesture grabs the frontmost window under From.
func (s *Service) drag(params json.RawMessage) (any, error) {
	var p models.DragParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}

	var w window.Record
	if p.ID == "" {
		hit, ok := window.At(s.ctrl.Snapshot().Windows, p.From)
		if !ok {
			return nil, fmt.Errorf("%w: no window at %d,%d", models.ErrNotFound, p.From.X, p.From.Y)
		}
		w = hit
	} else {
		var err error
		if w, err = s.window(p.ID); err != nil {
			return nil, err
		}
	}
	if w.Minimized {
		return nil, fmt.Errorf("%w: window %s is minimized", models.ErrInvalidParams, w.ID)
	}

	var tr gesture.Tracker
	begin := tr.BeginDrag
	if p.Resize {
		begin = tr.BeginResize
	}
	defer tr.End()

	snap := s.ctrl.Snapshot()
	if cmd, ok := begin(w, p.From); ok {
		snap = s.ctrl.Dispatch(cmd)
	}
	for _, pt := range append(p.Via, p.To) {
		if cmd, ok := tr.Move(pt); ok {
			snap = s.ctrl.Dispatch(cmd)
		}
	}
	return snap, nil
}

func (s *Service) openWindow(params json.RawMessage) (any, error) {
	var p models.OpenWindowParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}

	kind, ok := types.ParseWindowKind(string(p.Kind))
	if !ok {
		return nil, fmt.Errorf("%w: unknown window kind %q", models.ErrInvalidParams, p.Kind)
	}

	cmd := desktop.OpenWindow{Kind: kind, Title: p.Title, Size: p.Size, Content: window.NoContent()}

	// Unset fields fall back to the first dock entry of the same kind
	policy := s.ctrl.Policy()
	for _, app := range policy.Apps {
		if app.Kind != kind {
			continue
		}
		if cmd.Title == "" {
			cmd.Title = app.Title
		}
		if cmd.Size == (types.Size{}) {
			cmd.Size = app.Size
		}
		break
	}
	if cmd.Title == "" {
		cmd.Title = string(kind)
	}
	if cmd.Size == (types.Size{}) {
		cmd.Size = policy.DefaultSize
	}

	switch {
	case p.Text != "":
		cmd.Content = window.TextContent(p.Text)
	case p.URL != "":
		cmd.Content = window.URLContent(browser.Normalize(p.URL))
	case p.FileID != "":
		entry, ok := files.NewTree(s.ctrl.Snapshot().Files).Find(p.FileID)
		if !ok {
			return nil, fmt.Errorf("%w: file %s", models.ErrNotFound, p.FileID)
		}
		if entry.IsFolder() {
			cmd.Content = window.FolderContent(entry)
		} else {
			cmd.Content = window.TextContent(entry.Content)
		}
	}
	if !cmd.Content.FitsKind(kind) {
		return nil, fmt.Errorf("%w: %s content cannot be shown in a %s window", models.ErrInvalidParams, cmd.Content.Type, kind)
	}

	return s.ctrl.Dispatch(cmd), nil
}

func (s *Service) resolveFile(params json.RawMessage) (files.Entry, error) {
	var p models.FileParams
	if err := decode(params, &p); err != nil {
		return files.Entry{}, err
	}

	tree := files.NewTree(s.ctrl.Snapshot().Files)
	switch {
	case p.ID != "":
		if e, ok := tree.Find(p.ID); ok {
			return e, nil
		}
		return files.Entry{}, fmt.Errorf("%w: file %s", models.ErrNotFound, p.ID)
	case p.Path != "":
		if e, ok := tree.Resolve(p.Path); ok {
			return e, nil
		}
		return files.Entry{}, fmt.Errorf("%w: file %s", models.ErrNotFound, p.Path)
	default:
		return files.Entry{}, fmt.Errorf("%w: id or path is required", models.ErrInvalidParams)
	}
}

func (s *Service) openFile(params json.RawMessage) (any, error) {
	entry, err := s.resolveFile(params)
	if err != nil {
		return nil, err
	}
	if _, ok := s.ctrl.Policy().ForFile(entry); !ok {
		return nil, fmt.Errorf("%w: %s files cannot be opened", models.ErrInvalidParams, entry.Kind)
	}
	return s.ctrl.Dispatch(desktop.OpenFile{Entry: entry}), nil
}

func (s *Service) launchApp(params json.RawMessage) (any, error) {
	var p models.AppParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	if _, ok := s.ctrl.Policy().FindApp(p.App); !ok {
		return nil, fmt.Errorf("%w: app %q", models.ErrNotFound, p.App)
	}
	return s.ctrl.Dispatch(desktop.LaunchApp{App: p.App}), nil
}

func (s *Service) terminal(method string, params json.RawMessage) (any, error) {
	var p models.ExecParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	w, err := s.window(p.ID)
	if err != nil {
		return nil, err
	}
	sess, ok := s.sessions.Terminal(w, files.NewTree(s.ctrl.Snapshot().Files))
	if !ok {
		return nil, fmt.Errorf("%w: window %s is a %s window", models.ErrInvalidParams, w.ID, w.Kind)
	}

	var out []string
	if method == models.MethodTerminalExec {
		out = sess.Exec(p.Input)
	}
	return models.ExecResult{Output: out, Lines: sess.Lines()}, nil
}

func (s *Service) browser(method string, params json.RawMessage) (any, error) {
	var p models.NavigateParams
	if err := decode(params, &p); err != nil {
		return nil, err
	}
	w, err := s.window(p.ID)
	if err != nil {
		return nil, err
	}
	h, ok := s.sessions.Browser(w)
	if !ok {
		return nil, fmt.Errorf("%w: window %s is a %s window", models.ErrInvalidParams, w.ID, w.Kind)
	}

	res := models.LocationResult{}
	switch method {
	case models.MethodBrowserNavigate:
		if p.URL == "" {
			return nil, fmt.Errorf("%w: url is required", models.ErrInvalidParams)
		}
		res.URL, res.Moved = h.Navigate(p.URL), true
	case models.MethodBrowserBack:
		res.URL, res.Moved = h.Back()
	case models.MethodBrowserForward:
		res.URL, res.Moved = h.Forward()
	case models.MethodBrowserHome:
		res.URL, res.Moved = h.Home(), true
	default:
		res.URL = h.Current()
	}
	res.CanBack = h.CanBack()
	res.CanForward = h.CanForward()
	return res, nil
}
