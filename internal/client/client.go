package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/desk-cli/internal/desktop"
	"github.com/yourusername/desk-cli/internal/models"
	"github.com/yourusername/desk-cli/internal/types"
)

const (
	DefaultTimeout = 10 * time.Second
)

// Client talks to a running desk daemon
type Client struct {
	conn *Connection
}

// NewClient creates a new daemon client
func NewClient(socketPath string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		conn: NewConnection(socketPath, timeout),
	}
}

// Connect establishes connection to the server
func (c *Client) Connect() error {
	return c.conn.Connect()
}

// Close closes the connection
func (c *Client) Close() error {
	return c.conn.Close()
}

// request is a helper to send a request and get the response
func (c *Client) request(ctx context.Context, method string, params any) (*models.Response, error) {
	if !c.conn.IsConnected() {
		if err := c.Connect(); err != nil {
			return nil, err
		}
	}

	req, err := models.NewRequest(uuid.New().String(), method, params)
	if err != nil {
		return nil, err
	}
	return c.conn.SendRequest(ctx, req)
}

// Call sends a request and decodes the result into out, which may be nil
func (c *Client) Call(ctx context.Context, method string, params, out any) error {
	resp, err := c.request(ctx, method, params)
	if err != nil {
		return err
	}
	if err := resp.Decode(out); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	return nil
}

// CallMethod sends a generic RPC request and returns the raw result
func (c *Client) CallMethod(ctx context.Context, method string, params any) (json.RawMessage, error) {
	resp, err := c.request(ctx, method, params)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, fmt.Errorf("server error: %w", err)
	}
	return resp.Result, nil
}

// Ping sends a ping request to test connectivity
func (c *Client) Ping(ctx context.Context) (models.PingResult, error) {
	var out models.PingResult
	err := c.Call(ctx, models.MethodPing, nil, &out)
	return out, err
}

// Snapshot retrieves the complete desktop state
func (c *Client) Snapshot(ctx context.Context) (desktop.Snapshot, error) {
	return c.snapshotCall(ctx, models.MethodSnapshot, nil)
}

func (c *Client) snapshotCall(ctx context.Context, method string, params any) (desktop.Snapshot, error) {
	var out desktop.Snapshot
	err := c.Call(ctx, method, params, &out)
	return out, err
}

// OpenWindow opens a window and returns the new snapshot.
// The new window is the focused one.
func (c *Client) OpenWindow(ctx context.Context, p models.OpenWindowParams) (desktop.Snapshot, error) {
	return c.snapshotCall(ctx, models.MethodWindowOpen, p)
}

// WindowAction runs one of the id-only window methods
// (window.close, window.minimize, window.maximize, window.restore, window.focus)
func (c *Client) WindowAction(ctx context.Context, method, id string) (desktop.Snapshot, error) {
	return c.snapshotCall(ctx, method, models.WindowParams{ID: id})
}

// MoveWindow sets a window's position
func (c *Client) MoveWindow(ctx context.Context, id string, pos types.Point) (desktop.Snapshot, error) {
	return c.snapshotCall(ctx, models.MethodWindowMove, models.MoveParams{ID: id, Position: pos})
}

// ResizeWindow sets a window's size
func (c *Client) ResizeWindow(ctx context.Context, id string, size types.Size) (desktop.Snapshot, error) {
	return c.snapshotCall(ctx, models.MethodWindowResize, models.ResizeParams{ID: id, Size: size})
}

// DragWindow replays a pointer drag or corner resize on a window
func (c *Client) DragWindow(ctx context.Context, p models.DragParams) (desktop.Snapshot, error) {
	return c.snapshotCall(ctx, models.MethodWindowDrag, p)
}

// ToggleMaximize maximizes a window, or restores it when already maximized
func (c *Client) ToggleMaximize(ctx context.Context, id string) (desktop.Snapshot, error) {
	return c.snapshotCall(ctx, models.MethodWindowToggleMax, models.WindowParams{ID: id})
}

// OpenFile opens a file tree entry by id or path
func (c *Client) OpenFile(ctx context.Context, ref models.FileParams) (desktop.Snapshot, error) {
	return c.snapshotCall(ctx, models.MethodFileOpen, ref)
}

// SelectFile selects a file tree entry by id or path
func (c *Client) SelectFile(ctx context.Context, ref models.FileParams) (desktop.Snapshot, error) {
	return c.snapshotCall(ctx, models.MethodFileSelect, ref)
}

// ToggleDarkMode flips dark mode
func (c *Client) ToggleDarkMode(ctx context.Context) (desktop.Snapshot, error) {
	return c.snapshotCall(ctx, models.MethodToggleDarkMode, nil)
}

// LaunchApp opens a dock entry
func (c *Client) LaunchApp(ctx context.Context, app string) (desktop.Snapshot, error) {
	return c.snapshotCall(ctx, models.MethodAppLaunch, models.AppParams{App: app})
}

// TerminalExec runs one line in a terminal window
func (c *Client) TerminalExec(ctx context.Context, id, input string) (models.ExecResult, error) {
	var out models.ExecResult
	err := c.Call(ctx, models.MethodTerminalExec, models.ExecParams{ID: id, Input: input}, &out)
	return out, err
}

// TerminalLines returns a terminal window's scrollback
func (c *Client) TerminalLines(ctx context.Context, id string) (models.ExecResult, error) {
	var out models.ExecResult
	err := c.Call(ctx, models.MethodTerminalLines, models.WindowParams{ID: id}, &out)
	return out, err
}

// Browser runs one of the browser methods against a browser window.
// url is only used by browser.navigate.
func (c *Client) Browser(ctx context.Context, method, id, url string) (models.LocationResult, error) {
	var out models.LocationResult
	var params any = models.WindowParams{ID: id}
	if method == models.MethodBrowserNavigate {
		params = models.NavigateParams{ID: id, URL: url}
	}
	err := c.Call(ctx, method, params, &out)
	return out, err
}
