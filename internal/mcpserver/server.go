// Package mcpserver exposes the desktop as MCP tools over stdio, so an LLM
// client can inspect and drive a running controller.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/yourusername/desk-cli/internal/models"
	rpc "github.com/yourusername/desk-cli/internal/server"
	"github.com/yourusername/desk-cli/internal/types"
)

// Server wraps the MCP server with desktop tools.
type Server struct {
	mcp *server.MCPServer
	svc *rpc.Service
}

// New creates an MCP server with every desktop tool registered.
func New(svc *rpc.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"desk",
		version,
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("desktop_snapshot",
		mcp.WithDescription("Return the whole desktop state: windows, focus, file tree and dark mode."),
	), s.snapshot)

	s.mcp.AddTool(mcp.NewTool("open_window",
		mcp.WithDescription("Open a new window. The new window is focused and placed on the cascade."),
		mcp.WithString("kind", mcp.Required(),
			mcp.Description("Window kind"),
			mcp.Enum(string(types.KindFileExplorer), string(types.KindTerminal), string(types.KindBrowser))),
		mcp.WithString("title", mcp.Description("Title bar text (defaults to the dock app of that kind)")),
		mcp.WithNumber("width", mcp.Description("Width in pixels")),
		mcp.WithNumber("height", mcp.Description("Height in pixels")),
		mcp.WithString("text", mcp.Description("Text body for a file explorer window")),
		mcp.WithString("url", mcp.Description("Address for a browser window")),
		mcp.WithString("fileId", mcp.Description("File tree entry to show in a file explorer window")),
	), s.openWindow)

	s.mcp.AddTool(mcp.NewTool("launch_app",
		mcp.WithDescription("Launch a dock app by id (files, terminal, browser or a configured app)."),
		mcp.WithString("app", mcp.Required(), mcp.Description("Dock app id")),
	), s.launchApp)

	s.mcp.AddTool(mcp.NewTool("window_action",
		mcp.WithDescription("Close, minimize, maximize, restore, focus or toggle-maximize a window."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Window id")),
		mcp.WithString("action", mcp.Required(),
			mcp.Description("Action to apply"),
			mcp.Enum("close", "minimize", "maximize", "restore", "focus", "toggle_maximize")),
	), s.windowAction)

	s.mcp.AddTool(mcp.NewTool("move_window",
		mcp.WithDescription("Move a window's top-left corner."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Window id")),
		mcp.WithNumber("x", mcp.Required(), mcp.Description("Left edge in pixels")),
		mcp.WithNumber("y", mcp.Required(), mcp.Description("Top edge in pixels")),
	), s.moveWindow)

	s.mcp.AddTool(mcp.NewTool("resize_window",
		mcp.WithDescription("Resize a window. Sizes below 300x200 are raised to the minimum."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Window id")),
		mcp.WithNumber("width", mcp.Required(), mcp.Description("Width in pixels")),
		mcp.WithNumber("height", mcp.Required(), mcp.Description("Height in pixels")),
	), s.resizeWindow)

	s.mcp.AddTool(mcp.NewTool("drag_window",
		mcp.WithDescription("Drag a window with the pointer from one point to another. "+
			"mode=move drags the title bar; mode=resize drags the bottom-right corner. Maximized windows do not move."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Window id")),
		mcp.WithNumber("fromX", mcp.Required(), mcp.Description("Pointer press x")),
		mcp.WithNumber("fromY", mcp.Required(), mcp.Description("Pointer press y")),
		mcp.WithNumber("toX", mcp.Required(), mcp.Description("Pointer release x")),
		mcp.WithNumber("toY", mcp.Required(), mcp.Description("Pointer release y")),
		mcp.WithString("mode", mcp.Description("What is dragged"), mcp.Enum("move", "resize")),
	), s.dragWindow)

	s.mcp.AddTool(mcp.NewTool("open_file",
		mcp.WithDescription("Open a text file or folder from the file tree in a new window."),
		mcp.WithString("id", mcp.Description("File tree entry id")),
		mcp.WithString("path", mcp.Description("Slash separated path by name, e.g. Blog/Intro")),
	), s.openFile)

	s.mcp.AddTool(mcp.NewTool("select_file",
		mcp.WithDescription("Select one file tree entry, deselecting every other."),
		mcp.WithString("id", mcp.Description("File tree entry id")),
		mcp.WithString("path", mcp.Description("Slash separated path by name")),
	), s.selectFile)

	s.mcp.AddTool(mcp.NewTool("toggle_dark_mode",
		mcp.WithDescription("Flip the desktop between light and dark mode."),
	), s.toggleDarkMode)

	s.mcp.AddTool(mcp.NewTool("terminal_exec",
		mcp.WithDescription("Run one command line in a terminal window and return its output."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Terminal window id")),
		mcp.WithString("input", mcp.Required(), mcp.Description("Command line, e.g. ls or cat README")),
	), s.terminalExec)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying MCPServer for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// call runs one RPC method and renders its result as indented JSON.
// Method errors are tool errors, not protocol errors.
func (s *Server) call(ctx context.Context, method string, params any) (*mcp.CallToolResult, error) {
	var raw json.RawMessage
	if params != nil {
		b, err := json.Marshal(params)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		raw = b
	}

	result, err := s.svc.Handle(ctx, method, raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) snapshot(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.call(ctx, models.MethodSnapshot, nil)
}

func (s *Server) openWindow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := req.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.call(ctx, models.MethodWindowOpen, models.OpenWindowParams{
		Kind:  types.WindowKind(kind),
		Title: req.GetString("title", ""),
		Size: types.Size{
			Width:  int(req.GetFloat("width", 0)),
			Height: int(req.GetFloat("height", 0)),
		},
		Text:   req.GetString("text", ""),
		URL:    req.GetString("url", ""),
		FileID: req.GetString("fileId", ""),
	})
}

func (s *Server) launchApp(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	app, err := req.RequireString("app")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.call(ctx, models.MethodAppLaunch, models.AppParams{App: app})
}

var actions = map[string]string{
	"close":    models.MethodWindowClose,
	"minimize": models.MethodWindowMinimize,
	"maximize": models.MethodWindowMaximize,
	"restore":  models.MethodWindowRestore,
	"focus":    models.MethodWindowFocus,

	"toggle_maximize": models.MethodWindowToggleMax,
}

func (s *Server) windowAction(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	action, err := req.RequireString("action")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	method, ok := actions[action]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown action %q", action)), nil
	}
	return s.call(ctx, method, models.WindowParams{ID: id})
}

func (s *Server) moveWindow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	x, err := req.RequireFloat("x")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	y, err := req.RequireFloat("y")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.call(ctx, models.MethodWindowMove, models.MoveParams{
		ID:       id,
		Position: types.Point{X: int(x), Y: int(y)},
	})
}

func (s *Server) resizeWindow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	w, err := req.RequireFloat("width")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	h, err := req.RequireFloat("height")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.call(ctx, models.MethodWindowResize, models.ResizeParams{
		ID:   id,
		Size: types.Size{Width: int(w), Height: int(h)},
	})
}

func (s *Server) dragWindow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var coords [4]float64
	for i, key := range []string{"fromX", "fromY", "toX", "toY"} {
		if coords[i], err = req.RequireFloat(key); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	mode := req.GetString("mode", "move")
	if mode != "move" && mode != "resize" {
		return mcp.NewToolResultError(fmt.Sprintf("unknown mode %q", mode)), nil
	}
	return s.call(ctx, models.MethodWindowDrag, models.DragParams{
		ID:     id,
		From:   types.Point{X: int(coords[0]), Y: int(coords[1])},
		To:     types.Point{X: int(coords[2]), Y: int(coords[3])},
		Resize: mode == "resize",
	})
}

func fileRef(req mcp.CallToolRequest) (models.FileParams, error) {
	ref := models.FileParams{
		ID:   req.GetString("id", ""),
		Path: req.GetString("path", ""),
	}
	if ref.ID == "" && ref.Path == "" {
		return ref, fmt.Errorf("id or path is required")
	}
	return ref, nil
}

func (s *Server) openFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := fileRef(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.call(ctx, models.MethodFileOpen, ref)
}

func (s *Server) selectFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := fileRef(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.call(ctx, models.MethodFileSelect, ref)
}

func (s *Server) toggleDarkMode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.call(ctx, models.MethodToggleDarkMode, nil)
}

func (s *Server) terminalExec(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	input, err := req.RequireString("input")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.call(ctx, models.MethodTerminalExec, models.ExecParams{ID: id, Input: input})
}
