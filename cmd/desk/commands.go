package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/desk-cli/internal/client"
	"github.com/yourusername/desk-cli/internal/config"
	"github.com/yourusername/desk-cli/internal/desktop"
	"github.com/yourusername/desk-cli/internal/files"
	"github.com/yourusername/desk-cli/internal/focus"
	"github.com/yourusername/desk-cli/internal/models"
	"github.com/yourusername/desk-cli/internal/output"
	"github.com/yourusername/desk-cli/internal/types"
)

// pingCmd tests daemon connectivity
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Test connection to the desk daemon",
	Long:  `Sends a ping request to the daemon to test connectivity and response time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *client.Client) error {
			start := time.Now()
			result, err := c.Ping(ctx)
			if err != nil {
				return fmt.Errorf("ping failed: %w", err)
			}
			elapsed := time.Since(start)

			if jsonOutput {
				return printJSON(result)
			}

			successColor.Println("✓ Pong received")
			fmt.Printf("Response time: %v\n", elapsed)
			keyColor.Print("Daemon version: ")
			fmt.Println(result.Version)
			return nil
		})
	},
}

// dumpCmd dumps the complete state
var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the complete desktop state",
	Long:  `Retrieves the complete desktop snapshot: windows, focus, file tree and dark mode.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *client.Client) error {
			snap, err := c.Snapshot(ctx)
			if err != nil {
				return err
			}
			// Always JSON; the snapshot is too nested for a table
			return printJSON(snap)
		})
	},
}

// Visualization flags
var (
	showASCII   bool
	showUnicode bool
	showNoIDs   bool
	showWidth   int
	showHeight  int
	showDesktop string
)

// showCmd visualizes the desktop
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the desktop layout",
	Long: `Displays an ASCII/Unicode picture of the desktop. Windows are drawn back
to front, so the focused window is on top; minimized windows are listed below.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *client.Client) error {
			snap, err := c.Snapshot(ctx)
			if err != nil {
				return err
			}
			return output.PrintVisualization(os.Stdout, snap, getVisualizationOptions())
		})
	},
}

// listCmd is the parent command for listing subcommands
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List windows, files or apps",
	Long:  `Lists parts of the desktop state in a table format.`,
}

var listWindowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List all windows",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *client.Client) error {
			snap, err := c.Snapshot(ctx)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(snap.Windows)
			}
			if len(snap.Windows) == 0 {
				fmt.Println("No windows open")
				return nil
			}
			output.PrintWindowsTable(os.Stdout, snap.Windows)
			fmt.Printf("\nTotal: %d windows\n", len(snap.Windows))
			return nil
		})
	},
}

var listFilesCmd = &cobra.Command{
	Use:   "files",
	Short: "List the file tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *client.Client) error {
			snap, err := c.Snapshot(ctx)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(snap.Files)
			}
			output.PrintFilesTable(os.Stdout, snap.Files)
			return nil
		})
	},
}

// listAppsCmd lists dock apps from the local config, no daemon needed
var listAppsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List dock apps",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			printError(err.Error())
			return err
		}
		if jsonOutput {
			return printJSON(cfg.Apps)
		}
		output.PrintAppsTable(os.Stdout, cfg.Apps)
		return nil
	},
}

// Open flags
var (
	openTitle  string
	openSize   string
	openText   string
	openURL    string
	openFileID string
)

// openCmd opens a window of a given kind
var openCmd = &cobra.Command{
	Use:   "open <kind>",
	Short: "Open a window",
	Long: `Opens a window of the given kind (terminal, browser or fileExplorer).
Title and size default to the dock app of the same kind.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(types.KindTerminal), string(types.KindBrowser), string(types.KindFileExplorer)},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, ok := types.ParseWindowKind(args[0])
		if !ok {
			err := fmt.Errorf("unknown window kind %q", args[0])
			printError(err.Error())
			return err
		}

		p := models.OpenWindowParams{
			Kind:   kind,
			Title:  openTitle,
			Text:   openText,
			URL:    openURL,
			FileID: openFileID,
		}
		if openSize != "" {
			size, err := config.ParseSize(openSize)
			if err != nil {
				printError(err.Error())
				return err
			}
			p.Size = size
		}

		return snapshotCommand(func(ctx context.Context, c *client.Client) (desktop.Snapshot, error) {
			return c.OpenWindow(ctx, p)
		})
	},
}

// launchCmd opens a dock app
var launchCmd = &cobra.Command{
	Use:   "launch <app>",
	Short: "Launch a dock app",
	Long:  `Opens the dock app with the given id. See 'desk list apps'.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return snapshotCommand(func(ctx context.Context, c *client.Client) (desktop.Snapshot, error) {
			return c.LaunchApp(ctx, args[0])
		})
	},
}

// windowCmd is the parent command for window subcommands
var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Window operations",
	Long:  `Commands for inspecting and manipulating individual windows.`,
}

var windowGetCmd = &cobra.Command{
	Use:   "get <window-id>",
	Short: "Show one window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *client.Client) error {
			snap, err := c.Snapshot(ctx)
			if err != nil {
				return err
			}
			w, ok := snap.Window(args[0])
			if !ok {
				return fmt.Errorf("window %s not found", args[0])
			}
			if jsonOutput {
				return printJSON(w)
			}
			output.PrintWindowDetail(os.Stdout, w)
			return nil
		})
	},
}

// windowActionCmd builds one of the id-only window subcommands
func windowActionCmd(use, short, method string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <window-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return snapshotCommand(func(ctx context.Context, c *client.Client) (desktop.Snapshot, error) {
				return c.WindowAction(ctx, method, args[0])
			})
		},
	}
}

var windowMoveCmd = &cobra.Command{
	Use:   "move <window-id> <x,y>",
	Short: "Move a window",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := config.ParsePoint(args[1])
		if err != nil {
			printError(err.Error())
			return err
		}
		return snapshotCommand(func(ctx context.Context, c *client.Client) (desktop.Snapshot, error) {
			return c.MoveWindow(ctx, args[0], pos)
		})
	},
}

var windowResizeCmd = &cobra.Command{
	Use:   "resize <window-id> <WxH>",
	Short: "Resize a window",
	Long:  `Resizes a window. Sizes below 300x200 are raised to that minimum.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		size, err := config.ParseSize(args[1])
		if err != nil {
			printError(err.Error())
			return err
		}
		return snapshotCommand(func(ctx context.Context, c *client.Client) (desktop.Snapshot, error) {
			return c.ResizeWindow(ctx, args[0], size)
		})
	},
}

var (
	dragFrom   string
	dragTo     string
	dragVia    []string
	dragResize bool
)

var windowDragCmd = &cobra.Command{
	Use:   "drag [window-id] --from x,y --to x,y",
	Short: "Drag a window with the pointer",
	Long: `Replays a pointer gesture: press at --from, pass through each --via point and
release at --to. By default the title bar is dragged. With --resize the bottom-right
corner is dragged instead and the size stays at least 300x200. Maximized windows
do not move. Without a window id the frontmost window under --from is dragged.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := models.DragParams{Resize: dragResize}
		if len(args) == 1 {
			p.ID = args[0]
		}

		var err error
		if p.From, err = config.ParsePoint(dragFrom); err != nil {
			printError(err.Error())
			return err
		}
		if p.To, err = config.ParsePoint(dragTo); err != nil {
			printError(err.Error())
			return err
		}
		for _, v := range dragVia {
			pt, err := config.ParsePoint(v)
			if err != nil {
				printError(err.Error())
				return err
			}
			p.Via = append(p.Via, pt)
		}

		return snapshotCommand(func(ctx context.Context, c *client.Client) (desktop.Snapshot, error) {
			return c.DragWindow(ctx, p)
		})
	},
}

var windowToggleCmd = &cobra.Command{
	Use:   "toggle <window-id>",
	Short: "Maximize a window, or restore it if maximized",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return snapshotCommand(func(ctx context.Context, c *client.Client) (desktop.Snapshot, error) {
			return c.ToggleMaximize(ctx, args[0])
		})
	},
}

var focusWrap bool

// focusCmd moves keyboard focus between windows
var focusCmd = &cobra.Command{
	Use:   "focus <left|right|up|down|cycle|last>",
	Short: "Move focus to another window",
	Long: `Focuses the nearest visible window in a direction from the focused one.
'cycle' focuses the backmost window, so repeating it visits every window;
'last' returns to the window that was in front before the current one.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"left", "right", "up", "down", "cycle", "last"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *client.Client) error {
			snap, err := c.Snapshot(ctx)
			if err != nil {
				return err
			}

			var target string
			var ok bool
			switch args[0] {
			case "cycle":
				target, ok = focus.Cycle(snap.Windows, snap.FocusedID)
			case "last":
				target, ok = focus.Last(snap.Windows)
			default:
				dir, valid := focus.ParseDirection(args[0])
				if !valid {
					return fmt.Errorf("unknown direction %q", args[0])
				}
				target, ok = focus.Neighbor(snap.Windows, snap.FocusedID, dir, focusWrap)
			}
			if !ok {
				infoColor.Println("No window in that direction")
				return nil
			}

			snap, err = c.WindowAction(ctx, models.MethodWindowFocus, target)
			if err != nil {
				return err
			}
			return printSnapshot(snap)
		})
	},
}

// fileCmd is the parent command for file tree subcommands
var fileCmd = &cobra.Command{
	Use:   "file",
	Short: "File tree operations",
	Long:  `Commands for the virtual file tree. Entries are named by id or by slash path, e.g. Blog/Intro.`,
}

// fileRef treats arguments containing a slash or a space as paths
func fileRef(arg string) models.FileParams {
	if strings.Contains(arg, "/") || strings.Contains(arg, " ") {
		return models.FileParams{Path: arg}
	}
	return models.FileParams{ID: arg}
}

var fileOpenCmd = &cobra.Command{
	Use:   "open <id|path>",
	Short: "Open a text file or folder in a window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return snapshotCommand(func(ctx context.Context, c *client.Client) (desktop.Snapshot, error) {
			return c.OpenFile(ctx, fileRef(args[0]))
		})
	},
}

var fileSelectCmd = &cobra.Command{
	Use:   "select <id|path>",
	Short: "Select a file tree entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return snapshotCommand(func(ctx context.Context, c *client.Client) (desktop.Snapshot, error) {
			return c.SelectFile(ctx, fileRef(args[0]))
		})
	},
}

var fileCatCmd = &cobra.Command{
	Use:   "cat <id|path>",
	Short: "Print a text document, highlighted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *client.Client) error {
			snap, err := c.Snapshot(ctx)
			if err != nil {
				return err
			}

			tree := files.NewTree(snap.Files)
			entry, ok := tree.Find(args[0])
			if !ok {
				entry, ok = tree.Resolve(args[0])
			}
			if !ok {
				return fmt.Errorf("file %q not found", args[0])
			}
			if entry.IsFolder() {
				return fmt.Errorf("%q is a folder", entry.Name)
			}
			if jsonOutput {
				return printJSON(entry)
			}
			return output.RenderDocument(os.Stdout, entry.Name, entry.Content, snap.DarkMode)
		})
	},
}

// darkCmd toggles dark mode
var darkCmd = &cobra.Command{
	Use:   "dark",
	Short: "Toggle dark mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		return snapshotCommand(func(ctx context.Context, c *client.Client) (desktop.Snapshot, error) {
			return c.ToggleDarkMode(ctx)
		})
	},
}

// browseCmd drives a browser window
var browseCmd = &cobra.Command{
	Use:   "browse <window-id> [url|back|forward|home]",
	Short: "Navigate a browser window",
	Long: `Navigates a browser window. With no second argument the current location
is printed. Addresses without a scheme get https:// prepended.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		method, url := models.MethodBrowserLocation, ""
		if len(args) == 2 {
			switch args[1] {
			case "back":
				method = models.MethodBrowserBack
			case "forward":
				method = models.MethodBrowserForward
			case "home":
				method = models.MethodBrowserHome
			default:
				method, url = models.MethodBrowserNavigate, args[1]
			}
		}

		return withClient(func(ctx context.Context, c *client.Client) error {
			loc, err := c.Browser(ctx, method, args[0], url)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(loc)
			}

			keyColor.Print("Location: ")
			fmt.Println(loc.URL)
			if len(args) == 2 && !loc.Moved {
				infoColor.Println("(no history in that direction)")
			}
			return nil
		})
	},
}

// configCmd is the parent command for config subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for showing and validating desk configuration.`,
}

var configShowFormat string

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			printError(err.Error())
			return err
		}

		format := configShowFormat
		if jsonOutput {
			format = "json"
		}
		data, err := cfg.Marshal(format)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if len(args) > 0 {
			path = args[0]
		}

		cfg, err := config.LoadConfig(path)
		if err != nil {
			printError(err.Error())
			return fmt.Errorf("validation failed: %w", err)
		}
		if _, err := cfg.Tree(); err != nil {
			printError(err.Error())
			return fmt.Errorf("validation failed: %w", err)
		}

		successColor.Println("✓ Configuration is valid")
		fmt.Printf("  Apps: %d\n", len(cfg.Apps))
		fmt.Printf("  Default size: %s\n", cfg.Window.DefaultSize)
		fmt.Printf("  Socket: %s\n", cfg.Server.Socket)
		if cfg.Server.HTTPAddr != "" {
			fmt.Printf("  HTTP: %s\n", cfg.Server.HTTPAddr)
		}
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showASCII, "ascii", false, "Force ASCII mode (no Unicode)")
	showCmd.Flags().BoolVar(&showUnicode, "unicode", false, "Force Unicode mode")
	showCmd.Flags().BoolVar(&showNoIDs, "no-ids", false, "Hide window IDs")
	showCmd.Flags().IntVar(&showWidth, "width", 0, "Canvas width in characters (default: terminal width)")
	showCmd.Flags().IntVar(&showHeight, "height", 0, "Canvas height in characters (default: terminal height)")
	showCmd.Flags().StringVar(&showDesktop, "desktop", "", "Desktop size in pixels, e.g. 1440x900")

	listCmd.AddCommand(listWindowsCmd)
	listCmd.AddCommand(listFilesCmd)
	listCmd.AddCommand(listAppsCmd)

	openCmd.Flags().StringVar(&openTitle, "title", "", "Window title")
	openCmd.Flags().StringVar(&openSize, "size", "", "Window size, e.g. 800x600")
	openCmd.Flags().StringVar(&openText, "text", "", "Text body (fileExplorer, terminal)")
	openCmd.Flags().StringVar(&openURL, "url", "", "Address (browser)")
	openCmd.Flags().StringVar(&openFileID, "file", "", "File tree entry id (fileExplorer)")

	windowCmd.AddCommand(windowGetCmd)
	windowCmd.AddCommand(windowActionCmd("close", "Close a window", models.MethodWindowClose))
	windowCmd.AddCommand(windowActionCmd("minimize", "Minimize a window", models.MethodWindowMinimize))
	windowCmd.AddCommand(windowActionCmd("maximize", "Maximize a window", models.MethodWindowMaximize))
	windowCmd.AddCommand(windowActionCmd("restore", "Restore a minimized or maximized window", models.MethodWindowRestore))
	windowCmd.AddCommand(windowActionCmd("focus", "Focus and raise a window", models.MethodWindowFocus))
	windowCmd.AddCommand(windowMoveCmd)
	windowCmd.AddCommand(windowResizeCmd)
	windowCmd.AddCommand(windowDragCmd)
	windowCmd.AddCommand(windowToggleCmd)

	windowDragCmd.Flags().StringVar(&dragFrom, "from", "", "Pointer press position, e.g. 150,110")
	windowDragCmd.Flags().StringVar(&dragTo, "to", "", "Pointer release position")
	windowDragCmd.Flags().StringArrayVar(&dragVia, "via", nil, "Intermediate pointer position, repeatable")
	windowDragCmd.Flags().BoolVar(&dragResize, "resize", false, "Drag the bottom-right corner")
	windowDragCmd.MarkFlagRequired("from")
	windowDragCmd.MarkFlagRequired("to")

	focusCmd.Flags().BoolVar(&focusWrap, "wrap", true, "Wrap around to the opposite edge")

	fileCmd.AddCommand(fileOpenCmd)
	fileCmd.AddCommand(fileSelectCmd)
	fileCmd.AddCommand(fileCatCmd)

	configShowCmd.Flags().StringVar(&configShowFormat, "format", "yaml", "Output format (yaml, json)")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
}
