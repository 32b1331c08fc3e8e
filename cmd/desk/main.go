package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/yourusername/desk-cli/internal/client"
	"github.com/yourusername/desk-cli/internal/config"
	"github.com/yourusername/desk-cli/internal/desktop"
	"github.com/yourusername/desk-cli/internal/logging"
	"github.com/yourusername/desk-cli/internal/output"
)

const version = "0.1.0"

var (
	socketPath string
	configPath string
	timeout    time.Duration
	jsonOutput bool
	noColor    bool
	debugMode  bool

	// Color functions
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	keyColor     = color.New(color.FgYellow)
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "desk",
	Short: "Desk - a scriptable desktop shell",
	Long: `Desk runs a desktop of windows, a virtual file tree and a dock of apps
behind a local daemon, and drives it from the command line.

Start the daemon with 'desk serve', then open, move and focus windows,
browse the file tree, or use the built-in terminal and browser apps.`,
	Version: version,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", "", "Unix socket path (default from config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", client.DefaultTimeout, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(launchCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(focusCmd)
	rootCmd.AddCommand(fileCmd)
	rootCmd.AddCommand(darkCmd)
	rootCmd.AddCommand(termCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(configCmd)

	cobra.OnInitialize(func() {
		if noColor {
			color.NoColor = true
		}
	})
}

func main() {
	defer logging.Close()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Helper functions

// loadConfig reads the config named by --config, or the default location
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if socketPath != "" {
		cfg.Server.Socket = socketPath
	}
	return cfg, nil
}

// initLogging opens the log file for long running commands
func initLogging(cfg *config.Config) error {
	level := cfg.Settings.LogLevel
	if debugMode {
		level = "debug"
	}
	return logging.Init(level, cfg.Settings.LogFile)
}

// newClient returns a client for the daemon socket
func newClient() (*client.Client, error) {
	path := socketPath
	if path == "" {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		path = cfg.Server.Socket
	}
	return client.NewClient(path, timeout), nil
}

// withClient runs fn against a connected daemon client
func withClient(fn func(ctx context.Context, c *client.Client) error) error {
	c, err := newClient()
	if err != nil {
		printError(err.Error())
		return err
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := fn(ctx, c); err != nil {
		printError(err.Error())
		return err
	}
	return nil
}

// snapshotCommand runs a mutating call and prints the resulting snapshot
func snapshotCommand(fn func(ctx context.Context, c *client.Client) (desktop.Snapshot, error)) error {
	return withClient(func(ctx context.Context, c *client.Client) error {
		snap, err := fn(ctx, c)
		if err != nil {
			return err
		}
		return printSnapshot(snap)
	})
}

func printJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printError(msg string) {
	if noColor {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	} else {
		errorColor.Fprint(os.Stderr, "✗ Error: ")
		fmt.Fprintln(os.Stderr, msg)
	}
}

// printSnapshot reports the outcome of a command: the full snapshot with
// --json, otherwise the focused window and a window count.
func printSnapshot(snap desktop.Snapshot) error {
	if jsonOutput {
		return printJSON(snap)
	}

	successColor.Print("✓ ")
	fmt.Printf("%d windows", len(snap.Windows))
	if snap.DarkMode {
		fmt.Print(", dark mode")
	}
	fmt.Println()

	if w, ok := snap.Focused(); ok {
		keyColor.Print("Focused: ")
		fmt.Printf("%s %s (%s)\n", w.ID, w.Title, w.FormatFrame())
	}
	return nil
}

// getVisualizationOptions builds options from flags
func getVisualizationOptions() output.VisualizationOptions {
	opts := output.DefaultVisualizationOptions()

	if showASCII {
		opts.UseUnicode = false
	}
	if showUnicode {
		opts.UseUnicode = true
	}
	opts.ShowIDs = !showNoIDs
	if showWidth > 0 {
		opts.MaxWidth = showWidth
	}
	if showHeight > 0 {
		opts.MaxHeight = showHeight
	}
	if showDesktop != "" {
		if size, err := config.ParseSize(showDesktop); err == nil {
			opts.Desktop = size
		}
	}

	return opts
}
