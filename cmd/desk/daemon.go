package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/desk-cli/internal/config"
	"github.com/yourusername/desk-cli/internal/desktop"
	"github.com/yourusername/desk-cli/internal/httpapi"
	"github.com/yourusername/desk-cli/internal/logging"
	"github.com/yourusername/desk-cli/internal/mcpserver"
	"github.com/yourusername/desk-cli/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveHTTPAddr string

// serveCmd runs the desktop daemon
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the desktop daemon",
	Long: `Runs the desktop and serves it on a unix socket, plus an HTTP API with a
server-sent event stream when an HTTP address is configured.

The config file is watched; dock apps, window defaults and cascade
placement are reloaded on change without touching open windows.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			printError(err.Error())
			return err
		}
		if serveHTTPAddr != "" {
			cfg.Server.HTTPAddr = serveHTTPAddr
		}
		if err := initLogging(cfg); err != nil {
			printError(err.Error())
			return err
		}

		ctrl, err := buildDesktop(cfg)
		if err != nil {
			printError(err.Error())
			return err
		}

		infoColor.Printf("Serving desktop on %s\n", cfg.Server.Socket)
		if cfg.Server.HTTPAddr != "" {
			infoColor.Printf("HTTP API on http://%s\n", cfg.Server.HTTPAddr)
		}
		return runDaemon(cmd.Context(), cfg, ctrl)
	},
}

// mcpCmd serves an in-process desktop to an MCP client over stdio
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve desktop tools over MCP (stdio)",
	Long: `Runs a desktop in-process and exposes it as MCP tools on stdin/stdout,
for use by LLM clients. Logs go to the log file, never to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := initLogging(cfg); err != nil {
			return err
		}

		ctrl, err := buildDesktop(cfg)
		if err != nil {
			return err
		}

		logging.Info().Msg("mcp server starting")
		return mcpserver.New(server.NewService(ctrl, version), version).ServeStdio()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHTTPAddr, "http", "", "HTTP listen address, e.g. 127.0.0.1:7070 (overrides config)")
}

// buildDesktop creates a controller from the config
func buildDesktop(cfg *config.Config) (*desktop.Controller, error) {
	tree, err := cfg.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to load file tree: %w", err)
	}

	return desktop.New(
		desktop.WithTree(tree),
		desktop.WithPolicy(cfg.Policy()),
		desktop.WithCascade(cfg.Cascade),
		desktop.WithDarkMode(cfg.Settings.DarkMode),
		desktop.WithLogger(logging.Logger),
	), nil
}

// watchedConfigPath returns the config file to follow, or "" when the daemon
// runs on defaults
func watchedConfigPath() string {
	path, err := config.ResolvePath(configPath)
	if err != nil || path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// runDaemon serves ctrl until a signal arrives or a listener fails
func runDaemon(ctx context.Context, cfg *config.Config, ctrl *desktop.Controller) error {
	if ctx == nil {
		ctx = context.Background()
	}

	svc := server.NewService(ctrl, version)
	rpc := server.New(svc, cfg.Server.Socket)
	if err := rpc.Listen(); err != nil {
		printError(err.Error())
		return err
	}

	var httpServer *http.Server
	if cfg.Server.HTTPAddr != "" {
		broker, cancelFeed := httpapi.NewSnapshotBroker(ctrl)
		defer func() {
			cancelFeed()
			broker.Close()
		}()
		httpServer = &http.Server{
			Addr:              cfg.Server.HTTPAddr,
			Handler:           httpapi.NewRouter(svc, cfg.Server.Token, broker),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return rpc.Serve(gCtx)
	})

	if httpServer != nil {
		g.Go(func() error {
			logging.Info().Str("addr", httpServer.Addr).Msg("starting HTTP server")
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("HTTP server error: %w", err)
			}
			return nil
		})
	}

	if path := watchedConfigPath(); path != "" {
		g.Go(func() error {
			err := config.Watch(gCtx, path, func(next *config.Config) {
				ctrl.SetPolicy(next.Policy(), next.Cascade)
				logging.Info().Int("apps", len(next.Apps)).Msg("launch policy reloaded")
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logging.Warn().Err(err).Msg("config watcher stopped")
			}
			return nil
		})
	}

	// Handle shutdown signals
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		case <-gCtx.Done():
		}

		if err := rpc.Close(); err != nil {
			logging.Error().Err(err).Msg("socket server close error")
		}

		if httpServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logging.Error().Err(err).Msg("HTTP server shutdown error")
			}
		}
		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logging.Error().Err(err).Msg("daemon error")
		return err
	}

	logging.Info().Msg("daemon stopped")
	return nil
}

// errShutdown cancels the group once the signal handler has closed the listeners
var errShutdown = errors.New("shutdown")
