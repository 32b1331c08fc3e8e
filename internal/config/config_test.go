package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yourusername/desk-cli/internal/types"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		input    string
		expected types.Size
		hasError bool
	}{
		{"800x600", types.Size{Width: 800, Height: 600}, false},
		{"  300 X 200 ", types.Size{Width: 300, Height: 200}, false},
		{"640×480", types.Size{Width: 640, Height: 480}, false},
		{"800", types.Size{}, true},
		{"-1x5", types.Size{}, true},
		{"", types.Size{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			if tt.hasError {
				if err == nil {
					t.Errorf("ParseSize(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("ParseSize(%q) unexpected error: %v", tt.input, err)
				return
			}
			if got != tt.expected {
				t.Errorf("ParseSize(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		input    string
		expected types.Point
		hasError bool
	}{
		{"100,100", types.Point{X: 100, Y: 100}, false},
		{"(130, 130)", types.Point{X: 130, Y: 130}, false},
		{"-20,5", types.Point{X: -20, Y: 5}, false},
		{"1;2", types.Point{}, true},
		{"x,y", types.Point{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePoint(tt.input)
			if (err != nil) != tt.hasError {
				t.Fatalf("ParsePoint(%q) error = %v, hasError %v", tt.input, err, tt.hasError)
			}
			if !tt.hasError && got != tt.expected {
				t.Errorf("ParsePoint(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if len(cfg.Apps) != 3 {
		t.Errorf("len(Apps) = %d, want 3", len(cfg.Apps))
	}
	if cfg.Cascade.Slots != 5 || cfg.Cascade.Step != 30 {
		t.Errorf("Cascade = %+v", cfg.Cascade)
	}
}

func TestLoadConfigFromBytes_YAML(t *testing.T) {
	yamlConfig := `
settings:
  darkMode: true
  logLevel: debug
cascade:
  origin: {x: 40, y: 60}
  step: 20
  slots: 3
window:
  defaultSize: {width: 640, height: 480}
apps:
  - id: docs
    name: Docs
    kind: browser
    title: Go Docs
    size: {width: 900, height: 700}
    url: https://go.dev/doc
server:
  socket: /tmp/desk-test.sock
  httpAddr: 127.0.0.1:7070
`

	cfg, err := LoadConfigFromBytes([]byte(yamlConfig), "yaml")
	if err != nil {
		t.Fatalf("LoadConfigFromBytes failed: %v", err)
	}

	if !cfg.Settings.DarkMode || cfg.Settings.LogLevel != "debug" {
		t.Errorf("Settings = %+v", cfg.Settings)
	}
	if cfg.Cascade.Origin != (types.Point{X: 40, Y: 60}) || cfg.Cascade.Slots != 3 {
		t.Errorf("Cascade = %+v", cfg.Cascade)
	}
	if len(cfg.Apps) != 1 || cfg.Apps[0].ID != "docs" {
		t.Fatalf("Apps = %+v, want only docs", cfg.Apps)
	}

	policy := cfg.Policy()
	req, ok := policy.ForApp("docs")
	if !ok || req.Content.URL != "https://go.dev/doc" {
		t.Errorf("ForApp(docs) = %+v, %v", req, ok)
	}
	if policy.DefaultSize != (types.Size{Width: 640, Height: 480}) {
		t.Errorf("DefaultSize = %v", policy.DefaultSize)
	}
}

func TestLoadConfigFromBytes_JSONKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfigFromBytes([]byte(`{"settings": {"darkMode": true}}`), "json")
	if err != nil {
		t.Fatalf("LoadConfigFromBytes failed: %v", err)
	}
	if !cfg.Settings.DarkMode {
		t.Error("DarkMode should be set")
	}
	if len(cfg.Apps) != 3 {
		t.Errorf("omitted apps should keep the default dock, got %d", len(cfg.Apps))
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad log level", "settings: {logLevel: shouty}", "settings"},
		{"zero slots", "cascade: {slots: 0}", "cascade"},
		{"tiny default size", "window: {defaultSize: {width: 10, height: 10}}", "window.defaultSize"},
		{"missing app id", "apps: [{kind: terminal, title: T, size: {width: 400, height: 300}}]", "apps"},
		{"unknown kind", "apps: [{id: x, kind: editor, title: T, size: {width: 400, height: 300}}]", "unknown window kind"},
		{"duplicate app", "apps: [{id: x, kind: terminal, title: T, size: {width: 400, height: 300}}, {id: x, kind: terminal, title: T, size: {width: 400, height: 300}}]", "duplicate app ID"},
		{"url on terminal", "apps: [{id: x, kind: terminal, title: T, size: {width: 400, height: 300}, url: a.com}]", "only valid for browser"},
		{"bad http addr", "server: {socket: /tmp/s, httpAddr: nope}", "server"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigFromBytes([]byte(tt.yaml), "yaml")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfigFromBytes_UnsupportedFormat(t *testing.T) {
	if _, err := LoadConfigFromBytes([]byte("x = 1"), "toml"); err == nil {
		t.Error("expected error for toml")
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "files:\n  tree: tree.yaml\nserver:\n  socket: /tmp/from-file.sock\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvSocket, "/tmp/from-env.sock")
	t.Setenv(EnvHTTPAddr, "127.0.0.1:9999")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Socket != "/tmp/from-env.sock" {
		t.Errorf("Socket = %q, want env override", cfg.Server.Socket)
	}
	if cfg.Server.HTTPAddr != "127.0.0.1:9999" {
		t.Errorf("HTTPAddr = %q, want env override", cfg.Server.HTTPAddr)
	}
	if cfg.Files.Tree != filepath.Join(dir, "tree.yaml") {
		t.Errorf("Files.Tree = %q, want it relative to the config", cfg.Files.Tree)
	}
}

func TestLoadConfig_MissingDefaultFallsBack(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvConfig, "")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if len(cfg.Apps) != 3 {
		t.Errorf("expected default config, got %+v", cfg)
	}
}

func TestResolvePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvConfig, "")

	if got, err := ResolvePath(""); err != nil || got != "" {
		t.Errorf("ResolvePath() with no files = %q, %v; want empty", got, err)
	}

	dir := filepath.Join(home, DefaultConfigDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	jsonPath := filepath.Join(dir, "config.json")
	if err := os.WriteFile(jsonPath, []byte(`{"settings":{"darkMode":true}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if got, _ := ResolvePath(""); got != jsonPath {
		t.Errorf("ResolvePath() = %q, want %q", got, jsonPath)
	}
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.Settings.DarkMode {
		t.Error("LoadConfig should read the JSON default")
	}

	yamlPath := filepath.Join(dir, DefaultConfigFile)
	if err := os.WriteFile(yamlPath, []byte("settings: {darkMode: false}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if got, _ := ResolvePath(""); got != yamlPath {
		t.Errorf("ResolvePath() = %q, want YAML first", got)
	}

	t.Setenv(EnvConfig, "/etc/desk.yaml")
	if got, _ := ResolvePath(""); got != "/etc/desk.yaml" {
		t.Errorf("ResolvePath() = %q, want env path", got)
	}
	if got, _ := ResolvePath("explicit.json"); got != "explicit.json" {
		t.Errorf("ResolvePath(explicit) = %q", got)
	}
}

func TestConfigTree(t *testing.T) {
	cfg := DefaultConfig()
	tree, err := cfg.Tree()
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if _, ok := tree.Find("readme"); !ok {
		t.Error("built-in tree should contain readme")
	}

	cfg.Files.Tree = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := cfg.Tree(); err == nil {
		t.Error("expected error for a missing tree file")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.DarkMode = true

	for _, format := range []string{"yaml", "json"} {
		data, err := cfg.Marshal(format)
		if err != nil {
			t.Fatalf("Marshal(%s) error = %v", format, err)
		}
		back, err := LoadConfigFromBytes(data, format)
		if err != nil {
			t.Fatalf("reload %s: %v", format, err)
		}
		if !back.Settings.DarkMode || back.Server.Socket != cfg.Server.Socket {
			t.Errorf("%s round trip lost settings: %+v", format, back)
		}
	}
}

func TestWatch_Reloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("settings: {darkMode: false}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, path, func(c *Config) { got <- c }) }()

	// Give the watcher time to register before writing
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("settings: {darkMode: true}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-got:
		if !cfg.Settings.DarkMode {
			t.Error("reloaded config should have darkMode on")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload observed")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned %v", err)
	}
}
