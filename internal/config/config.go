package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/desk-cli/internal/files"
	"github.com/yourusername/desk-cli/internal/launch"
	"github.com/yourusername/desk-cli/internal/layout"
)

const (
	DefaultConfigDir  = ".config/desk"
	DefaultConfigFile = "config.yaml"
	DefaultSocketFile = "desk.sock"

	// EnvSocket overrides server.socket
	EnvSocket = "DESK_SOCKET"
	// EnvHTTPAddr overrides server.httpAddr
	EnvHTTPAddr = "DESK_HTTP_ADDR"
	// EnvHTTPToken overrides server.token
	EnvHTTPToken = "DESK_HTTP_TOKEN"
	// EnvConfig overrides the config file path
	EnvConfig = "DESK_CONFIG"
)

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() *Config {
	policy := launch.DefaultPolicy()
	return &Config{
		Settings: Settings{LogLevel: "info"},
		Cascade:  layout.DefaultCascade(),
		Window:   WindowConfig{DefaultSize: policy.DefaultSize},
		Apps:     policy.Apps,
		Server:   ServerConfig{Socket: DefaultSocketPath()},
	}
}

// ResolvePath returns the config file LoadConfig(path) reads: path itself,
// then $DESK_CONFIG, then ~/.config/desk/config.yaml, then config.json.
// It returns "" when no explicit path is given and no default file exists.
func ResolvePath(path string) (string, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	for _, name := range []string{DefaultConfigFile, "config.json"} {
		candidate := filepath.Join(home, DefaultConfigDir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// LoadConfig loads configuration from the file ResolvePath picks, or
// DefaultConfig when there is none.
// Environment overrides are applied after the file is read.
func LoadConfig(path string) (*Config, error) {
	path, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}
	if path == "" {
		cfg := DefaultConfig()
		cfg.ApplyEnv()
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	cfg, err := parse(data, format)
	if err != nil {
		return nil, err
	}

	// A relative tree path is relative to the config file
	if cfg.Files.Tree != "" && !filepath.IsAbs(cfg.Files.Tree) {
		cfg.Files.Tree = filepath.Join(filepath.Dir(path), cfg.Files.Tree)
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadConfigFromBytes loads configuration from raw bytes
// format should be "yaml" or "json"
func LoadConfigFromBytes(data []byte, format string) (*Config, error) {
	cfg, err := parse(data, format)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// parse decodes data over DefaultConfig, so omitted sections keep defaults
func parse(data []byte, format string) (*Config, error) {
	cfg := DefaultConfig()

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	return cfg, nil
}

// ApplyEnv overrides listener addresses from the environment
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvSocket); v != "" {
		c.Server.Socket = v
	}
	if v := os.Getenv(EnvHTTPAddr); v != "" {
		c.Server.HTTPAddr = v
	}
	if v := os.Getenv(EnvHTTPToken); v != "" {
		c.Server.Token = v
	}
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
}

// DefaultSocketPath returns the socket path used when none is configured
func DefaultSocketPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, DefaultSocketFile)
	}
	return filepath.Join(os.TempDir(), DefaultSocketFile)
}

// Policy returns the launch policy described by the config
func (c *Config) Policy() launch.Policy {
	return launch.Policy{
		DefaultSize: c.Window.DefaultSize,
		Apps:        append([]launch.App(nil), c.Apps...),
	}
}

// Tree loads the configured file tree, or the built-in one
func (c *Config) Tree() (files.Tree, error) {
	if c.Files.Tree == "" {
		return files.DefaultTree(), nil
	}
	return files.LoadTree(c.Files.Tree)
}

// Marshal encodes the config in the given format
func (c *Config) Marshal(format string) ([]byte, error) {
	switch format {
	case "yaml", "yml":
		return yaml.Marshal(c)
	case "json":
		return json.MarshalIndent(c, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}
}
