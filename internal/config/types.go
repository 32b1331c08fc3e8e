package config

import (
	"github.com/yourusername/desk-cli/internal/launch"
	"github.com/yourusername/desk-cli/internal/layout"
	"github.com/yourusername/desk-cli/internal/types"
)

// Config is the root configuration structure
type Config struct {
	Settings Settings       `yaml:"settings" json:"settings"`
	Cascade  layout.Cascade `yaml:"cascade" json:"cascade"`
	Window   WindowConfig   `yaml:"window" json:"window"`
	Apps     []launch.App   `yaml:"apps" json:"apps"`
	Files    FilesConfig    `yaml:"files" json:"files"`
	Server   ServerConfig   `yaml:"server" json:"server"`
}

// Settings contains global application settings
type Settings struct {
	DarkMode bool   `yaml:"darkMode" json:"darkMode"`
	LogLevel string `yaml:"logLevel" json:"logLevel"`
	LogFile  string `yaml:"logFile,omitempty" json:"logFile,omitempty"`
}

// WindowConfig holds defaults for new windows
type WindowConfig struct {
	DefaultSize types.Size `yaml:"defaultSize" json:"defaultSize"` // Size of windows opened from files
}

// FilesConfig points at an alternative file tree
type FilesConfig struct {
	Tree string `yaml:"tree,omitempty" json:"tree,omitempty"` // YAML seed file; empty uses the built-in tree
}

// ServerConfig holds daemon listener addresses
type ServerConfig struct {
	Socket   string `yaml:"socket" json:"socket"`
	HTTPAddr string `yaml:"httpAddr,omitempty" json:"httpAddr,omitempty"` // Empty disables the HTTP API
	Token    string `yaml:"token,omitempty" json:"token,omitempty"`       // Bearer token for the HTTP API; empty disables auth
}
