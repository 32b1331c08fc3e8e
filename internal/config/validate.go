package config

import (
	"errors"
	"fmt"
	"net"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/yourusername/desk-cli/internal/launch"
	"github.com/yourusername/desk-cli/internal/logging"
	"github.com/yourusername/desk-cli/internal/types"
)

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if err := c.Settings.Validate(); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	if err := validation.ValidateStruct(&c.Cascade,
		validation.Field(&c.Cascade.Step, validation.Min(0)),
		validation.Field(&c.Cascade.Slots, validation.Required, validation.Min(1)),
	); err != nil {
		return fmt.Errorf("cascade: %w", err)
	}
	if err := validateSize(c.Window.DefaultSize); err != nil {
		return fmt.Errorf("window.defaultSize: %w", err)
	}
	if err := validateApps(c.Apps); err != nil {
		return fmt.Errorf("apps: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// Validate checks the settings section
func (s *Settings) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.LogLevel, validation.By(func(v any) error {
			_, err := logging.ParseLevel(v.(string))
			return err
		})),
	)
}

// Validate checks the server section
func (s *ServerConfig) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Socket, validation.Required),
		validation.Field(&s.HTTPAddr, validation.By(func(v any) error {
			addr := v.(string)
			if addr == "" {
				return nil
			}
			if _, _, err := net.SplitHostPort(addr); err != nil {
				return errors.New("must be host:port")
			}
			return nil
		})),
	)
}

func validateSize(s types.Size) error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Width, validation.Required, validation.Min(types.MinWindowWidth)),
		validation.Field(&s.Height, validation.Required, validation.Min(types.MinWindowHeight)),
	)
}

func validateApps(apps []launch.App) error {
	ids := make(map[string]bool)
	for i, app := range apps {
		if err := validation.ValidateStruct(&app,
			validation.Field(&app.ID, validation.Required),
			validation.Field(&app.Title, validation.Required),
			validation.Field(&app.Kind, validation.Required, validation.By(func(v any) error {
				if _, ok := types.ParseWindowKind(string(v.(types.WindowKind))); !ok {
					return fmt.Errorf("unknown window kind %q", v)
				}
				return nil
			})),
		); err != nil {
			return fmt.Errorf("app %d: %w", i, err)
		}
		if ids[app.ID] {
			return fmt.Errorf("duplicate app ID: %s", app.ID)
		}
		ids[app.ID] = true

		if err := validateSize(app.Size); err != nil {
			return fmt.Errorf("app %s size: %w", app.ID, err)
		}
		if app.URL != "" && app.Kind != types.KindBrowser {
			return fmt.Errorf("app %s: url is only valid for browser apps", app.ID)
		}
	}
	return nil
}
