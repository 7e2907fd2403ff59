package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Autostart registers the application to start with the user session.
type Autostart struct {
	appName  string
	execPath string
	logger   zerolog.Logger
}

// NewAutostart targets the running executable.
func NewAutostart(appName string, logger zerolog.Logger) (*Autostart, error) {
	if strings.TrimSpace(appName) == "" {
		return nil, fmt.Errorf("autostart: app name is empty")
	}
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("autostart: resolve executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}
	return &Autostart{
		appName:  appName,
		execPath: execPath,
		logger:   logger.With().Str("component", "autostart").Logger(),
	}, nil
}

// Apply enables or disables autostart to match the setting.
func (autostart *Autostart) Apply(enabled bool) error {
	if enabled {
		if err := enableAutostart(autostart.appName, autostart.execPath); err != nil {
			return err
		}
		autostart.logger.Debug().Str("exec", autostart.execPath).Msg("Autostart enabled")
		return nil
	}
	if err := disableAutostart(autostart.appName); err != nil {
		return err
	}
	autostart.logger.Debug().Msg("Autostart disabled")
	return nil
}

// Enabled reports whether an autostart entry exists.
func (autostart *Autostart) Enabled() bool {
	return autostartEnabled(autostart.appName)
}

// userConfigDir returns the OS configuration directory, falling back to the
// conventional location under the home directory.
func userConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// slug lower-cases name and replaces spaces for use in file names and labels.
func slug(appName string) string {
	name := strings.ToLower(strings.TrimSpace(appName))
	if name == "" {
		name = "mindfulpause"
	}
	return strings.ReplaceAll(name, " ", "-")
}
