package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppName is used for the data directory, autostart entries and the instance lock.
const AppName = "MindfulPause"

// Config holds the application configuration. User-editable reminder
// settings live in the settings store, not here.
type Config struct {
	DataDir       string         `mapstructure:"data_dir"`
	Logging       LoggingConfig  `mapstructure:"logging"`
	Activity      ActivityConfig `mapstructure:"activity"`
	Warning       WarningConfig  `mapstructure:"warning"`
	Sound         SoundConfig    `mapstructure:"sound"`
	WatchSettings bool           `mapstructure:"watch_settings"`
}

// LoggingConfig defines logging behavior
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ActivityConfig tunes idle detection.
type ActivityConfig struct {
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// WarningConfig tunes the pre-break warning.
type WarningConfig struct {
	Postpone time.Duration `mapstructure:"postpone"`
}

// SoundConfig locates the cue sounds.
type SoundConfig struct {
	Dir string `mapstructure:"dir"`
}

// DefaultDataDir returns <UserConfigDir>/MindfulPause, or a relative
// directory when the user config dir is unknown.
func DefaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return AppName
	}
	return filepath.Join(base, AppName)
}

// DefaultConfigPath returns the config file looked up when none is given.
func DefaultConfigPath() string {
	return filepath.Join(DefaultDataDir(), "config.yaml")
}

// Load loads configuration from file and environment variables.
// A missing config file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath == "" {
		configPath = DefaultConfigPath()
	}
	v.SetConfigFile(configPath)
	v.SetEnvPrefix("MINDFULPAUSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", DefaultDataDir())

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("activity.idle_timeout", "30m")
	v.SetDefault("activity.poll_interval", "5s")

	v.SetDefault("warning.postpone", "5m")

	v.SetDefault("sound.dir", "")

	v.SetDefault("watch_settings", true)
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.DataDir) == "" {
		return fmt.Errorf("data_dir is required")
	}

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %q", cfg.Logging.Level)
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid logging format: %q", cfg.Logging.Format)
	}

	if cfg.Activity.IdleTimeout <= 0 {
		return fmt.Errorf("activity.idle_timeout must be positive, got %s", cfg.Activity.IdleTimeout)
	}
	if cfg.Activity.PollInterval <= 0 {
		return fmt.Errorf("activity.poll_interval must be positive, got %s", cfg.Activity.PollInterval)
	}
	if cfg.Warning.Postpone <= 0 {
		return fmt.Errorf("warning.postpone must be positive, got %s", cfg.Warning.Postpone)
	}

	if cfg.Sound.Dir == "" {
		cfg.Sound.Dir = filepath.Join(cfg.DataDir, "sound")
	}

	return nil
}
