package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// UIMode selects the presentation adapter started by the bare command
type UIMode string

const (
	UIModeAuto UIMode = "auto" // tui on a terminal, console menu otherwise
	UIModeTUI  UIMode = "tui"
	UIModeMenu UIMode = "menu"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	UI       UIConfig       `mapstructure:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DatabaseConfig holds the catalog location
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	Mode UIMode `mapstructure:"mode"`
	Sort string `mapstructure:"sort"` // default listing sort field
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"` // "-" logs to stderr
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Mode: UIModeAuto,
			Sort: "title",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// dataDir returns the per-user data directory for the current OS
func dataDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "cinelog")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "cinelog")
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	return filepath.Join(dataDir(), "cinelog.log")
}

// DefaultDatabasePath is the location offered when creating a new catalog
func DefaultDatabasePath() string {
	return filepath.Join(dataDir(), "movies.db")
}

// DefaultConfigDir returns the default config directory for the current OS
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "cinelog")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "cinelog")
	}
}

// LoadConfig loads configuration from the default directory and environment
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigDir())
}

// LoadConfigFrom loads config.yaml from dir (or the working directory) and
// applies CINELOG_* environment overrides, e.g. CINELOG_DATABASE_PATH.
func LoadConfigFrom(dir string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.AddConfigPath(".")

	// Defaults must be registered for AutomaticEnv to see the keys on Unmarshal
	v.SetDefault("database.path", cfg.Database.Path)
	v.SetDefault("ui.mode", string(cfg.UI.Mode))
	v.SetDefault("ui.sort", cfg.UI.Sort)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)

	v.SetEnvPrefix("CINELOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig saves the configuration to the default directory
func SaveConfig(cfg *Config) error {
	return SaveConfigTo(DefaultConfigDir(), cfg)
}

// SaveConfigTo writes cfg as dir/config.yaml
func SaveConfigTo(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("database.path", cfg.Database.Path)
	v.Set("ui.mode", string(cfg.UI.Mode))
	v.Set("ui.sort", cfg.UI.Sort)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate rejects settings the application cannot act on
func (c *Config) Validate() error {
	switch c.UI.Mode {
	case UIModeAuto, UIModeTUI, UIModeMenu:
	case "":
		c.UI.Mode = UIModeAuto
	default:
		return fmt.Errorf("invalid ui.mode %q (want auto, tui or menu)", c.UI.Mode)
	}
	return nil
}

// IsConfigured returns true if a database path is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.Database.Path) != ""
}
