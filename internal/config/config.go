// Package config loads and saves cashplan configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all cashplan configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Display DisplayConfig `toml:"display"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	PlanPath   string `toml:"plan_path,omitempty"`
	DataDir    string `toml:"data_dir,omitempty"`
	WindowDays int    `toml:"window_days"`
}

// DisplayConfig holds rendering preferences.
type DisplayConfig struct {
	Currency string `toml:"currency"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			WindowDays: 14,
		},
		Display: DisplayConfig{
			Currency: "$",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cashplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "cashplan")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// PlanPath resolves the plan file location: explicit config value
// first, then the default under the config dir.
func PlanPath(cfg Config) string {
	if cfg.General.PlanPath != "" {
		return cfg.General.PlanPath
	}
	return filepath.Join(Dir(), "plan.toml")
}

// DataDir resolves the data directory holding the transaction store.
func DataDir(cfg Config) string {
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "cashplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "cashplan")
}

// StorePath returns the transaction database path.
func StorePath(cfg Config) string {
	return filepath.Join(DataDir(cfg), "transactions.db")
}
