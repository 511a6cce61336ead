package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

type Config struct {
	AutosaveDelay string `toml:"autosave_delay"`
	ExportDir     string `toml:"export_dir"`
	Environment   string `toml:"environment"`
	BasePath      string `toml:"base_path"`
	LogLevel      string `toml:"log_level"`
}

func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		AutosaveDelay: "2s",
		ExportDir:     filepath.Join(homeDir, "Documents", "storyboard"),
		Environment:   EnvProduction,
		BasePath:      "/storyboard",
		LogLevel:      "info",
	}
}

// Dir is the root of everything storyboard writes. STORYBOARD_HOME overrides it.
func Dir() (string, error) {
	if dir := os.Getenv("STORYBOARD_HOME"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".storyboard"), nil
}

func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func DatabasePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "db", "storyboard.sqlite"), nil
}

func LogPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "storyboard.log"), nil
}

func EnsureDirectories() error {
	dir, err := Dir()
	if err != nil {
		return err
	}

	// db/ lives under the main directory, so one MkdirAll covers both
	return os.MkdirAll(filepath.Join(dir, "db"), 0755)
}

func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(configPath)
}

// LoadFile reads the config at path, writing defaults there first if it does not exist.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
		if err := SaveFile(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	cfg.ExportDir = expandPath(cfg.ExportDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(cfg *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(configPath, cfg)
}

func SaveFile(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

func (c *Config) Validate() error {
	if _, err := c.Autosave(); err != nil {
		return err
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: unsupported value %q", c.LogLevel)
	}
	switch c.Environment {
	case "", EnvProduction, EnvDevelopment:
	default:
		return fmt.Errorf("environment: unsupported value %q", c.Environment)
	}
	return nil
}

// Autosave returns the quiescence window before an edited project is persisted.
func (c *Config) Autosave() (time.Duration, error) {
	if c.AutosaveDelay == "" {
		return 2 * time.Second, nil
	}
	d, err := time.ParseDuration(c.AutosaveDelay)
	if err != nil {
		return 0, fmt.Errorf("autosave_delay: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("autosave_delay: must be positive, got %s", d)
	}
	return d, nil
}

// PathPrefix is the sub-path the planner is served from. Only production builds use one.
func (c *Config) PathPrefix() string {
	if c.Environment == EnvDevelopment {
		return ""
	}
	return c.BasePath
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
