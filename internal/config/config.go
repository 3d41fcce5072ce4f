// Package config loads dashboard settings from an optional YAML file
// with PITWALL_* environment overrides on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is consulted when no config path is given explicitly.
const DefaultFile = "pitwall.yaml"

type Config struct {
	// DataDir holds the current document files (schedule.json,
	// overlay.json).
	DataDir string `yaml:"data_dir"`
	// CommitLogPath is the sqlite commit log. Defaults to
	// <data_dir>/commits.db.
	CommitLogPath string `yaml:"commit_log_path"`
	// ListenAddr is the HTTP API bind address.
	ListenAddr string `yaml:"listen_addr"`
	// DisplayTimezone is the countdown display zone, venue times stay
	// venue-local regardless.
	DisplayTimezone string `yaml:"display_timezone"`
	// AllowedOperators gates mutations. Empty leaves the gate open.
	AllowedOperators []string `yaml:"allowed_operators"`
	// RemotePath is the default sync remote (another commit log file).
	RemotePath string `yaml:"remote_path"`
}

// Merge overlays non-empty override fields onto c.
func (c Config) Merge(override Config) Config {
	result := c
	if strings.TrimSpace(override.DataDir) != "" {
		result.DataDir = strings.TrimSpace(override.DataDir)
	}
	if strings.TrimSpace(override.CommitLogPath) != "" {
		result.CommitLogPath = strings.TrimSpace(override.CommitLogPath)
	}
	if strings.TrimSpace(override.ListenAddr) != "" {
		result.ListenAddr = strings.TrimSpace(override.ListenAddr)
	}
	if strings.TrimSpace(override.DisplayTimezone) != "" {
		result.DisplayTimezone = strings.TrimSpace(override.DisplayTimezone)
	}
	if len(override.AllowedOperators) > 0 {
		result.AllowedOperators = override.AllowedOperators
	}
	if strings.TrimSpace(override.RemotePath) != "" {
		result.RemotePath = strings.TrimSpace(override.RemotePath)
	}
	return result
}

// Load builds the effective config: YAML file (explicit path, then
// PITWALL_CONFIG, then ./pitwall.yaml if present), then environment,
// then defaults.
func Load(path string) (Config, error) {
	cfg := Config{}

	if path == "" {
		path = strings.TrimSpace(os.Getenv("PITWALL_CONFIG"))
	}
	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		fileCfg, err := loadFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = cfg.Merge(fileCfg)
	}

	cfg = cfg.Merge(loadEnv())
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.CommitLogPath == "" {
		c.CommitLogPath = filepath.Join(c.DataDir, "commits.db")
	}
	if c.ListenAddr == "" {
		c.ListenAddr = ":5000"
	}
	if c.DisplayTimezone == "" {
		c.DisplayTimezone = "UTC"
	}
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func loadEnv() Config {
	cfg := Config{
		DataDir:         os.Getenv("PITWALL_DATA_DIR"),
		CommitLogPath:   os.Getenv("PITWALL_DB_PATH"),
		ListenAddr:      os.Getenv("PITWALL_ADDR"),
		DisplayTimezone: os.Getenv("PITWALL_DISPLAY_TZ"),
		RemotePath:      os.Getenv("PITWALL_REMOTE"),
	}
	if ops := strings.TrimSpace(os.Getenv("PITWALL_OPERATORS")); ops != "" {
		for _, op := range strings.Split(ops, ",") {
			if op = strings.TrimSpace(op); op != "" {
				cfg.AllowedOperators = append(cfg.AllowedOperators, op)
			}
		}
	}
	return cfg
}
