package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sadopc/peakr/internal/store"
)

// MaxReportDays is the widest report window the reports view can chart.
const MaxReportDays = 31

type Config struct {
	DBPath         string    `yaml:"db_path" json:"db_path"`
	Log            LogConfig `yaml:"log" json:"log"`
	SeedOnFirstRun bool      `yaml:"seed_on_first_run" json:"seed_on_first_run"`
	ExportDir      string    `yaml:"export_dir" json:"export_dir"`
	ReportDays     int       `yaml:"report_days" json:"report_days"`
}

type LogConfig struct {
	// Mode is "dev" or "prod".
	Mode string `yaml:"mode" json:"mode"`
	File string `yaml:"file" json:"file"`
}

// DefaultPath returns ~/.config/peakr/config.yaml
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "peakr", "config.yaml"), nil
}

func (l *LogConfig) ApplyDefaults(dbPath string) {
	if l.Mode == "" {
		l.Mode = "dev"
	}
	if l.File == "" && dbPath != "" {
		l.File = filepath.Join(filepath.Dir(dbPath), "peakr.log")
	}
}

func (c *Config) ApplyDefaults() {
	if c.DBPath == "" {
		if p, err := store.DefaultDBPath(); err == nil {
			c.DBPath = p
		}
	}
	c.Log.ApplyDefaults(c.DBPath)
	if c.ExportDir == "" {
		c.ExportDir = "."
	}
	if c.ReportDays <= 0 {
		c.ReportDays = 7
	}
	if c.ReportDays > MaxReportDays {
		c.ReportDays = MaxReportDays
	}
}

// Load reads the YAML file at path. A missing file is not an error; the
// defaults are returned instead. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	c.ApplyEnv()
	c.ApplyDefaults()
	return &c, nil
}

// Save writes c as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
