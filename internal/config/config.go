package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all satradar configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Scan window and oracle settings
	Scan ScanConfig `yaml:"scan"`

	// Discovery log harvesting
	Harvest HarvestConfig `yaml:"harvest"`

	// Catalog storage
	Catalog CatalogConfig `yaml:"catalog"`

	// Figure rendering
	Figures FiguresConfig `yaml:"figures"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ScanConfig configures the satellite scan.
type ScanConfig struct {
	// Radius is the largest gap scanned below P. Positive and even.
	Radius int `yaml:"radius"`

	// Exponent q of the derived value P = n^q - (n-1)^q.
	Exponent uint `yaml:"exponent"`

	// Rounds is the Miller-Rabin round count handed to the oracle.
	Rounds int `yaml:"rounds"`

	// Workers sizes the scan pool. Zero means one worker per CPU.
	Workers int `yaml:"workers"`

	// Timeout bounds a whole scan. Zero means no deadline.
	Timeout string `yaml:"timeout"`
}

// HarvestConfig configures discovery log harvesting.
type HarvestConfig struct {
	// Dir is scanned for *.log, *.txt and *.html discovery reports.
	Dir string `yaml:"dir"`

	// Pattern overrides the discovery regexp. Empty keeps the default.
	Pattern string `yaml:"pattern"`
}

// CatalogConfig configures satellite storage.
type CatalogConfig struct {
	DatabasePath string `yaml:"database_path"`
	CSVPath      string `yaml:"csv_path"`
}

// FiguresConfig configures figure rendering.
type FiguresConfig struct {
	OutDir string `yaml:"out_dir"`
	DPI    int    `yaml:"dpi"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
	File   string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "satradar",
		Version: "3.0.0",

		Scan: ScanConfig{
			Radius:   5000,
			Exponent: 47,
			Rounds:   25,
			Workers:  0,
			Timeout:  "0s",
		},

		Harvest: HarvestConfig{
			Dir: ".",
		},

		Catalog: CatalogConfig{
			DatabasePath: "data/satradar.db",
			CSVPath:      "data/satellites.csv",
		},

		Figures: FiguresConfig{
			OutDir: "figures",
			DPI:    300,
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			File:   "satradar.log",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("SATRADAR_DB"); path != "" {
		c.Catalog.DatabasePath = path
	}
	if path := os.Getenv("SATRADAR_CSV"); path != "" {
		c.Catalog.CSVPath = path
	}
	if dir := os.Getenv("SATRADAR_HARVEST_DIR"); dir != "" {
		c.Harvest.Dir = dir
	}
	if dir := os.Getenv("SATRADAR_FIGURES_DIR"); dir != "" {
		c.Figures.OutDir = dir
	}
	if level := os.Getenv("SATRADAR_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// GetScanTimeout returns the scan timeout as a duration. Zero means no
// deadline.
func (c *Config) GetScanTimeout() time.Duration {
	d, err := time.ParseDuration(c.Scan.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// ValidLogLevels lists all supported logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Scan.Radius < 2 || c.Scan.Radius%2 != 0 {
		return fmt.Errorf("scan radius must be a positive even integer, got %d", c.Scan.Radius)
	}
	if c.Scan.Exponent < 1 {
		return fmt.Errorf("scan exponent must be >= 1, got %d", c.Scan.Exponent)
	}
	if c.Scan.Rounds < 1 {
		return fmt.Errorf("oracle rounds must be >= 1, got %d", c.Scan.Rounds)
	}
	if c.Scan.Workers < 0 {
		return fmt.Errorf("scan workers must be >= 0, got %d", c.Scan.Workers)
	}
	if c.Figures.DPI < 1 {
		return fmt.Errorf("figure DPI must be >= 1, got %d", c.Figures.DPI)
	}

	validLevel := false
	for _, l := range ValidLogLevels {
		if c.Logging.Level == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}

	return nil
}
