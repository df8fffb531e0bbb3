package config

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/bcbpscan/internal/specs"
)

// DefaultListenAddr is where `serve` listens when nothing else is set.
const DefaultListenAddr = ":8080"

// Config holds all runtime configuration for a bcbpscan run.
type Config struct {
	DSN          string
	FilePath     string
	OutPath      string
	LogFormat    string // "text" or "json"
	ListenAddr   string
	AirportsFile string
	CitiesFile   string
	Force        bool
	KeepStaging  bool
	FormatCodes  []string // accepted format code values; empty means all known
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	FormatCodes  []string `yaml:"format_codes"`
	AirportsFile string   `yaml:"airports_file"`
	CitiesFile   string   `yaml:"cities_file"`
	ListenAddr   string   `yaml:"listen_addr"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// Values already set from flags win over the file.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if len(c.FormatCodes) == 0 {
		c.FormatCodes = yc.FormatCodes
	}
	c.AirportsFile = orDefault(c.AirportsFile, yc.AirportsFile)
	c.CitiesFile = orDefault(c.CitiesFile, yc.CitiesFile)
	c.ListenAddr = orDefault(c.ListenAddr, yc.ListenAddr)
	return c.validateFormatCodes()
}

// ApplyDefaults fills in anything neither flags nor a config file set.
func (c *Config) ApplyDefaults() error {
	c.ListenAddr = orDefault(c.ListenAddr, DefaultListenAddr)
	return c.validateFormatCodes()
}

// validateFormatCodes checks that every entry in FormatCodes is a known
// format code value. If FormatCodes is empty, it defaults to every known value.
func (c *Config) validateFormatCodes() error {
	if len(c.FormatCodes) == 0 {
		for _, fc := range specs.FormatCodes() {
			if fc != specs.FormatUnknown {
				c.FormatCodes = append(c.FormatCodes, fc.Value())
			}
		}
		return nil
	}
	for _, v := range c.FormatCodes {
		if specs.ParseFormatCode(v) == specs.FormatUnknown {
			return fmt.Errorf("unknown format code %q in config", v)
		}
	}
	return nil
}

// AcceptsFormat reports whether passes with this format code should be loaded.
func (c *Config) AcceptsFormat(fc specs.FormatCode) bool {
	if len(c.FormatCodes) == 0 {
		return fc != specs.FormatUnknown
	}
	return slices.Contains(c.FormatCodes, fc.Value()) && fc != specs.FormatUnknown
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	if (c.AirportsFile == "") != (c.CitiesFile == "") {
		return fmt.Errorf("--airports and --cities must be set together")
	}
	return nil
}

// ValidateWithDSN checks both file and DSN fields.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or BCBP_DB_URL is required")
	}
	return nil
}

// ValidateExport checks the input file and the Parquet output path.
func (c *Config) ValidateExport() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.OutPath == "" {
		return fmt.Errorf("--out is required")
	}
	return nil
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
