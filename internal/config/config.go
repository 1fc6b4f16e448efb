// Package config provides configuration management for the listing generator.
package config

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingInputFile = errors.New("input.file is required")
	ErrMissingOutputDir = errors.New("output.dir is required")
	ErrInvalidDelimiter = errors.New("input.delimiter must be a single character other than quote or newline")
	ErrInvalidLogLevel  = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Defaults used when neither the config file nor the environment set a value.
const (
	DefaultInputFile = "ebay_vorlage_kompletträder.csv"
	DefaultOutputDir = "output"
	DefaultDelimiter = ","
	DefaultLogLevel  = "info"
)

// Environment variables that override file values.
const (
	EnvInputFile = "LISTER_INPUT"
	EnvOutputDir = "LISTER_OUTPUT_DIR"
	EnvLogLevel  = "LISTER_LOG_LEVEL"
	EnvDelimiter = "LISTER_DELIMITER"
)

// Config represents the complete generator configuration.
type Config struct {
	Lister ListerConfig `yaml:"lister"`
}

// ListerConfig contains the generator settings.
type ListerConfig struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Report  ReportConfig  `yaml:"report"`
}

// InputConfig describes the CSV source.
type InputConfig struct {
	File      string `yaml:"file"`
	Delimiter string `yaml:"delimiter"`
}

// OutputConfig defines where listings are written.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ReportConfig controls the console summary.
type ReportConfig struct {
	ShowTable bool `yaml:"show_table"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Lister: ListerConfig{
			Input:   InputConfig{File: DefaultInputFile, Delimiter: DefaultDelimiter},
			Output:  OutputConfig{Dir: DefaultOutputDir},
			Logging: LoggingConfig{Level: DefaultLogLevel},
			Report:  ReportConfig{ShowTable: true},
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults.
// The result is not validated; callers apply their overrides and then call Validate.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv loads envFiles (a missing file is not an error; none means ".env")
// and overrides settings from LISTER_* variables.
func (c *Config) ApplyEnv(envFiles ...string) error {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}

		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}

	c.Lister.Input.File = getEnv(EnvInputFile, c.Lister.Input.File)
	c.Lister.Input.Delimiter = getEnv(EnvDelimiter, c.Lister.Input.Delimiter)
	c.Lister.Output.Dir = getEnv(EnvOutputDir, c.Lister.Output.Dir)
	c.Lister.Logging.Level = getEnv(EnvLogLevel, c.Lister.Logging.Level)

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Lister.Input.File == "" {
		return ErrMissingInputFile
	}

	if c.Lister.Output.Dir == "" {
		return ErrMissingOutputDir
	}

	if _, err := parseDelimiter(c.Lister.Input.Delimiter); err != nil {
		return err
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Lister.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// DelimiterRune returns the configured field separator, ',' when unset.
func (c *Config) DelimiterRune() (rune, error) {
	return parseDelimiter(c.Lister.Input.Delimiter)
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Input: %s, Delimiter: %q, Output: %s, LogLevel: %s}",
		c.Lister.Input.File,
		c.Lister.Input.Delimiter,
		c.Lister.Output.Dir,
		c.Lister.Logging.Level,
	)
}

func parseDelimiter(s string) (rune, error) {
	if s == "" {
		return ',', nil
	}

	if utf8.RuneCountInString(s) != 1 {
		return 0, ErrInvalidDelimiter
	}

	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, ErrInvalidDelimiter
	}

	return r, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}
