// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Environment variables that override file and default values
const (
	EnvMaxFileSize   = "RESUME_PARSER_MAX_FILE_SIZE"
	EnvMinTextLength = "RESUME_PARSER_MIN_TEXT_LENGTH"
	EnvConcurrency   = "RESUME_PARSER_CONCURRENCY"
)

// Output modes for extracted documents
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; zero values are filled from Defaults.
type Config struct {
	// Upload limits
	MaxFileSize   int64 `json:"max_file_size,omitempty" validate:"gte=0"`   // Bytes; uploads above this are rejected
	MinTextLength int   `json:"min_text_length,omitempty" validate:"gte=0"` // Minimum trimmed characters of extracted text

	// Batch behavior
	Concurrency int    `json:"concurrency,omitempty" validate:"omitempty,min=1,max=64"` // Files extracted in parallel
	Output      string `json:"output,omitempty" validate:"omitempty,oneof=text json"`   // text or json
	OutDir      string `json:"out_dir,omitempty"`                                       // Write <name>.txt and <name>.meta.json here instead of stdout

	// Logging
	Debug    bool `json:"debug,omitempty"`     // Log at debug level
	JSONLogs bool `json:"json_logs,omitempty"` // Emit JSON log lines
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		MaxFileSize:   10 * 1024 * 1024,
		MinTextLength: 10,
		Concurrency:   4,
		Output:        OutputText,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.MaxFileSize == 0 {
		result.MaxFileSize = defaults.MaxFileSize
	}
	if result.MinTextLength == 0 {
		result.MinTextLength = defaults.MinTextLength
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.OutDir == "" {
		result.OutDir = defaults.OutDir
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv overrides numeric limits from the environment.
// Unset or unparsable variables leave the current value in place, as does a
// concurrency below 1.
func (c *Config) ApplyEnv() {
	c.MaxFileSize = getEnvInt64(EnvMaxFileSize, c.MaxFileSize)
	c.MinTextLength = int(getEnvInt64(EnvMinTextLength, int64(c.MinTextLength)))
	if n := getEnvInt64(EnvConcurrency, int64(c.Concurrency)); n >= 1 {
		c.Concurrency = int(n)
	}
}

// getEnvInt64 gets an environment variable as an integer with a default value
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
