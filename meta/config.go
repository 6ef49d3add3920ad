package meta

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/coregx/luapat/backtrack"
)

// Config controls pattern limits and search optimization.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.MaxDepth = 1000 // allow deeper backtracking
//	engine, err := meta.Compile([]byte("(%w+)=(%w+)"), config)
type Config struct {
	// MaxCaptures is the maximum number of explicit captures a pattern may
	// open, positional ones included.
	// Default: 32
	MaxCaptures int `yaml:"max_captures"`

	// MaxDepth bounds the nesting of recursive matches in one attempt.
	// Patterns needing more fail with backtrack.ErrMatchDepthExceeded.
	// Default: 200
	MaxDepth int `yaml:"max_depth"`

	// EnablePrefilter enables literal extraction and candidate scanning.
	// Results are identical either way.
	// Default: true
	EnablePrefilter bool `yaml:"enable_prefilter"`

	// MaxLiterals limits the number of alternative prefix literals.
	// Default: 64
	MaxLiterals int `yaml:"max_literals"`

	// MaxLiteralLen limits the length of each prefix literal.
	// Default: 32
	MaxLiteralLen int `yaml:"max_literal_len"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxCaptures:     backtrack.DefaultMaxCaptures,
		MaxDepth:        backtrack.DefaultMaxDepth,
		EnablePrefilter: true,
		MaxLiterals:     64,
		MaxLiteralLen:   32,
	}
}

// Validate checks the configuration and returns a *ConfigError for the
// first field out of range.
func (c Config) Validate() error {
	if c.MaxCaptures < 1 || c.MaxCaptures > 255 {
		return &ConfigError{Field: "MaxCaptures", Message: "must be between 1 and 255"}
	}
	if c.MaxDepth < 10 || c.MaxDepth > 100_000 {
		return &ConfigError{Field: "MaxDepth", Message: "must be between 10 and 100,000"}
	}
	if c.EnablePrefilter {
		if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
			return &ConfigError{Field: "MaxLiterals", Message: "must be between 1 and 1,000"}
		}
		if c.MaxLiteralLen < 1 || c.MaxLiteralLen > 256 {
			return &ConfigError{Field: "MaxLiteralLen", Message: "must be between 1 and 256"}
		}
	}
	return nil
}

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "luapat: invalid config: " + e.Field + ": " + e.Message
}

// LoadConfig reads a YAML configuration from r. Fields left out keep their
// defaults, unknown fields are rejected and the result is validated. An
// empty document yields DefaultConfig.
//
// Example document:
//
//	max_depth: 1000
//	enable_prefilter: false
func LoadConfig(r io.Reader) (Config, error) {
	config := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("luapat: decode config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}
