package syslog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/lixenwraith/config"
)

// Config holds all logger configuration values
type Config struct {
	// Levels
	ConsoleLevel int64 `toml:"console_level"`
	FileLevel    int64 `toml:"file_level"` // 0 (none) disables file logging

	// File sink
	FileName         string `toml:"file_name"`         // Name template, see timefmt.TimeValue.ExpandTokens
	OldFilesPattern  string `toml:"old_files_pattern"` // Glob of files from earlier runs to count for retention
	MaxFileSize      int64  `toml:"max_file_size"`     // Bytes before rollover, 0 = unlimited
	MaxFiles         int64  `toml:"max_files"`         // Files kept on disk including the open one, 0 = unlimited
	Compression      bool   `toml:"compression"`       // Compress files once closed
	CompressionCodec string `toml:"compression_codec"` // "gzip" or "zstd"
	Header           string `toml:"header"`            // First line of every new file

	// Preamble
	IncludeSourceLocation bool `toml:"include_source_location"` // Append the 4-char location code

	// Console sink
	ConsoleTarget string `toml:"console_target"` // "stdout" or "stderr"
	ConsoleColor  string `toml:"console_color"`  // "auto", "always" or "never"

	// Stack traces
	StackTraceDepth int64 `toml:"stack_trace_depth"` // Default frame limit for LogStackTrace

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"` // Write internal errors to stderr
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	ConsoleLevel: LevelInfo,
	FileLevel:    LevelNone,

	FileName:         defaultFileName,
	OldFilesPattern:  "",
	MaxFileSize:      NoLimit,
	MaxFiles:         NoLimit,
	Compression:      false,
	CompressionCodec: "gzip",
	Header:           "",

	IncludeSourceLocation: false,

	ConsoleTarget: "stdout",
	ConsoleColor:  "never",

	StackTraceDepth: defaultStackTraceDepth,

	InternalErrorsToStderr: false,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	// Create a copy to prevent modifications to the original
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from the [log] table of a TOML file
// and returns a validated Config. A missing file yields the defaults.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Use lixenwraith/config as a loader
	loader := config.New()

	// Register the struct to enable proper unmarshaling
	if err := loader.RegisterStruct("log.", *cfg); err != nil {
		return nil, fmtErrorf("failed to register config struct: %w", err)
	}

	// Load from file (handles file not found gracefully)
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmtErrorf("failed to load config from %s: %w", path, err)
	}

	// Extract values into our Config struct
	if err := extractConfig(loader, "log.", cfg); err != nil {
		return nil, fmtErrorf("failed to extract config values: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies
// overrides keyed by toml tag.
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmtErrorf("failed to apply overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue // Use default value
		}

		if err := setFieldValue(v.Field(i), val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	fieldMap := make(map[string]reflect.Value)
	for i := 0; i < t.NumField(); i++ {
		if tomlTag := t.Field(i).Tag.Get("toml"); tomlTag != "" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion. Level
// fields also accept level keywords.
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		case string:
			level, err := Level(v)
			if err != nil {
				return err
			}
			field.SetInt(level)
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	var err error

	if c.ConsoleLevel < LevelNone || c.ConsoleLevel > LevelTrace {
		err = combineErrors(err, fmtErrorf("console_level out of range: %d", c.ConsoleLevel))
	}
	if c.FileLevel < LevelNone || c.FileLevel > LevelTrace {
		err = combineErrors(err, fmtErrorf("file_level out of range: %d", c.FileLevel))
	}

	if strings.TrimSpace(c.FileName) == "" {
		err = combineErrors(err, fmtErrorf("file_name cannot be empty"))
	}

	if c.MaxFileSize < 0 || c.MaxFiles < 0 {
		err = combineErrors(err, fmtErrorf("file limits cannot be negative"))
	}

	if _, cerr := compressorFor(c.CompressionCodec); cerr != nil {
		err = combineErrors(err, cerr)
	}

	if c.ConsoleTarget != "stdout" && c.ConsoleTarget != "stderr" {
		err = combineErrors(err, fmtErrorf("invalid console_target: '%s' (use stdout or stderr)", c.ConsoleTarget))
	}

	switch c.ConsoleColor {
	case "auto", "always", "never":
	default:
		err = combineErrors(err, fmtErrorf("invalid console_color: '%s' (use auto, always or never)", c.ConsoleColor))
	}

	if c.StackTraceDepth <= 0 {
		err = combineErrors(err, fmtErrorf("stack_trace_depth must be positive: %d", c.StackTraceDepth))
	}

	return err
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}
