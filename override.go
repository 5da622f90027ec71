package syslog

import (
	"fmt"
	"strconv"
	"strings"
)

// ApplyOverride applies string key-value overrides to the logger's current configuration.
// Each override should be in the format "key=value".
//
// Example:
//
//	logger := syslog.NewLogger()
//	err := logger.ApplyOverride(
//	    "file_name=/var/log/app-%f.log",
//	    "file_level=debug",
//	    "max_file_size=1048576",
//	)
func (l *Logger) ApplyOverride(overrides ...string) error {
	cfg := l.Config()

	var errors []error

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errors = append(errors, err)
			continue
		}

		if err := applyConfigField(cfg, key, value); err != nil {
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return combineConfigErrors(errors)
	}

	return l.ApplyConfig(cfg)
}

// combineConfigErrors combines multiple configuration errors into a single error.
func combineConfigErrors(errors []error) error {
	if len(errors) == 0 {
		return nil
	}
	if len(errors) == 1 {
		return errors[0]
	}

	var sb strings.Builder
	sb.WriteString("syslog: multiple configuration errors:")
	for i, err := range errors {
		errMsg := strings.TrimPrefix(err.Error(), "syslog: ")
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return fmt.Errorf("%s", sb.String())
}

// applyConfigField applies a single key-value override to a Config.
func applyConfigField(cfg *Config, key, value string) error {
	switch key {
	case "console_level":
		level, err := parseLevelValue(key, value)
		if err != nil {
			return err
		}
		cfg.ConsoleLevel = level
	case "file_level":
		level, err := parseLevelValue(key, value)
		if err != nil {
			return err
		}
		cfg.FileLevel = level

	case "file_name":
		cfg.FileName = value
	case "old_files_pattern":
		cfg.OldFilesPattern = value
	case "max_file_size":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for max_file_size '%s': %w", value, err)
		}
		cfg.MaxFileSize = intVal
	case "max_files":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for max_files '%s': %w", value, err)
		}
		cfg.MaxFiles = intVal
	case "compression":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for compression '%s': %w", value, err)
		}
		cfg.Compression = boolVal
	case "compression_codec":
		cfg.CompressionCodec = value
	case "header":
		cfg.Header = value

	case "include_source_location":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for include_source_location '%s': %w", value, err)
		}
		cfg.IncludeSourceLocation = boolVal

	case "console_target":
		cfg.ConsoleTarget = value
	case "console_color":
		cfg.ConsoleColor = value

	case "stack_trace_depth":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for stack_trace_depth '%s': %w", value, err)
		}
		cfg.StackTraceDepth = intVal

	case "internal_errors_to_stderr":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for internal_errors_to_stderr '%s': %w", value, err)
		}
		cfg.InternalErrorsToStderr = boolVal

	default:
		return fmtErrorf("unknown configuration key '%s'", key)
	}

	return nil
}

// parseLevelValue accepts both numeric and keyword levels.
func parseLevelValue(key, value string) (int64, error) {
	if numVal, err := strconv.ParseInt(value, 10, 64); err == nil {
		return numVal, nil
	}
	level, err := Level(value)
	if err != nil {
		return 0, fmtErrorf("invalid %s value '%s': %w", key, value, err)
	}
	return level, nil
}
