package v1alpha1

import (
	"fmt"
	"strings"
)

// EnumValuer is implemented by string enums that list their valid values.
type EnumValuer interface {
	ValidValues() []string
}

// LogLevel is the verbosity of diagnostic logging.
type LogLevel string

const (
	// LogLevelError logs only errors.
	LogLevelError LogLevel = "error"
	// LogLevelWarn logs warnings and errors.
	LogLevelWarn LogLevel = "warn"
	// LogLevelInfo logs skipped artifacts and per-repository progress.
	LogLevelInfo LogLevel = "info"
	// LogLevelDebug logs every registry request.
	LogLevelDebug LogLevel = "debug"
)

// ValidLogLevels returns every supported log level.
func ValidLogLevels() []LogLevel {
	return []LogLevel{LogLevelError, LogLevelWarn, LogLevelInfo, LogLevelDebug}
}

// Set implements pflag.Value.
func (l *LogLevel) Set(value string) error {
	for _, level := range ValidLogLevels() {
		if strings.EqualFold(value, string(level)) {
			*l = level

			return nil
		}
	}

	return fmt.Errorf(
		"%w: %s (valid options: %s, %s, %s, %s)",
		ErrInvalidLogLevel,
		value,
		LogLevelError,
		LogLevelWarn,
		LogLevelInfo,
		LogLevelDebug,
	)
}

// String implements pflag.Value.
func (l *LogLevel) String() string {
	return string(*l)
}

// Type implements pflag.Value.
func (l *LogLevel) Type() string {
	return "LogLevel"
}

// ValidValues returns all valid LogLevel values as strings.
func (l *LogLevel) ValidValues() []string {
	levels := ValidLogLevels()
	values := make([]string, 0, len(levels))

	for _, level := range levels {
		values = append(values, string(level))
	}

	return values
}
