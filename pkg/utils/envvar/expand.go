// Package envvar expands ${VAR} placeholders in configuration values.
package envvar

import (
	"os"
	"regexp"
	"strings"
)

// pattern matches ${VAR_NAME} and ${VAR_NAME:-default}.
// Groups: 1 = variable name, 2 = optional default value.
var pattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(?::-([^}]*))?\}`)

const defaultSyntaxMarker = ":-"

// Expand replaces ${VAR_NAME} and ${VAR_NAME:-default} placeholders with their environment
// variable values. An unset variable without a default becomes an empty string.
func Expand(value string) string {
	if value == "" {
		return value
	}

	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		groups := pattern.FindStringSubmatch(match)

		if envValue, ok := os.LookupEnv(groups[1]); ok {
			return envValue
		}

		return groups[2]
	})
}

// Unset returns the variables referenced in value that are not set and have no default,
// in order of appearance.
func Unset(value string) []string {
	var names []string

	for _, groups := range pattern.FindAllStringSubmatch(value, -1) {
		if strings.Contains(groups[0], defaultSyntaxMarker) {
			continue
		}

		if _, ok := os.LookupEnv(groups[1]); !ok {
			names = append(names, groups[1])
		}
	}

	return names
}
