// Package utils provides utility packages for common operations.
//
//   - envvar: ${VAR} expansion in configuration values
//   - notify: formatted message display with symbols, colors and timing
//   - timer: execution time tracking for multi-stage operations
package utils
