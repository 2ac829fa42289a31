// Package cli provides the command wiring and execution helpers.
//
//   - cli/cmd: the cobra commands
//   - cli/parallel: parallel task execution with controlled concurrency
//   - cli/ui/errorhandler: root command execution with normalized error output
package cli
