// Package errorhandler runs the root command and turns cobra's error output into one
// readable error.
package errorhandler

import (
	"bytes"
	"context"
	"strings"

	"github.com/spf13/cobra"
)

// Normalizer cleans up what cobra wrote to stderr before it becomes an error message.
type Normalizer interface {
	Normalize(raw string) string
}

// Executor runs cobra commands with their error stream captured.
type Executor struct {
	normalizer Normalizer
}

// NewExecutor creates an Executor using DefaultNormalizer.
func NewExecutor() *Executor {
	return &Executor{normalizer: DefaultNormalizer{}}
}

// Execute runs cmd with ctx. On failure it returns a *CommandError carrying the normalized
// stderr output and the original error.
func (e *Executor) Execute(ctx context.Context, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	var errBuf bytes.Buffer

	originalErrWriter := cmd.ErrOrStderr()

	cmd.SetErr(&errBuf)
	defer cmd.SetErr(originalErrWriter)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	return &CommandError{message: e.normalizer.Normalize(errBuf.String()), cause: err}
}

// CommandError is a failed command execution.
type CommandError struct {
	message string
	cause   error
}

// Error implements the error interface. The normalized output is used when it already
// contains the cause.
func (e *CommandError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.cause == nil:
		return e.message
	case e.message == "":
		return e.cause.Error()
	case strings.Contains(e.message, e.cause.Error()):
		return e.message
	default:
		return e.message + ": " + e.cause.Error()
	}
}

// Unwrap returns the original error.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// DefaultNormalizer trims the output and removes cobra's "Error: " prefix from the first
// line, keeping usage hints on the following lines.
type DefaultNormalizer struct{}

// Normalize implements Normalizer.
func (DefaultNormalizer) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	first, rest, found := strings.Cut(trimmed, "\n")
	first = strings.TrimPrefix(strings.TrimSpace(first), "Error: ")

	if !found {
		return first
	}

	return first + "\n" + rest
}
