package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunSafely_ReturnsRunnerExitCode(t *testing.T) {
	t.Parallel()

	var errOut bytes.Buffer

	code := runSafely([]string{"a"}, func(args []string) int {
		assert.Equal(t, []string{"a"}, args)

		return 3
	}, &errOut)

	assert.Equal(t, 3, code)
	assert.Empty(t, errOut.String())
}

func TestRunSafely_RecoversPanics(t *testing.T) {
	t.Parallel()

	var errOut bytes.Buffer

	code := runSafely(nil, func([]string) int {
		panic("boom 100%")
	}, &errOut)

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "panic recovered: boom 100%")
}

func TestRunWithArgs_Version(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, runWithArgs(context.Background(), []string{"--version"}))
}

func TestRunWithArgs_UnknownCommand(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, runWithArgs(context.Background(), []string{"no-such-command"}))
}
