package notify_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/devantler-tech/harborsync/pkg/utils/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotifyWriterFailed = errors.New("writer failed")

type fixedTimer struct {
	total time.Duration
	stage time.Duration
}

func (t *fixedTimer) Start() {}

func (t *fixedTimer) NewStage() {}

func (t *fixedTimer) GetTiming() (time.Duration, time.Duration) { return t.total, t.stage }

func (t *fixedTimer) Stop() {}

type failingWriter struct{}

func (failingWriter) Write(_ []byte) (int, error) {
	return 0, errNotifyWriterFailed
}

func TestConvenienceFunctions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		write func(io.Writer)
		want  string
	}{
		{"error", func(w io.Writer) { notify.Errorf(w, "copy %s failed", "library/app:v1") }, "✗ copy library/app:v1 failed\n"},
		{"warning", func(w io.Writer) { notify.Warningf(w, "repository %s not found", "ghost") }, "⚠ repository ghost not found\n"},
		{"activity", func(w io.Writer) { notify.Activityf(w, "copying %d tags", 3) }, "► copying 3 tags\n"},
		{"generate", func(w io.Writer) { notify.Generatef(w, "report written to %s", "out.yaml") }, "✚ report written to out.yaml\n"},
		{"success", func(w io.Writer) { notify.Successf(w, "replicated") }, "✔ replicated\n"},
		{"info", func(w io.Writer) { notify.Infof(w, "%d skipped", 2) }, "ℹ 2 skipped\n"},
		{"title", func(w io.Writer) { notify.Titlef(w, "🚢", "Replicate %s", "library") }, "🚢 Replicate library\n"},
		{"title default emoji", func(w io.Writer) { notify.Titlef(w, "", "Plan") }, notify.DefaultTitleEmoji + " Plan\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer

			test.write(&out)
			assert.Equal(t, test.want, out.String())
		})
	}
}

func TestWriteMessage_PercentWithoutArgsIsKept(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.WriteMessage(notify.Message{Type: notify.InfoType, Content: "100% done", Writer: &out})

	assert.Equal(t, "ℹ 100% done\n", out.String())
}

func TestWriteMessage_MultiLineContentIndented(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.Errorf(&out, "registry rejected the credentials\n  - check the username\n\nend")

	assert.Equal(t, "✗ registry rejected the credentials\n    - check the username\n\n  end\n", out.String())
}

func TestSuccessWithTimerf(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.SuccessWithTimerf(&out, &fixedTimer{total: 3 * time.Second, stage: time.Second}, "replicated %d tags", 4)

	assert.Equal(t, "✔ replicated 4 tags\n⏲ current: 1s\n  total:  3s\n", out.String())
}

func TestWriteMessage_TimerIgnoredOnErrors(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.WriteMessage(notify.Message{
		Type:    notify.ErrorType,
		Content: "failed",
		Timer:   &fixedTimer{total: time.Second},
		Writer:  &out,
	})

	assert.Equal(t, "✗ failed\n", out.String())
}

//nolint:paralleltest // swaps os.Stderr
func TestWriteMessage_WriteFailureGoesToStderr(t *testing.T) {
	origStderr := os.Stderr

	pipeReader, pipeWriter, err := os.Pipe()
	require.NoError(t, err)

	defer func() { _ = pipeReader.Close() }()

	os.Stderr = pipeWriter

	defer func() { os.Stderr = origStderr }()

	notify.Successf(failingWriter{}, "should fall back")

	_ = pipeWriter.Close()

	data, err := io.ReadAll(pipeReader)
	require.NoError(t, err)
	assert.Contains(t, string(data), "notify: failed to print message")
}

func TestActivityMessagesAreLowercase(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.Activityf(&out, "listing projects")

	line := strings.TrimPrefix(out.String(), "► ")
	assert.Equal(t, strings.ToLower(line), line)
}
