package notify

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"unicode"
	"unicode/utf8"
)

// StageSeparatingWriter inserts a blank line before every title written after some other
// output, so the stages of a command (verify, replicate, report) stand apart.
// A title is a write that starts with a pictographic emoji; the message symbols of this
// package never count as titles.
type StageSeparatingWriter struct {
	mu         sync.Mutex
	underlying io.Writer
	hasWritten bool
}

// NewStageSeparatingWriter wraps underlying.
func NewStageSeparatingWriter(underlying io.Writer) *StageSeparatingWriter {
	return &StageSeparatingWriter{underlying: underlying}
}

// Write implements io.Writer.
func (w *StageSeparatingWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(data) == 0 {
		return 0, nil
	}

	if w.hasWritten && isTitle(data) {
		_, err := w.underlying.Write([]byte{'\n'})
		if err != nil {
			return 0, fmt.Errorf("write stage separator: %w", err)
		}
	}

	written, err := w.underlying.Write(data)
	if written > 0 {
		w.hasWritten = true
	}

	if err != nil {
		return written, fmt.Errorf("write stage output: %w", err)
	}

	return written, nil
}

// HasWritten reports whether anything was written yet.
func (w *StageSeparatingWriter) HasWritten() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.hasWritten
}

func isTitle(data []byte) bool {
	first, _ := utf8.DecodeRune(skipEscapes(data))

	switch first {
	case utf8.RuneError, '►', '✔', '✗', '⚠', 'ℹ', '✚', '⏲':
		return false
	}

	return unicode.Is(unicode.So, first)
}

// skipEscapes drops leading ANSI SGR sequences such as "\x1b[0;1m".
func skipEscapes(data []byte) []byte {
	for len(data) > 1 && data[0] == 0x1b && data[1] == '[' {
		end := bytes.IndexByte(data, 'm')
		if end < 0 {
			return data
		}

		data = data[end+1:]
	}

	return data
}
