// Package timer measures the total duration of a command and of its current stage.
package timer

import (
	"sync"
	"time"
)

// Timer tracks elapsed time for a command made of stages.
type Timer interface {
	// Start begins timing; it resets any previous measurement.
	Start()
	// NewStage marks the beginning of the next stage.
	NewStage()
	// GetTiming returns the time since Start and since the latest stage began.
	GetTiming() (time.Duration, time.Duration)
	// Stop freezes the measurement.
	Stop()
}

type stopwatch struct {
	mu         sync.Mutex
	now        func() time.Time
	start      time.Time
	stageStart time.Time
	stoppedAt  time.Time
}

// New returns a Timer backed by the wall clock.
func New() Timer {
	return &stopwatch{now: time.Now}
}

// NewWithClock returns a Timer reading time from now. Tests use it to get stable durations.
func NewWithClock(now func() time.Time) Timer {
	return &stopwatch{now: now}
}

func (s *stopwatch) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.start = s.now()
	s.stageStart = s.start
	s.stoppedAt = time.Time{}
}

func (s *stopwatch) NewStage() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stageStart = s.now()
}

func (s *stopwatch) GetTiming() (time.Duration, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.start.IsZero() {
		return 0, 0
	}

	end := s.stoppedAt
	if end.IsZero() {
		end = s.now()
	}

	return end.Sub(s.start), end.Sub(s.stageStart)
}

func (s *stopwatch) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stoppedAt.IsZero() {
		s.stoppedAt = s.now()
	}
}
