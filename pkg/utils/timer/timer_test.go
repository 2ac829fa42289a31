package timer_test

import (
	"testing"
	"time"

	"github.com/devantler-tech/harborsync/pkg/utils/timer"
	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestTimer_NotStarted(t *testing.T) {
	t.Parallel()

	total, stage := timer.New().GetTiming()
	assert.Zero(t, total)
	assert.Zero(t, stage)
}

func TestTimer_Stages(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	tmr := timer.NewWithClock(clock.Now)

	tmr.Start()
	clock.Advance(2 * time.Second)
	tmr.NewStage()
	clock.Advance(500 * time.Millisecond)

	total, stage := tmr.GetTiming()
	assert.Equal(t, 2500*time.Millisecond, total)
	assert.Equal(t, 500*time.Millisecond, stage)
}

func TestTimer_StopFreezes(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	tmr := timer.NewWithClock(clock.Now)

	tmr.Start()
	clock.Advance(time.Second)
	tmr.Stop()
	clock.Advance(time.Hour)

	total, _ := tmr.GetTiming()
	assert.Equal(t, time.Second, total)
}
