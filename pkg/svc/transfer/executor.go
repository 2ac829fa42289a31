// Package transfer runs planned copy tasks against the destination registry.
package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/devantler-tech/harborsync/pkg/svc/planner"
	"github.com/sirupsen/logrus"
)

// ErrNoCopier is recorded on tasks when the executor has no copier to run them with.
var ErrNoCopier = errors.New("no image copier configured")

// Copier copies one image, every platform of an index included, between two references.
type Copier interface {
	Copy(ctx context.Context, src, dst string) error
}

// Result is the outcome of one task.
type Result struct {
	planner.Task

	Err      error
	Duration time.Duration
}

// Message returns the recorded failure message, or an empty string.
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}

	return r.Err.Error()
}

// MarshalJSON flattens the task and renders the failure as a message.
func (r Result) MarshalJSON() ([]byte, error) {
	type task planner.Task

	out := struct {
		task

		Error    string `json:"error,omitempty"`
		Duration string `json:"duration,omitempty"`
	}{task: task(r.Task), Error: r.Message()}

	if r.Duration > 0 {
		out.Duration = r.Duration.Round(time.Millisecond).String()
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}

	return data, nil
}

// Option configures an Executor.
type Option func(*Executor)

// WithDryRun leaves pending tasks untouched instead of copying them.
func WithDryRun(dryRun bool) Option {
	return func(e *Executor) {
		e.dryRun = dryRun
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithObserver registers a callback invoked after every task.
func WithObserver(observer func(Result)) Option {
	return func(e *Executor) {
		e.observer = observer
	}
}

// Executor transfers pending tasks through a Copier.
type Executor struct {
	copier   Copier
	dryRun   bool
	logger   logrus.FieldLogger
	observer func(Result)
}

// NewExecutor creates an Executor. A nil copier makes every pending task fail with ErrNoCopier.
func NewExecutor(copier Copier, opts ...Option) *Executor {
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	executor := &Executor{copier: copier, logger: silent}

	for _, opt := range opts {
		opt(executor)
	}

	return executor
}

// DryRun reports whether the executor only reports tasks.
func (e *Executor) DryRun() bool {
	return e.dryRun
}

// Execute runs one task. Only pending tasks are copied; every other task is returned as is.
func (e *Executor) Execute(ctx context.Context, task planner.Task) Result {
	result := Result{Task: task}

	if task.Status != planner.StatusPending || e.dryRun {
		e.notify(result)

		return result
	}

	fields := logrus.Fields{"source": task.Source, "destination": task.Destination}

	start := time.Now()
	err := e.copy(ctx, task)
	result.Duration = time.Since(start)

	if err != nil {
		result.Status = planner.StatusFailed
		result.Err = fmt.Errorf("copy %s to %s: %w", task.Source, task.Destination, err)

		e.logger.WithFields(fields).WithError(err).Warn("transfer failed")
	} else {
		result.Status = planner.StatusSucceeded

		e.logger.WithFields(fields).WithField("duration", result.Duration).Info("transferred")
	}

	e.notify(result)

	return result
}

// ExecuteAll runs the tasks in order. A failed task never stops the ones after it; a
// cancelled context marks the remaining pending tasks failed without copying them.
func (e *Executor) ExecuteAll(ctx context.Context, tasks []planner.Task) []Result {
	results := make([]Result, 0, len(tasks))

	for _, task := range tasks {
		results = append(results, e.Execute(ctx, task))
	}

	return results
}

func (e *Executor) copy(ctx context.Context, task planner.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if e.copier == nil {
		return ErrNoCopier
	}

	return e.copier.Copy(ctx, task.Source, task.Destination)
}

func (e *Executor) notify(result Result) {
	if e.observer != nil {
		e.observer(result)
	}
}

// Summary counts results by status.
type Summary struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
	Pending   int `json:"pending"`
}

// Add counts one result.
func (s *Summary) Add(result Result) {
	switch result.Status {
	case planner.StatusSucceeded:
		s.Succeeded++
	case planner.StatusFailed:
		s.Failed++
	case planner.StatusSkippedExists:
		s.Skipped++
	case planner.StatusPending:
		s.Pending++
	}
}

// Merge adds the counts of other.
func (s *Summary) Merge(other Summary) {
	s.Succeeded += other.Succeeded
	s.Failed += other.Failed
	s.Skipped += other.Skipped
	s.Pending += other.Pending
}

// Summarize counts the results by status.
func Summarize(results []Result) Summary {
	var summary Summary

	for _, result := range results {
		summary.Add(result)
	}

	return summary
}
