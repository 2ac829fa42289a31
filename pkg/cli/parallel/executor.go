// Package parallel runs replication units with bounded concurrency.
package parallel

import (
	"context"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// maxConcurrencyCap keeps parallel replication from overwhelming the registries.
const maxConcurrencyCap = 32

// Executor provides controlled parallel execution of tasks.
type Executor struct {
	maxConcurrency int64
}

// NewExecutor creates an executor running at most maxConcurrency tasks at once.
// Values below 1 mean sequential execution; values above the cap are clamped.
func NewExecutor(maxConcurrency int64) *Executor {
	return &Executor{maxConcurrency: min(max(maxConcurrency, 1), maxConcurrencyCap)}
}

// MaxConcurrency returns the effective concurrency limit.
func (executor *Executor) MaxConcurrency() int64 {
	return executor.maxConcurrency
}

// Task represents a unit of work that can be executed in parallel.
type Task func(ctx context.Context) error

// Execute runs all tasks with controlled parallelism and returns the first error,
// cancelling the tasks that have not started yet. With a concurrency of one the tasks run
// in order on the calling goroutine.
func (executor *Executor) Execute(ctx context.Context, tasks ...Task) error {
	if len(tasks) == 0 {
		return nil
	}

	if executor.maxConcurrency == 1 || len(tasks) == 1 {
		return executeSequentially(ctx, tasks)
	}

	sem := semaphore.NewWeighted(executor.maxConcurrency)
	group, groupCtx := errgroup.WithContext(ctx)

	for _, task := range tasks {
		group.Go(func() error {
			acquireErr := sem.Acquire(groupCtx, 1)
			if acquireErr != nil {
				return fmt.Errorf("acquire semaphore: %w", acquireErr)
			}

			defer sem.Release(1)

			return task(groupCtx)
		})
	}

	waitErr := group.Wait()
	if waitErr != nil {
		return fmt.Errorf("parallel execution: %w", waitErr)
	}

	return nil
}

func executeSequentially(ctx context.Context, tasks []Task) error {
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("sequential execution: %w", err)
		}

		if err := task(ctx); err != nil {
			return err
		}
	}

	return nil
}

// SyncWriter is a thread-safe writer that serializes writes from multiple goroutines.
type SyncWriter struct {
	mu     sync.Mutex
	writer io.Writer
}

// NewSyncWriter creates a new synchronized writer wrapping the given writer.
func NewSyncWriter(writer io.Writer) *SyncWriter {
	return &SyncWriter{writer: writer}
}

// Write writes data to the underlying writer with synchronization.
func (syncWriter *SyncWriter) Write(data []byte) (int, error) {
	syncWriter.mu.Lock()
	defer syncWriter.mu.Unlock()

	written, writeErr := syncWriter.writer.Write(data)
	if writeErr != nil {
		return written, fmt.Errorf("sync write: %w", writeErr)
	}

	return written, nil
}

// Results collects one value per task slot, so output order follows input order no matter
// which task finishes first.
type Results[T any] struct {
	mu     sync.Mutex
	values []T
	set    []bool
}

// NewResults creates a collector with size slots.
func NewResults[T any](size int) *Results[T] {
	return &Results[T]{values: make([]T, size), set: make([]bool, size)}
}

// Set stores the value of slot index.
func (results *Results[T]) Set(index int, value T) {
	results.mu.Lock()
	defer results.mu.Unlock()

	results.values[index] = value
	results.set[index] = true
}

// Values returns the values of the filled slots in slot order.
func (results *Results[T]) Values() []T {
	results.mu.Lock()
	defer results.mu.Unlock()

	out := make([]T, 0, len(results.values))

	for index, value := range results.values {
		if results.set[index] {
			out = append(out, value)
		}
	}

	return out
}
