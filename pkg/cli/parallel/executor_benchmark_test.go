package parallel_test

import (
	"context"
	"testing"
	"time"

	"github.com/devantler-tech/harborsync/pkg/cli/parallel"
)

// BenchmarkExecutor_Sequential benchmarks one repository at a time.
func BenchmarkExecutor_Sequential(b *testing.B) {
	executor := parallel.NewExecutor(1)
	tasks := createBenchmarkTasks(10, 1*time.Millisecond)

	b.ResetTimer()

	for b.Loop() {
		_ = executor.Execute(context.Background(), tasks...)
	}
}

// BenchmarkExecutor_Parallel benchmarks four repositories at a time.
func BenchmarkExecutor_Parallel(b *testing.B) {
	executor := parallel.NewExecutor(4)
	tasks := createBenchmarkTasks(10, 1*time.Millisecond)

	b.ResetTimer()

	for b.Loop() {
		_ = executor.Execute(context.Background(), tasks...)
	}
}

// createBenchmarkTasks creates tasks that simulate registry round trips.
func createBenchmarkTasks(numTasks int, delay time.Duration) []parallel.Task {
	tasks := make([]parallel.Task, numTasks)
	for taskIdx := range tasks {
		tasks[taskIdx] = func(_ context.Context) error {
			time.Sleep(delay)

			return nil
		}
	}

	return tasks
}
