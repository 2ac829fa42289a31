package replication

import (
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultVerifyTimeout bounds how long Verify keeps retrying transient failures.
	DefaultVerifyTimeout = 30 * time.Second
	// DefaultVerifyInterval is the base delay between Verify attempts.
	DefaultVerifyInterval = time.Second
)

type options struct {
	concurrency    int
	allTags        bool
	dryRun         bool
	logger         logrus.FieldLogger
	observer       func(RepositoryReport)
	verifyTimeout  time.Duration
	verifyInterval time.Duration
}

// Option configures an Engine.
type Option func(*options)

// WithConcurrency sets how many repositories are replicated at once. Tags within one
// repository are always transferred in order.
func WithConcurrency(concurrency int) Option {
	return func(o *options) {
		o.concurrency = concurrency
	}
}

// WithAllTags replicates every tag of an artifact instead of the first one.
func WithAllTags(allTags bool) Option {
	return func(o *options) {
		o.allTags = allTags
	}
}

// WithDryRun plans without transferring.
func WithDryRun(dryRun bool) Option {
	return func(o *options) {
		o.dryRun = dryRun
	}
}

// WithLogger sets the diagnostics logger shared by the engine's components.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithObserver registers a callback invoked once per finished repository.
// With a concurrency above one it is called from several goroutines.
func WithObserver(observer func(RepositoryReport)) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithVerifyBackoff overrides how long and how often Verify retries.
func WithVerifyBackoff(timeout, interval time.Duration) Option {
	return func(o *options) {
		o.verifyTimeout = timeout
		o.verifyInterval = interval
	}
}
