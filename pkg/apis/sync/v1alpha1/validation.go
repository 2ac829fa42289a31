package v1alpha1

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that the configuration can drive a replication run.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Source.URL) == "" {
		errs = append(errs, ErrSourceRequired)
	} else if _, err := c.Source.BaseURL(); err != nil {
		errs = append(errs, fmt.Errorf("source: %w", err))
	}

	if strings.TrimSpace(c.Destination.URL) == "" {
		errs = append(errs, ErrDestinationRequired)
	} else if _, err := c.Destination.BaseURL(); err != nil {
		errs = append(errs, fmt.Errorf("destination: %w", err))
	}

	if len(errs) == 0 && strings.EqualFold(c.Source.Host(), c.Destination.Host()) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrSameRegistry, c.Source.Host()))
	}

	if c.Replication.PageSize <= 0 || c.Replication.PageSize > MaxPageSize {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidPageSize, c.Replication.PageSize))
	}

	if c.Replication.Concurrency <= 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidConcurrency, c.Replication.Concurrency))
	}

	level := c.LogLevel
	if err := level.Set(string(c.LogLevel)); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
