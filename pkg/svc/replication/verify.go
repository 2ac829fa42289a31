package replication

import (
	"context"
	"fmt"

	"github.com/devantler-tech/harborsync/pkg/client/harbor"
	"github.com/devantler-tech/harborsync/pkg/client/netretry"
	"github.com/siderolabs/go-retry/retry"
)

// Verify checks that both registries answer and accept their credentials. Transient
// failures are retried with exponential backoff; rejected credentials fail at once.
func (e *Engine) Verify(ctx context.Context) error {
	err := e.ping(ctx, "source", e.source.Ping)
	if err != nil {
		return err
	}

	return e.ping(ctx, "destination", e.destination.Ping)
}

func (e *Engine) ping(ctx context.Context, role string, ping func(context.Context) error) error {
	var (
		attempts int
		lastErr  error
	)

	err := retry.Exponential(e.verifyTimeout, retry.WithUnits(e.verifyInterval), retry.WithJitter(e.verifyInterval/2)).
		RetryWithContext(ctx, func(ctx context.Context) error {
			attempts++

			pingErr := ping(ctx)
			if pingErr == nil {
				return nil
			}

			lastErr = pingErr

			if !harbor.IsAuthError(pingErr) && netretry.IsRetryable(pingErr) {
				e.logger.WithError(pingErr).WithField("attempt", attempts).Debug("retrying " + role + " ping")

				return retry.ExpectedError(pingErr)
			}

			return pingErr
		})
	if err == nil {
		return nil
	}

	if lastErr != nil {
		err = lastErr
	}

	return fmt.Errorf("verify %s registry after %d attempt(s): %w", role, attempts, err)
}
