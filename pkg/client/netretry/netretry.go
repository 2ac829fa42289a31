// Package netretry classifies registry connection failures as transient or permanent and
// computes backoff delays for the callers that choose to retry.
package netretry

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"syscall"
	"time"

	"github.com/google/go-containerregistry/pkg/v1/remote/transport"
)

// httpStatusCodePattern matches HTTP 5xx status codes at word boundaries
// to avoid false positives on port numbers like ":5000".
var httpStatusCodePattern = regexp.MustCompile(`\b50[0-4]\b`)

// StatusCoder is implemented by errors that carry the HTTP status of a failed response.
type StatusCoder interface {
	HTTPStatusCode() int
}

// IsRetryableStatus reports whether an HTTP status code signals a transient server condition.
func IsRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// IsRetryable returns true if the error indicates a transient network or server error.
// Typed errors are inspected first (status codes, net.Error timeouts, connection resets);
// the message is only matched as a last resort for errors that lost their type on the way.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var coder StatusCoder
	if errors.As(err, &coder) {
		return IsRetryableStatus(coder.HTTPStatusCode())
	}

	var transportErr *transport.Error
	if errors.As(err, &transportErr) {
		return transportErr.Temporary() || IsRetryableStatus(transportErr.StatusCode)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	return matchesTransientMessage(err.Error())
}

func matchesTransientMessage(errMsg string) bool {
	textPatterns := []string{
		"Internal Server Error", "Bad Gateway",
		"Service Unavailable", "Gateway Timeout",
		"connection reset by peer", "connection refused",
		"i/o timeout", "TLS handshake timeout",
		"unexpected EOF", "no such host",
		"context deadline exceeded",
	}

	for _, pattern := range textPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}

	return httpStatusCodePattern.MatchString(errMsg)
}

// ExponentialDelay returns the delay for the given retry attempt
// using the formula min(baseWait * 2^(attempt-1), maxWait).
func ExponentialDelay(
	attempt int,
	baseWait, maxWait time.Duration,
) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	return min(baseWait*time.Duration(1<<(attempt-1)), maxWait)
}
