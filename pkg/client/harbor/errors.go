package harbor

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport is matched by every failed registry call: non-success status or
	// connection failure.
	ErrTransport = errors.New("registry request failed")
	// ErrUnauthorized is matched when the registry rejects the configured credentials.
	ErrUnauthorized = errors.New(
		"registry rejected the credentials\n" +
			"  - check the username and password configured for this registry",
	)
	// ErrForbidden is matched when the credentials lack permission for the request.
	ErrForbidden = errors.New(
		"registry access denied\n" +
			"  - check the account has read access to the projects being replicated",
	)
	// ErrInvalidTimestamp is returned when a timestamp is neither ISO-8601 nor epoch seconds.
	ErrInvalidTimestamp = errors.New("unsupported timestamp")
	// ErrInvalidPageSize is returned when a client is created with a non-positive page size.
	ErrInvalidPageSize = errors.New("page size must be between 1 and 100")
)

// maxErrorBody caps how much of a failed response body is kept on a StatusError.
const maxErrorBody = 512

// StatusError reports a registry response with a non-success status code.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}

	return msg
}

// HTTPStatusCode returns the response status code.
func (e *StatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// Is makes errors.Is match ErrTransport for every status error, and ErrUnauthorized or
// ErrForbidden for 401 and 403 responses.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrTransport:
		return true
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	default:
		return false
	}
}

// IsAuthError reports whether err means the configured credentials cannot be used.
// Such errors are configuration problems and are not worth continuing past.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}
