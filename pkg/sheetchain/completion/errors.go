package completion

import (
	"errors"
	"fmt"
)

// Kind classifies a completion failure.
type Kind string

const (
	// KindHTTP is a non-success response of the API.
	KindHTTP Kind = "http"
	// KindTransport is a connectivity, timeout or cancellation failure.
	KindTransport Kind = "transport"
	// KindMalformedResponse is a success response without generated text.
	KindMalformedResponse Kind = "malformed_response"
)

// Error represents a failed completion call.
type Error struct {
	Kind Kind
	// StatusCode is set for KindHTTP.
	StatusCode int
	// Body is the raw response body for KindHTTP.
	Body string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTP:
		return fmt.Sprintf("completion http %d: %s", e.StatusCode, e.Body)
	case KindMalformedResponse:
		if e.Err != nil {
			return fmt.Sprintf("completion malformed response: %v", e.Err)
		}
		return "completion malformed response"
	default:
		return fmt.Sprintf("completion transport error: %v", e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether a retry may succeed: transport failures and 5xx responses.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindTransport:
		return true
	case KindHTTP:
		return e.StatusCode >= 500
	default:
		return false
	}
}

// IsKind reports whether err is a completion Error of kind k.
func IsKind(err error, k Kind) bool {
	var cerr *Error
	return errors.As(err, &cerr) && cerr.Kind == k
}
