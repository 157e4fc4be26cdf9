package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures at the I/O boundary so callers branch on the
// kind, never on message text.
type ErrorKind int

const (
	// KindNetwork covers unreachable servers, DNS failures, and timeouts.
	KindNetwork ErrorKind = iota
	// KindValidation covers 400-class rejections of the request shape.
	KindValidation
	// KindAuth covers bad credentials and bad or expired tokens.
	KindAuth
	// KindNotFound covers 404 responses.
	KindNotFound
	// KindConflict covers duplicate-registration rejections.
	KindConflict
	// KindServer covers 5xx responses and undecodable bodies.
	KindServer
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "server"
	}
}

// Error is a tagged API failure.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.cause
}

// IsNetworkError reports whether err is an API error of kind KindNetwork.
func IsNetworkError(err error) bool {
	return hasKind(err, KindNetwork)
}

// IsAuthError reports whether err is an API error of kind KindAuth.
func IsAuthError(err error) bool {
	return hasKind(err, KindAuth)
}

func hasKind(err error, kind ErrorKind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
