package client

import (
	"errors"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// Kind classifies a failed operation.
type Kind int

const (
	KindUnknown Kind = iota
	// KindTransport: the request never got a response (network, cancelled context).
	KindTransport
	// KindStatus: the backend answered with a non-2xx status.
	KindStatus
	// KindMalformed: the response could not be decoded or lacks an expected field.
	KindMalformed
	// KindValidation: the input was rejected before any request was sent.
	KindValidation
	// KindUnauthenticated: the operation needs a session and there is none.
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindMalformed:
		return "malformed"
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Error is the single error type surfaced to presentation code. Detail is the
// message shown to the user.
type Error struct {
	Kind   Kind
	Op     string
	Status int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	return e.Detail
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets callers keep using the package sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnavailable:
		return e.Kind == KindTransport
	case ErrUnauthorized:
		if e.Kind == KindUnauthenticated {
			return true
		}
		return e.Kind == KindStatus && (e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
	}
	return false
}

// KindOf returns the kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Validation wraps a local validation failure.
func Validation(op string, err error) *Error {
	return &Error{Kind: KindValidation, Op: op, Detail: err.Error(), Err: err}
}

// Unauthenticated reports an operation attempted without a session.
func Unauthenticated(op string) *Error {
	return &Error{Kind: KindUnauthenticated, Op: op, Detail: "not logged in", Err: ErrUnauthorized}
}

// AsError returns err unchanged when it already is an *Error and wraps it as
// KindUnknown otherwise, so callers always get the tagged type.
func AsError(op string, err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindUnknown, Op: op, Detail: err.Error(), Err: err}
}
