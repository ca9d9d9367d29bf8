package errors

import (
	"context"
	"errors"
	"fmt"
)

// Sync error taxonomy. Every failure that reaches a SyncRun is classified
// into exactly one of these.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("rate limited")
	ErrNotFound     = errors.New("not found")
	ErrTransient    = errors.New("transient network error")
	ErrStorage      = errors.New("storage error")
)

type Kind string

const (
	KindNone         Kind = ""
	KindUnauthorized Kind = "unauthorized"
	KindRateLimited  Kind = "rate_limited"
	KindNotFound     Kind = "not_found"
	KindTransient    Kind = "transient"
	KindStorage      Kind = "storage"
	KindCanceled     Kind = "canceled"
	KindUnknown      Kind = "unknown"
)

// Error represents a custom error type
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets a classified error match its taxonomy sentinel.
func (e *Error) Is(target error) bool {
	sentinel := sentinelFor(Kind(e.Code))
	return sentinel != nil && target == sentinel
}

// Classify marks err as belonging to kind while keeping the original
// error in the chain.
func Classify(err error, kind Kind) error {
	if err == nil {
		return nil
	}
	sentinel := sentinelFor(kind)
	if sentinel == nil || errors.Is(err, sentinel) {
		return err
	}
	return &Error{
		Code:    string(kind),
		Message: sentinel.Error(),
		Err:     err,
	}
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// KindOf maps err onto the sync taxonomy.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrRateLimited):
		return KindRateLimited
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrStorage):
		return KindStorage
	case errors.Is(err, ErrTransient), errors.Is(err, context.DeadlineExceeded):
		return KindTransient
	case errors.Is(err, context.Canceled):
		return KindCanceled
	default:
		return KindUnknown
	}
}

// IsRetryable reports whether an operation failing with err may be retried
// within the same invocation. Only a refusal from the remote or a stop
// requested by the caller is final.
func IsRetryable(err error) bool {
	switch KindOf(err) {
	case KindNone, KindUnauthorized, KindRateLimited, KindNotFound, KindCanceled:
		return false
	default:
		return true
	}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

func IsStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}

func sentinelFor(kind Kind) error {
	switch kind {
	case KindUnauthorized:
		return ErrUnauthorized
	case KindRateLimited:
		return ErrRateLimited
	case KindNotFound:
		return ErrNotFound
	case KindTransient:
		return ErrTransient
	case KindStorage:
		return ErrStorage
	default:
		return nil
	}
}
