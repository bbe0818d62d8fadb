package core

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the transport boundary can map it to a
// status without interpreting business rules.
type Kind string

const (
	KindNotFound               Kind = "NOT_FOUND"
	KindDuplicateKey           Kind = "DUPLICATE_KEY"
	KindConflict               Kind = "CONFLICT"
	KindInsufficientStock      Kind = "INSUFFICIENT_STOCK"
	KindInvalidTransactionType Kind = "INVALID_TRANSACTION_TYPE"
	KindStoreUnavailable       Kind = "STORE_UNAVAILABLE"
)

// Error is a classified failure with a short human-readable reason.
// Message is safe to return to callers; the wrapped Err (driver
// details and the like) is for logs only and must never leak past the
// boundary.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Errf builds a classified error with a formatted message.
func Errf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapErr builds a classified error that keeps cause for logging.
func WrapErr(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}

// AsError extracts the classified error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// KindOf returns the classification of err, or KindStoreUnavailable
// when the chain carries no *Error. Anything the store surfaces that
// is not anticipated by name is treated as a persistence failure.
func KindOf(err error) Kind {
	if e, ok := AsError(err); ok {
		return e.Kind
	}
	return KindStoreUnavailable
}

// classifyStore passes classified errors through untouched and wraps
// everything else as StoreUnavailable with a generic message. op names
// the failed operation for the log line.
func classifyStore(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsError(err); ok {
		return err
	}
	return WrapErr(KindStoreUnavailable, err, "%s: storage unavailable", op)
}
