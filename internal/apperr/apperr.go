// Package apperr defines the error taxonomy shared by the stores, the match
// processor and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the HTTP layer.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuth
	KindConstraint
	KindNotFound
	KindStore
	KindTimestamp
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindAuth:
		return "AuthFailure"
	case KindConstraint:
		return "DomainConstraintViolation"
	case KindNotFound:
		return "NotFound"
	case KindStore:
		return "StoreUnavailable"
	case KindTimestamp:
		return "InvalidTimestamp"
	default:
		return "Unknown"
	}
}

// Error is a classified error. Code is the machine readable value returned to
// clients, e.g. "DUPLICATE".
type Error struct {
	Kind Kind
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Kind, e.Code, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Kind, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports missing, empty or conflicting input.
func Validation(code string) *Error {
	return &Error{Kind: KindValidation, Code: code}
}

// Auth reports rejected credentials. The code is always generic.
func Auth() *Error {
	return &Error{Kind: KindAuth, Code: "INVALID_CREDENTIALS"}
}

// Constraint reports an operation refused by a domain rule.
func Constraint(code string) *Error {
	return &Error{Kind: KindConstraint, Code: code}
}

// NotFound reports a missing entity.
func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Code: "NOT_FOUND", Err: errors.New(what + " not found")}
}

// Store wraps a data store failure, including context deadline errors.
func Store(op string, err error) *Error {
	return &Error{Kind: KindStore, Code: "STORE_UNAVAILABLE", Err: fmt.Errorf("%s: %w", op, err)}
}

// Timestamp wraps a malformed date or time value.
func Timestamp(err error) *Error {
	return &Error{Kind: KindTimestamp, Code: "INVALID_TIMESTAMP", Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// CodeOf returns the client code of the first *Error in err's chain.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether err carries the given kind and code.
func Is(err error, kind Kind, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind && e.Code == code
}
