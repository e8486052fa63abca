package stream

import (
	"errors"
	"fmt"
)

// ErrorKind groups failures by how the caller should react to them.
type ErrorKind int

const (
	// KindConfig is a rejected configuration. Nothing has run yet.
	KindConfig ErrorKind = iota
	// KindMemory is a failed aligned allocation. The run cannot proceed.
	KindMemory
	// KindValidation is a result that did not match the analytic expectation.
	KindValidation
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "Config"
	case KindMemory:
		return "Memory"
	case KindValidation:
		return "Validation"
	default:
		return "Unknown"
	}
}

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrDegenerate = errors.New("stream: degenerate configuration")
	ErrAllocation = errors.New("stream: allocation failed")
	ErrValidation = errors.New("stream: solution did not validate")
)

// Error is a failure with the operation that produced it.
type Error struct {
	Kind    ErrorKind
	Op      string // operation that failed
	Message string
	Err     error // underlying cause, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("stream %s error in %s: %s: %v", e.Kind, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("stream %s error in %s: %s", e.Kind, e.Op, e.Message)
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrDegenerate:
		return e.Kind == KindConfig
	case ErrAllocation:
		return e.Kind == KindMemory
	case ErrValidation:
		return e.Kind == KindValidation
	}
	return false
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
