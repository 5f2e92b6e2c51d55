// Package errors provides structured error handling for the motion curve engine.
//
// Curve construction is the only place the engine fails: malformed spring
// parameters, out-of-range Bézier control points, unknown easing names and bad
// durations are reported as [*CurveError] values. Sampling never fails.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInvalidParameter indicates a curve parameter outside its valid domain.
	KindInvalidParameter
	// KindUnknownEasing indicates an easing name that is not in the catalog.
	KindUnknownEasing
	// KindInvalidDuration indicates a missing or non-positive animation duration.
	KindInvalidDuration
	// KindDecode indicates a malformed curve record in YAML or JSON.
	KindDecode
	// KindConfig indicates an invalid configuration file.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidParameter:
		return "invalid-parameter"
	case KindUnknownEasing:
		return "unknown-easing"
	case KindInvalidDuration:
		return "invalid-duration"
	case KindDecode:
		return "decode"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Sentinel errors for use with the standard library errors.Is. A [*CurveError]
// matches the sentinel of its Kind.
var (
	ErrInvalidParameter error = &kindError{KindInvalidParameter}
	ErrUnknownEasing    error = &kindError{KindUnknownEasing}
	ErrInvalidDuration  error = &kindError{KindInvalidDuration}
	ErrDecode           error = &kindError{KindDecode}
	ErrConfig           error = &kindError{KindConfig}
)

type kindError struct {
	kind ErrorKind
}

func (e *kindError) Error() string {
	return strings.ReplaceAll(e.kind.String(), "-", " ")
}

// CurveError describes a curve construction or configuration failure.
type CurveError struct {
	// Op is the operation that failed (e.g., "animation.NewSpringCurve").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Field names the offending parameter (e.g., "mass", "p1.x").
	Field string
	// Reason states the violated constraint (e.g., "must be > 0").
	Reason string
	// Value is the rejected value, if any.
	Value any
	// Source is the configuration file or record path, if applicable.
	Source string
	// Err is the underlying error.
	Err error
	// Timestamp is when the error was reported.
	Timestamp time.Time
}

func (e *CurveError) Error() string {
	msg := e.Reason
	if e.Field != "" {
		msg = strings.TrimSpace(e.Field + " " + e.Reason)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (got %v)", e.Value)
	}
	if e.Err != nil {
		if msg != "" {
			msg += ": "
		}
		msg += e.Err.Error()
	}
	if e.Source != "" {
		return fmt.Sprintf("%s [%s] source=%s: %s", e.Op, e.Kind, e.Source, msg)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Op, e.Kind, msg)
}

func (e *CurveError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *CurveError) Is(target error) bool {
	k, ok := target.(*kindError)
	return ok && k.kind == e.Kind
}

// Invalid builds a KindInvalidParameter error for a single field.
func Invalid(op, field, reason string, value any) *CurveError {
	return &CurveError{
		Op:     op,
		Kind:   KindInvalidParameter,
		Field:  field,
		Reason: reason,
		Value:  value,
	}
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "preview.Run").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by motion tools.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *CurveError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
