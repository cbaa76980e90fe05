// Package errors provides structured error handling for the immediate builder.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindStructure indicates an unbalanced container begin/end.
	KindStructure
	// KindValidation indicates user input that failed to parse.
	KindValidation
	// KindCallback indicates a draw callback that failed during traversal.
	KindCallback
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindBackend indicates a retained backend misuse (unknown or destroyed handle).
	KindBackend
	// KindConfig indicates a theme or scenario configuration error.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindStructure:
		return "structure"
	case KindValidation:
		return "validation"
	case KindCallback:
		return "callback"
	case KindPanic:
		return "panic"
	case KindBackend:
		return "backend"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// UIError represents a structured error raised by the builder or a backend.
type UIError struct {
	// Op is the operation that failed (e.g., "retained.SetValue").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *UIError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *UIError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "immediate.VerticalLayout").
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

// StructureError reports a container that was not closed before its parent
// finished. It is recovered locally by popping the container.
type StructureError struct {
	// Container is the kind of the container that was left open.
	Container string
	// Closing is the kind of the container whose end forced the pop.
	Closing string
	// Unmatched is set when an end call found no open container of its kind.
	Unmatched bool
	// Timestamp is when the container was popped.
	Timestamp time.Time
}

func (e *StructureError) Error() string {
	if e.Unmatched {
		return fmt.Sprintf("end of %s without a matching begin", e.Container)
	}
	if e.Closing != "" {
		return fmt.Sprintf("%s wasn't ended correctly before %s ended. Popping.", e.Container, e.Closing)
	}
	return fmt.Sprintf("%s wasn't ended correctly. Popping.", e.Container)
}

// CallbackError wraps the failure of a draw callback. The traversal stack is
// balanced again by the time a CallbackError is returned.
type CallbackError struct {
	// Container is the kind of the container whose callback failed.
	Container string
	// Err is the error returned by the callback, or a *PanicError.
	Err error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("draw callback of %s failed: %v", e.Container, e.Err)
}

func (e *CallbackError) Unwrap() error {
	return e.Err
}

// ValidationError describes input rejected by a field. It is never returned
// to callers; fields only flag themselves visually.
type ValidationError struct {
	// Field is the field kind (e.g., "int-field").
	Field string
	// Input is the rejected text.
	Input string
	// Err is the parse error.
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s input %q: %v", e.Field, e.Input, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by the builder.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *UIError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleStructureError is called when a container is force-popped.
	HandleStructureError(err *StructureError)
}
