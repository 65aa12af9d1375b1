// Package errors provides structured error handling for the Orb library.
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
	// KindListener indicates a failure inside a change listener.
	KindListener
	// KindRegistry indicates a devtools registry error.
	KindRegistry
	// KindServer indicates a devtools server error.
	KindServer
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindBuild indicates a component build error.
	KindBuild
)

func (k ErrorKind) String() string {
	switch k {
	case KindListener:
		return "listener"
	case KindRegistry:
		return "registry"
	case KindServer:
		return "server"
	case KindPanic:
		return "panic"
	case KindBuild:
		return "build"
	default:
		return "unknown"
	}
}

// OrbError represents a structured error in the Orb library.
type OrbError struct {
	// Op is the operation that failed (e.g., "devtools.StartServer").
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

func (e *OrbError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *OrbError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "core.Orb.Set").
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

// BuildError represents a failure during component build.
type BuildError struct {
	// Widget is the type name of the widget that failed.
	Widget string
	// Element is the element type (StatelessElement, StatefulElement, etc.).
	Element string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BuildError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s.Build(): %v", e.Widget, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in %s.Build(): %v", e.Widget, e.Err)
	}
	return fmt.Sprintf("unknown error in %s.Build()", e.Widget)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by the Orb library.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *OrbError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleBuildError is called when a component build fails.
	HandleBuildError(err *BuildError)
}
