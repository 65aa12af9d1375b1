package core

import (
	"reflect"
	"sync"

	"github.com/go-drift/orb/pkg/errors"
)

// ErrorWidgetBuilder creates a fallback widget when a widget build
// fails. The builder receives the build error and returns a widget to
// show in place of the failed subtree.
type ErrorWidgetBuilder func(err *errors.BuildError) Widget

var (
	errorWidgetBuilder ErrorWidgetBuilder = DefaultErrorWidgetBuilder
	errorBuilderMu     sync.RWMutex
)

// SetErrorWidgetBuilder configures the global error widget builder.
// Pass nil to restore the default builder.
func SetErrorWidgetBuilder(builder ErrorWidgetBuilder) {
	errorBuilderMu.Lock()
	defer errorBuilderMu.Unlock()
	if builder == nil {
		errorWidgetBuilder = DefaultErrorWidgetBuilder
	} else {
		errorWidgetBuilder = builder
	}
}

// GetErrorWidgetBuilder returns the current error widget builder.
func GetErrorWidgetBuilder() ErrorWidgetBuilder {
	errorBuilderMu.RLock()
	defer errorBuilderMu.RUnlock()
	return errorWidgetBuilder
}

// DefaultErrorWidgetBuilder returns nil, which makes safeBuild fall
// back to a minimal placeholder that builds nothing.
func DefaultErrorWidgetBuilder(err *errors.BuildError) Widget {
	return nil
}

// ErrorBoundaryCapture is implemented by error boundary elements to
// capture build errors from descendant widgets.
type ErrorBoundaryCapture interface {
	// CaptureError captures a build error from a descendant widget.
	// Returns true if the error was captured and handled.
	CaptureError(err *errors.BuildError) bool
}

// ErrorBoundary catches build errors from descendant widgets and shows
// a fallback subtree instead of letting the failure replace the whole
// tree. This gives scoped error handling for risky subtrees.
//
//	core.ErrorBoundary{
//	    OnError: func(err *errors.BuildError) {
//	        log.Printf("section failed: %v", err)
//	    },
//	    FallbackBuilder: func(err *errors.BuildError) core.Widget {
//	        return Fallback{}
//	    },
//	    Child: RiskyContent{},
//	}
type ErrorBoundary struct {
	// Child is the subtree to guard.
	Child Widget
	// FallbackBuilder creates the replacement subtree once an error
	// is captured. Nil builds nothing.
	FallbackBuilder ErrorWidgetBuilder
	// OnError observes captured errors. Use for logging.
	OnError func(*errors.BuildError)
	// WidgetKey is an optional key. Changing it recreates the
	// boundary's state, clearing any captured error.
	WidgetKey any
}

func (b ErrorBoundary) CreateElement() Element {
	return NewStatefulElement()
}

func (b ErrorBoundary) Key() any {
	return b.WidgetKey
}

func (b ErrorBoundary) CreateState() State {
	return &errorBoundaryState{}
}

type errorBoundaryState struct {
	StateBase
	captured *errors.BuildError
}

func (s *errorBoundaryState) Build(ctx BuildContext) Widget {
	widget := ctx.Widget().(ErrorBoundary)

	// Once an error is captured, show the fallback
	if s.captured != nil {
		if widget.FallbackBuilder != nil {
			return widget.FallbackBuilder(s.captured)
		}
		return nil
	}

	// Wrap the child in a scope that marks this boundary in the tree
	return errorBoundaryScope{
		state: s,
		child: widget.Child,
	}
}

// Reset clears the captured error and rebuilds the child.
// Use this to retry after an error.
func (s *errorBoundaryState) Reset() {
	s.SetState(func() {
		s.captured = nil
	})
}

// HasError returns true if this boundary has captured an error.
func (s *errorBoundaryState) HasError() bool {
	return s.captured != nil
}

// Error returns the captured error, or nil if none.
func (s *errorBoundaryState) Error() *errors.BuildError {
	return s.captured
}

// errorBoundaryScope is an InheritedWidget that marks the boundary in
// the tree. Descendant elements find it through findErrorBoundary to
// report errors upward.
type errorBoundaryScope struct {
	state *errorBoundaryState
	child Widget
}

func (e errorBoundaryScope) CreateElement() Element {
	return &errorBoundaryScopeElement{InheritedElement: NewInheritedElement()}
}

func (e errorBoundaryScope) Key() any {
	return nil
}

func (e errorBoundaryScope) ChildWidget() Widget {
	return e.child
}

func (e errorBoundaryScope) UpdateShouldNotify(oldWidget InheritedWidget) bool {
	// The scope only marks the tree; dependents never rebuild on it
	return false
}

// errorBoundaryScopeElement wraps InheritedElement and implements
// ErrorBoundaryCapture. Inflation points the element's self reference
// at this wrapper, so descendants walking their parents find it.
type errorBoundaryScopeElement struct {
	*InheritedElement
}

// CaptureError implements ErrorBoundaryCapture.
func (e *errorBoundaryScopeElement) CaptureError(err *errors.BuildError) bool {
	scope := e.Widget().(errorBoundaryScope)
	state := scope.state

	// Surface the error to the boundary widget's callback
	if state.Element() != nil {
		if boundary, ok := state.Element().Widget().(ErrorBoundary); ok && boundary.OnError != nil {
			boundary.OnError(err)
		}
	}

	// Capture and rebuild the boundary with the fallback
	state.SetState(func() {
		state.captured = err
	})
	return true
}

// ErrorBoundaryOf returns the nearest ErrorBoundary's state, or nil if
// none encloses the calling context. Use it to check for or reset a
// captured error programmatically.
func ErrorBoundaryOf(ctx BuildContext) *errorBoundaryState {
	inherited := ctx.DependOnInherited(reflect.TypeOf(errorBoundaryScope{}))
	if scope, ok := inherited.(errorBoundaryScope); ok {
		return scope.state
	}
	return nil
}
