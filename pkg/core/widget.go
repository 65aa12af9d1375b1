package core

import "reflect"

// Widget is an immutable description of part of the component tree.
// Widgets are lightweight configuration values; the framework creates an
// Element to give each widget a location and a lifecycle.
type Widget interface {
	// CreateElement returns a new element to host this widget. The
	// framework finishes configuring the element during inflation.
	CreateElement() Element

	// Key identifies the widget across rebuilds. Widgets of the same
	// dynamic type with equal keys update their existing element in
	// place; otherwise the old element is unmounted and a new one
	// inflated.
	Key() any
}

// StatelessWidget builds its subtree purely from its own fields.
type StatelessWidget interface {
	Widget
	Build(ctx BuildContext) Widget
}

// StatefulWidget creates a State object that persists across rebuilds.
type StatefulWidget interface {
	Widget
	CreateState() State
}

// InheritedWidget provides a value to descendant widgets. Descendants
// that registered through [BuildContext.DependOnInherited] are rebuilt
// when the widget updates and UpdateShouldNotify reports a change.
type InheritedWidget interface {
	Widget
	ChildWidget() Widget
	UpdateShouldNotify(oldWidget InheritedWidget) bool
}

// State holds mutable data for a StatefulWidget. Embed [StateBase] to
// get the default implementations plus SetState and disposer support.
type State interface {
	// InitState runs once, after the state is attached to its element
	// and before the first build.
	InitState()

	// Build returns the widget subtree for the current state.
	Build(ctx BuildContext) Widget

	// DidChangeDependencies runs when an inherited widget this state
	// depends on notifies a change.
	DidChangeDependencies()

	// DidUpdateWidget runs when the element receives a new widget
	// configuration of the same type.
	DidUpdateWidget(oldWidget StatefulWidget)

	// Dispose releases resources. Runs once, when the element
	// unmounts.
	Dispose()
}

// BuildContext is passed to build methods and identifies the element
// being built.
type BuildContext interface {
	// Widget returns the widget configuration for this location.
	Widget() Widget

	// FindAncestor walks up the tree and returns the first ancestor
	// element the predicate accepts, or nil.
	FindAncestor(predicate func(Element) bool) Element

	// DependOnInherited registers this element as a dependent of the
	// nearest ancestor InheritedWidget of the given type and returns
	// that widget, or nil if none is in scope.
	DependOnInherited(inheritedType reflect.Type) any
}

// Element is the instantiation of a widget at a location in the tree.
// Elements manage identity and lifecycle while widgets come and go.
type Element interface {
	Widget() Widget
	Mount(parent Element, slot any)
	Update(newWidget Widget)
	Unmount()
	RebuildIfNeeded()
	MarkNeedsBuild()
	VisitChildren(visitor func(Element) bool)
	Depth() int
	Slot() any
	UpdateSlot(slot any)
}
