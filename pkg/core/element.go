package core

import (
	"reflect"
	"time"

	"github.com/go-drift/orb/pkg/errors"
)

// IndexedSlot records a child's position within a multi-child parent.
// PreviousSibling lets hosts that care about ordering find the element
// mounted immediately before this one.
type IndexedSlot struct {
	Index           int
	PreviousSibling Element
}

type elementBase struct {
	widget     Widget
	parent     Element
	depth      int
	slot       any
	buildOwner *BuildOwner
	dirty      bool
	self       Element
	mounted    bool
}

func (e *elementBase) Widget() Widget {
	return e.widget
}

func (e *elementBase) Depth() int {
	return e.depth
}

// Slot returns the position assigned by the parent element.
func (e *elementBase) Slot() any {
	return e.slot
}

// UpdateSlot moves the element to a new position within its parent.
func (e *elementBase) UpdateSlot(slot any) {
	e.slot = slot
}

func (e *elementBase) MarkNeedsBuild() {
	if e.dirty {
		return
	}
	e.dirty = true
	if e.buildOwner != nil && e.self != nil {
		e.buildOwner.ScheduleBuild(e.self)
	}
}

func (e *elementBase) parentElement() Element {
	return e.parent
}

func (e *elementBase) setWidget(widget Widget) {
	e.widget = widget
}

func (e *elementBase) setSelf(self Element) {
	e.self = self
}

func (e *elementBase) setBuildOwner(owner *BuildOwner) {
	e.buildOwner = owner
}

func (e *elementBase) isMounted() bool {
	return e.mounted
}

// mountBase records the tree position shared by all element kinds and
// marks the element dirty so the first build runs.
func (e *elementBase) mountBase(parent Element, slot any) {
	e.parent = parent
	e.slot = slot
	if parent != nil {
		e.depth = parent.Depth() + 1
	}
	e.mounted = true
	e.dirty = true
}

// FindAncestor walks up the tree and returns the first ancestor the
// predicate accepts, or nil.
func (e *elementBase) FindAncestor(predicate func(Element) bool) Element {
	current := e.parent
	for current != nil {
		if predicate(current) {
			return current
		}
		if base, ok := current.(interface{ parentElement() Element }); ok {
			current = base.parentElement()
		} else {
			break
		}
	}
	return nil
}

// DependOnInherited registers this element as a dependent of the
// nearest ancestor InheritedWidget of the given type.
func (e *elementBase) DependOnInherited(inheritedType reflect.Type) any {
	return dependOnInherited(e.self, inheritedType)
}

// safeBuild executes a build function with panic recovery. If the build
// panics, the error is reported, the nearest error boundary gets a
// chance to capture it, and a fallback widget is substituted.
func (e *elementBase) safeBuild(buildFn func() Widget) Widget {
	var built Widget
	var buildErr *errors.BuildError

	func() {
		defer func() {
			if r := recover(); r != nil {
				buildErr = &errors.BuildError{
					Widget:     reflect.TypeOf(e.widget).String(),
					Element:    reflect.TypeOf(e.self).String(),
					Recovered:  r,
					StackTrace: errors.CaptureStack(),
					Timestamp:  time.Now(),
				}
			}
		}()
		built = buildFn()
	}()

	if buildErr != nil {
		// Report to global error handler
		errors.ReportBuildError(buildErr)

		// Find nearest error boundary in ancestors
		if boundary := e.findErrorBoundary(); boundary != nil {
			boundary.CaptureError(buildErr)
			// Return nil to indicate the boundary will handle display
			return nil
		}

		// Use global fallback error widget builder
		if builder := GetErrorWidgetBuilder(); builder != nil {
			if errWidget := builder(buildErr); errWidget != nil {
				return errWidget
			}
		}

		// Final fallback: a minimal placeholder widget
		return errorPlaceholder{err: buildErr}
	}
	return built
}

// findErrorBoundary searches ancestors for an error boundary.
func (e *elementBase) findErrorBoundary() ErrorBoundaryCapture {
	current := e.parent
	for current != nil {
		if capture, ok := current.(ErrorBoundaryCapture); ok {
			return capture
		}
		if base, ok := current.(interface{ parentElement() Element }); ok {
			current = base.parentElement()
		} else {
			break
		}
	}
	return nil
}

// errorPlaceholder is a minimal fallback widget shown when build fails
// and no error widget builder is configured.
type errorPlaceholder struct {
	err *errors.BuildError
}

func (p errorPlaceholder) CreateElement() Element {
	return NewStatelessElement()
}

func (p errorPlaceholder) Key() any {
	return nil
}

func (p errorPlaceholder) Build(ctx BuildContext) Widget {
	// Build nothing - the error has been reported
	return nil
}

// StatelessElement hosts a StatelessWidget.
type StatelessElement struct {
	elementBase
	child Element
}

// NewStatelessElement creates an element for a stateless widget. The
// widget and build owner are set by the framework during inflation.
func NewStatelessElement() *StatelessElement {
	element := &StatelessElement{}
	element.self = element
	return element
}

func (e *StatelessElement) Mount(parent Element, slot any) {
	e.mountBase(parent, slot)
	e.RebuildIfNeeded()
}

func (e *StatelessElement) Update(newWidget Widget) {
	e.widget = newWidget
	e.MarkNeedsBuild()
}

func (e *StatelessElement) Unmount() {
	e.mounted = false
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
}

func (e *StatelessElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	widget := e.widget.(StatelessWidget)
	built := e.safeBuild(func() Widget {
		return widget.Build(e)
	})
	e.child = updateChild(e.child, built, e.self, e.buildOwner, nil)
}

func (e *StatelessElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

// StatefulElement hosts a StatefulWidget and its State.
type StatefulElement struct {
	elementBase
	child Element
	state State
}

// NewStatefulElement creates an element for a stateful widget. The
// widget and build owner are set by the framework during inflation.
func NewStatefulElement() *StatefulElement {
	element := &StatefulElement{}
	element.self = element
	return element
}

func (e *StatefulElement) Mount(parent Element, slot any) {
	e.mountBase(parent, slot)
	widget := e.widget.(StatefulWidget)
	e.state = widget.CreateState()
	if setter, ok := e.state.(interface{ SetElement(*StatefulElement) }); ok {
		setter.SetElement(e)
	} else if setter, ok := e.state.(interface{ setElement(*StatefulElement) }); ok {
		setter.setElement(e)
	}
	e.state.InitState()
	e.RebuildIfNeeded()
}

func (e *StatefulElement) Update(newWidget Widget) {
	oldWidget := e.widget.(StatefulWidget)
	e.widget = newWidget
	e.state.DidUpdateWidget(oldWidget)
	e.MarkNeedsBuild()
}

func (e *StatefulElement) Unmount() {
	e.mounted = false
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
	if e.state != nil {
		e.state.Dispose()
	}
}

func (e *StatefulElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	if preparer, ok := e.state.(interface{ prepareBuild() }); ok {
		preparer.prepareBuild()
	}
	built := e.safeBuild(func() Widget {
		return e.state.Build(e)
	})
	e.child = updateChild(e.child, built, e.self, e.buildOwner, nil)
}

func (e *StatefulElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

// updateChild reconciles a single child element against a new widget.
// A nil widget unmounts the child. An existing child is updated in
// place when canUpdateWidget allows it; otherwise it is unmounted and a
// fresh element inflated and mounted at the given slot.
func updateChild(existing Element, widget Widget, parent Element, owner *BuildOwner, slot any) Element {
	if widget == nil {
		if existing != nil {
			existing.Unmount()
		}
		return nil
	}
	if existing != nil && canUpdateWidget(existing.Widget(), widget) {
		existing.UpdateSlot(slot)
		existing.Update(widget)
		return existing
	}
	if existing != nil {
		existing.Unmount()
	}
	element := inflateWidget(widget, owner)
	if element == nil {
		return nil
	}
	element.Mount(parent, slot)
	return element
}

// updateChildren reconciles a child list against a new widget list,
// reusing elements by position from the top and bottom and by key in
// the middle. Widgets with non-comparable keys are treated as
// non-keyed. Returns the new children with IndexedSlot positions
// assigned in order.
func updateChildren(parent Element, oldChildren []Element, newWidgets []Widget, owner *BuildOwner) []Element {
	newChildrenTop := 0
	oldChildrenTop := 0
	newChildrenBottom := len(newWidgets) - 1
	oldChildrenBottom := len(oldChildren) - 1

	newChildren := make([]Element, len(newWidgets))
	var previousChild Element

	// Sync the matching prefix in place.
	for newChildrenTop <= newChildrenBottom && oldChildrenTop <= oldChildrenBottom {
		oldChild := oldChildren[oldChildrenTop]
		newWidget := newWidgets[newChildrenTop]
		if !canUpdateWidget(oldChild.Widget(), newWidget) {
			break
		}
		slot := IndexedSlot{Index: newChildrenTop, PreviousSibling: previousChild}
		newChildren[newChildrenTop] = updateChild(oldChild, newWidget, parent, owner, slot)
		previousChild = newChildren[newChildrenTop]
		newChildrenTop++
		oldChildrenTop++
	}

	// Scan the matching suffix; it is synced after the middle so its
	// slots come out in final order.
	for newChildrenTop <= newChildrenBottom && oldChildrenTop <= oldChildrenBottom {
		if !canUpdateWidget(oldChildren[oldChildrenBottom].Widget(), newWidgets[newChildrenBottom]) {
			break
		}
		oldChildrenBottom--
		newChildrenBottom--
	}

	// Index the remaining old children by key; unmount the keyless
	// ones, they cannot match anything in the middle.
	var oldKeyedChildren map[any]Element
	if oldChildrenTop <= oldChildrenBottom {
		oldKeyedChildren = make(map[any]Element)
		for oldChildrenTop <= oldChildrenBottom {
			oldChild := oldChildren[oldChildrenTop]
			key := oldChild.Widget().Key()
			if key != nil && isComparable(key) {
				oldKeyedChildren[key] = oldChild
			} else {
				oldChild.Unmount()
			}
			oldChildrenTop++
		}
	}

	// Build the middle, taking matches by key and inflating the rest.
	for newChildrenTop <= newChildrenBottom {
		var oldChild Element
		newWidget := newWidgets[newChildrenTop]
		key := newWidget.Key()
		if key != nil && isComparable(key) {
			if candidate, ok := oldKeyedChildren[key]; ok && canUpdateWidget(candidate.Widget(), newWidget) {
				oldChild = candidate
				delete(oldKeyedChildren, key)
			}
		}
		slot := IndexedSlot{Index: newChildrenTop, PreviousSibling: previousChild}
		newChildren[newChildrenTop] = updateChild(oldChild, newWidget, parent, owner, slot)
		previousChild = newChildren[newChildrenTop]
		newChildrenTop++
	}

	// Sync the suffix recorded earlier.
	newChildrenBottom = len(newWidgets) - 1
	oldChildrenBottom = len(oldChildren) - 1
	for newChildrenTop <= newChildrenBottom && oldChildrenTop <= oldChildrenBottom {
		slot := IndexedSlot{Index: newChildrenTop, PreviousSibling: previousChild}
		newChildren[newChildrenTop] = updateChild(oldChildren[oldChildrenTop], newWidgets[newChildrenTop], parent, owner, slot)
		previousChild = newChildren[newChildrenTop]
		newChildrenTop++
		oldChildrenTop++
	}

	// Anything left in the key index was not reused.
	for _, oldChild := range oldKeyedChildren {
		oldChild.Unmount()
	}

	return newChildren
}

// canUpdateWidget reports whether an existing element configured with
// existing can take next in place: same dynamic type and equal keys.
func canUpdateWidget(existing Widget, next Widget) bool {
	if existing == nil || next == nil {
		return false
	}
	if reflect.TypeOf(existing) != reflect.TypeOf(next) {
		return false
	}
	return reflect.DeepEqual(existing.Key(), next.Key())
}

// isComparable reports whether value can be used as a map key.
// A nil value counts as comparable.
func isComparable(value any) bool {
	if value == nil {
		return true
	}
	return reflect.TypeOf(value).Comparable()
}

// inflateWidget creates and configures an element for widget. The
// element's self reference points at the value CreateElement returned,
// so wrapper elements embedding a framework element behave as a single
// element in the tree.
func inflateWidget(widget Widget, owner *BuildOwner) Element {
	if widget == nil {
		return nil
	}
	element := widget.CreateElement()
	if setter, ok := element.(interface{ setWidget(Widget) }); ok {
		setter.setWidget(widget)
	}
	if setter, ok := element.(interface{ setBuildOwner(*BuildOwner) }); ok {
		setter.setBuildOwner(owner)
	}
	if setter, ok := element.(interface{ setSelf(Element) }); ok {
		setter.setSelf(element)
	}
	return element
}

// MountRoot inflates widget and mounts it as the root of a tree. The
// returned element is the handle for unmounting the tree later.
func MountRoot(widget Widget, owner *BuildOwner) Element {
	element := inflateWidget(widget, owner)
	if element == nil {
		return nil
	}
	element.Mount(nil, nil)
	return element
}
