package core

import "reflect"

// InheritedElement hosts an [InheritedWidget] and tracks which
// descendant elements depend on it.
//
// When a descendant calls [BuildContext.DependOnInherited], it
// registers as a dependent of this element. When the widget is updated
// and [InheritedWidget.UpdateShouldNotify] returns true, every
// registered dependent is notified and scheduled for rebuild.
type InheritedElement struct {
	elementBase
	child      Element
	dependents map[Element]struct{}
}

// NewInheritedElement creates an element for an inherited widget. The
// widget and build owner are set by the framework during inflation.
func NewInheritedElement() *InheritedElement {
	element := &InheritedElement{
		dependents: make(map[Element]struct{}),
	}
	element.self = element
	return element
}

func (e *InheritedElement) Mount(parent Element, slot any) {
	e.mountBase(parent, slot)
	e.RebuildIfNeeded()
}

func (e *InheritedElement) Update(newWidget Widget) {
	oldWidget := e.widget.(InheritedWidget)
	e.widget = newWidget
	newInherited := newWidget.(InheritedWidget)

	// UpdateShouldNotify gates dependent notification. The subtree
	// rebuild happens either way.
	if newInherited.UpdateShouldNotify(oldWidget) {
		for dependent := range e.dependents {
			notifyDependent(dependent)
		}
	}
	e.MarkNeedsBuild()
}

func (e *InheritedElement) Unmount() {
	e.mounted = false
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
	e.dependents = nil
}

func (e *InheritedElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	inherited := e.widget.(InheritedWidget)
	e.child = updateChild(e.child, inherited.ChildWidget(), e.self, e.buildOwner, nil)
}

func (e *InheritedElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

// AddDependent registers an element for change notifications.
// Dependents are kept for the element's lifetime; an unmounted
// dependent is skipped by the build owner when its rebuild comes up.
func (e *InheritedElement) AddDependent(dependent Element) {
	if e.dependents == nil {
		e.dependents = make(map[Element]struct{})
	}
	e.dependents[dependent] = struct{}{}
}

// RemoveDependent unregisters an element.
func (e *InheritedElement) RemoveDependent(dependent Element) {
	delete(e.dependents, dependent)
}

// inheritedHost is satisfied by InheritedElement and by wrapper
// elements that embed it.
type inheritedHost interface {
	Element
	AddDependent(dependent Element)
	RemoveDependent(dependent Element)
}

// notifyDependent triggers DidChangeDependencies on stateful dependents
// and schedules a rebuild.
func notifyDependent(element Element) {
	if stateful, ok := element.(*StatefulElement); ok {
		if stateful.state != nil {
			stateful.state.DidChangeDependencies()
		}
		stateful.MarkNeedsBuild()
		return
	}
	element.MarkNeedsBuild()
}

// dependOnInherited walks up from element to the nearest inherited host
// whose widget has the requested type, registers element as a
// dependent, and returns the widget.
func dependOnInherited(element Element, inheritedType reflect.Type) any {
	var current Element
	if base, ok := element.(interface{ parentElement() Element }); ok {
		current = base.parentElement()
	}

	for current != nil {
		if inherited, ok := current.(inheritedHost); ok {
			widgetType := reflect.TypeOf(inherited.Widget())
			if widgetType == inheritedType || (widgetType.Kind() == reflect.Pointer && widgetType.Elem() == inheritedType) {
				inherited.AddDependent(element)
				return inherited.Widget()
			}
		}
		if base, ok := current.(interface{ parentElement() Element }); ok {
			current = base.parentElement()
		} else {
			break
		}
	}
	return nil
}

// InheritedProvider makes a value available to descendant widgets
// without passing it through every constructor in between. Descendants
// read it with [ProviderOf]; they rebuild when the provided value
// changes.
//
//	core.InheritedProvider[*core.Orb[int]]{
//	    Value: sharedCounter,
//	    Child: Dashboard{},
//	}
type InheritedProvider[T comparable] struct {
	Value     T
	Child     Widget
	WidgetKey any
}

func (p InheritedProvider[T]) CreateElement() Element {
	return NewInheritedElement()
}

func (p InheritedProvider[T]) Key() any {
	return p.WidgetKey
}

func (p InheritedProvider[T]) ChildWidget() Widget {
	return p.Child
}

func (p InheritedProvider[T]) UpdateShouldNotify(oldWidget InheritedWidget) bool {
	old, ok := oldWidget.(InheritedProvider[T])
	if !ok {
		return true
	}
	return p.Value != old.Value
}

// ProviderOf returns the value from the nearest InheritedProvider[T]
// ancestor, registering the calling context as a dependent. The second
// return is false when no provider of that type is in scope.
//
//	if counter, ok := core.ProviderOf[*core.Orb[int]](ctx); ok {
//	    count, setCount := core.UseOrb(s, counter)
//	    ...
//	}
func ProviderOf[T comparable](ctx BuildContext) (T, bool) {
	inherited := ctx.DependOnInherited(reflect.TypeOf(InheritedProvider[T]{}))
	if inherited == nil {
		var zero T
		return zero, false
	}
	if provider, ok := inherited.(InheritedProvider[T]); ok {
		return provider.Value, true
	}
	var zero T
	return zero, false
}
