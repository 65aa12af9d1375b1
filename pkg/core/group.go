package core

// Group composes multiple children without adding behavior of its own.
// Children reconcile by key across rebuilds, so reordering keyed
// children moves their elements instead of recreating them.
type Group struct {
	Children  []Widget
	WidgetKey any
}

func (g Group) CreateElement() Element {
	return NewGroupElement()
}

func (g Group) Key() any {
	return g.WidgetKey
}

// GroupElement hosts a Group and reconciles its child list.
type GroupElement struct {
	elementBase
	children []Element
}

// NewGroupElement creates an element for a Group. The widget and build
// owner are set by the framework during inflation.
func NewGroupElement() *GroupElement {
	element := &GroupElement{}
	element.self = element
	return element
}

func (e *GroupElement) Mount(parent Element, slot any) {
	e.mountBase(parent, slot)
	e.RebuildIfNeeded()
}

func (e *GroupElement) Update(newWidget Widget) {
	e.widget = newWidget
	e.MarkNeedsBuild()
}

func (e *GroupElement) Unmount() {
	e.mounted = false
	for _, child := range e.children {
		child.Unmount()
	}
	e.children = nil
}

func (e *GroupElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	group := e.widget.(Group)
	e.children = updateChildren(e.self, e.children, group.Children, e.buildOwner)
}

func (e *GroupElement) VisitChildren(visitor func(Element) bool) {
	for _, child := range e.children {
		if !visitor(child) {
			return
		}
	}
}
