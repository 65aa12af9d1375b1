package core

// StatelessBase provides default CreateElement and Key implementations
// for stateless widgets. Embed it in your widget struct to satisfy the
// Widget interface without boilerplate:
//
//	type Greeting struct {
//	    core.StatelessBase
//	    Name string
//	}
//
//	func (g Greeting) Build(ctx core.BuildContext) core.Widget {
//	    return Label{Text: "Hello, " + g.Name}
//	}
type StatelessBase struct{}

// CreateElement returns a new StatelessElement.
func (StatelessBase) CreateElement() Element { return NewStatelessElement() }

// Key returns nil (no key).
func (StatelessBase) Key() any { return nil }

// StatefulBase provides default CreateElement and Key implementations
// for stateful widgets. Embed it in your widget struct to satisfy the
// Widget interface without boilerplate:
//
//	type Counter struct {
//	    core.StatefulBase
//	}
//
//	func (Counter) CreateState() core.State { return &counterState{} }
type StatefulBase struct{}

// CreateElement returns a new StatefulElement.
func (StatefulBase) CreateElement() Element { return NewStatefulElement() }

// Key returns nil (no key).
func (StatefulBase) Key() any { return nil }

// InheritedBase provides default CreateElement and Key implementations
// for inherited widgets. Embed it in your widget struct along with a
// Child field and implement [InheritedWidget.UpdateShouldNotify] and
// [InheritedWidget.ChildWidget]:
//
//	type UserScope struct {
//	    core.InheritedBase
//	    User  *User
//	    Child core.Widget
//	}
//
//	func (u UserScope) ChildWidget() core.Widget { return u.Child }
//
//	func (u UserScope) UpdateShouldNotify(old core.InheritedWidget) bool {
//	    return u.User != old.(UserScope).User
//	}
type InheritedBase struct{}

// CreateElement returns a new InheritedElement.
func (InheritedBase) CreateElement() Element { return NewInheritedElement() }

// Key returns nil (no key).
func (InheritedBase) Key() any { return nil }

// Stateful creates an inline stateful widget using closures.
// Use this for quick, self-contained fragments that don't need hooks
// or lifecycle methods.
//
//	widget := core.Stateful(
//	    func() int { return 0 },
//	    func(count int, ctx core.BuildContext, setState func(func(int) int)) core.Widget {
//	        return Button{
//	            Label: fmt.Sprintf("Count: %d", count),
//	            OnTap: func() {
//	                setState(func(c int) int { return c + 1 })
//	            },
//	        }
//	    },
//	)
//
// The generic parameter is the state type. setState takes a function
// that transforms the current state to a new state.
//
// For widgets with many state fields, lifecycle methods, or hooks like
// UseOrb and UseController, embed [StateBase] in a named struct
// instead.
func Stateful[S any](
	init func() S,
	build func(state S, ctx BuildContext, setState func(func(S) S)) Widget,
) Widget {
	return &inlineStatefulWidget[S]{
		initFn:  init,
		buildFn: build,
	}
}

type inlineStatefulWidget[S any] struct {
	initFn  func() S
	buildFn func(state S, ctx BuildContext, setState func(func(S) S)) Widget
}

func (w *inlineStatefulWidget[S]) CreateElement() Element {
	return NewStatefulElement()
}

func (w *inlineStatefulWidget[S]) Key() any { return nil }

func (w *inlineStatefulWidget[S]) CreateState() State {
	return &inlineStatefulState[S]{
		initFn:  w.initFn,
		buildFn: w.buildFn,
	}
}

type inlineStatefulState[S any] struct {
	StateBase
	value   S
	initFn  func() S
	buildFn func(state S, ctx BuildContext, setState func(func(S) S)) Widget
}

func (s *inlineStatefulState[S]) InitState() {
	s.value = s.initFn()
}

func (s *inlineStatefulState[S]) Build(ctx BuildContext) Widget {
	return s.buildFn(s.value, ctx, func(update func(S) S) {
		s.SetState(func() {
			s.value = update(s.value)
		})
	})
}
