// Package core provides observable value containers and the component
// framework they bind to.
//
// # Orbs
//
// An [Orb] holds one value and notifies listeners when it changes.
// Writes go through an equality gate, so storing an equal value is
// silent; changed values fan out to listeners synchronously, in
// registration order:
//
//	counter := core.NewOrb(0)
//	unsub := counter.AddListener(func(v int) {
//	    fmt.Printf("now %d\n", v)
//	})
//	counter.Set(5) // listeners fire
//	counter.Set(5) // equal value, nothing fires
//	unsub()
//
// [Notifier] is the untyped counterpart for plain events, and
// [ControllerBase] builds on it for long-lived controller objects.
//
// # Components
//
// Widget is an immutable description of part of the component tree.
// Widgets are lightweight configuration values that can be recreated on
// every build. Element is the instantiation of a widget at a location
// in the tree; elements manage lifecycle and identity. For widgets with
// mutable state, embed [StateBase] in a state struct:
//
//	type counterState struct {
//	    core.StateBase
//	    counter *core.Orb[int]
//	}
//
//	func (s *counterState) Build(ctx core.BuildContext) core.Widget {
//	    count, setCount := core.UseOrb(s, s.counter)
//	    ...
//	}
//
// # Hooks
//
// Hooks bind components to containers from inside Build. [UseOrb]
// subscribes the component to an orb it does not own and returns the
// current value with a setter. [UseLocalOrb] creates an orb owned by
// the component, disposed on unmount. [UseListenable] and
// [UseController] do the same for notifiers and controllers. Hook call
// sites are memoized by call order, so hooks must run in the same order
// on every build.
//
// # Constructor conventions
//
// Long-lived mutable objects (orbs, notifiers, controllers) use NewX()
// constructors returning pointers:
//
//	counter := core.NewOrb(0)
//	refresh := core.NewNotifier()
//
// Immutable configuration (widgets) uses struct literals, with XxxOf()
// helpers like [ProviderOf] for tree lookups.
package core
