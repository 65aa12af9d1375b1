package core

import "fmt"

// Hooks bind a component to orbs, listenables, and controllers from
// inside Build. Each call site owns one memoized cell on the state's
// StateBase, found by call order, so hooks must run in the same order
// on every build: do not call them from branches that come and go.

// acquireHook returns the memoized cell for the current hook call site,
// creating it with create on the first build it is reached.
func acquireHook[H any](base *StateBase, create func() H) H {
	index := base.nextHookIndex()
	if index == len(base.hooks) {
		cell := create()
		base.hooks = append(base.hooks, cell)
		return cell
	}
	cell, ok := base.hooks[index].(H)
	if !ok {
		panic(fmt.Sprintf("core: hook slot %d holds %T; hooks must run in the same order every build", index, base.hooks[index]))
	}
	return cell
}

// orbBinding is the memoized cell behind UseOrb.
type orbBinding[T any] struct {
	orb    *Orb[T]
	unsub  func()
	setter func(T)
}

// UseOrb binds the component to o and returns o's current value
// together with a setter that writes through the orb. Call it from
// Build; the component rebuilds after every change to o.
//
//	func (s *counterState) Build(ctx core.BuildContext) core.Widget {
//	    count, setCount := core.UseOrb(s, s.counter)
//	    ...
//	}
//
// The setter updates nothing directly: it calls o.Set, and the new
// value reaches the component through the orb's own notification, the
// same as any other writer. Its identity is stable for as long as the
// same orb is passed.
//
// When a build passes a different orb than the previous build, the
// listener on the old orb is removed before the new subscription is
// made: no write can reach the component through the abandoned orb, and
// there is no window where both orbs are subscribed. Unmounting the
// component removes the subscription.
func UseOrb[T any](s stateBase, o *Orb[T]) (T, func(T)) {
	base := s.state()
	cell := acquireHook(base, func() *orbBinding[T] {
		b := &orbBinding[T]{}
		base.OnDispose(func() {
			if b.unsub != nil {
				b.unsub()
			}
		})
		return b
	})
	if cell.orb != o {
		if cell.unsub != nil {
			cell.unsub()
		}
		cell.orb = o
		cell.unsub = o.AddListener(func(T) {
			base.SetState(nil)
		})
		cell.setter = func(value T) {
			o.Set(value)
		}
	}
	return o.Value(), cell.setter
}

// localOrb is the memoized cell behind UseLocalOrb.
type localOrb[T any] struct {
	orb   *Orb[T]
	unsub func()
}

// UseLocalOrb creates an orb owned by the component. The first build
// creates it with initial and subscribes the component; every later
// build returns the same orb and ignores the initial argument entirely.
// Unmounting the component unsubscribes and disposes the orb.
//
//	func (s *counterState) Build(ctx core.BuildContext) core.Widget {
//	    count := core.UseLocalOrb(s, 0)
//	    ...
//	    count.Set(count.Value() + 1) // triggers a rebuild
//	}
func UseLocalOrb[T comparable](s stateBase, initial T) *Orb[T] {
	return useLocalOrb(s, func() *Orb[T] { return NewOrb(initial) })
}

// UseLocalOrbWithEquality is UseLocalOrb with a custom equality
// function, for value types that are not comparable or need coarser
// change detection.
func UseLocalOrbWithEquality[T any](s stateBase, initial T, equals func(a, b T) bool) *Orb[T] {
	return useLocalOrb(s, func() *Orb[T] { return NewOrbWithEquality(initial, equals) })
}

func useLocalOrb[T any](s stateBase, create func() *Orb[T]) *Orb[T] {
	base := s.state()
	cell := acquireHook(base, func() *localOrb[T] {
		orb := create()
		c := &localOrb[T]{orb: orb}
		c.unsub = orb.AddListener(func(T) {
			base.SetState(nil)
		})
		base.OnDispose(func() {
			c.unsub()
			orb.Dispose()
		})
		return c
	})
	return cell.orb
}

// listenableBinding is the memoized cell behind UseListenable.
type listenableBinding struct {
	listenable Listenable
	unsub      func()
}

// UseListenable rebuilds the component whenever l notifies. Call it
// from Build. Passing a different Listenable on a later build removes
// the old subscription before adding the new one; unmount removes it.
func UseListenable(s stateBase, l Listenable) {
	base := s.state()
	cell := acquireHook(base, func() *listenableBinding {
		b := &listenableBinding{}
		base.OnDispose(func() {
			if b.unsub != nil {
				b.unsub()
			}
		})
		return b
	})
	if cell.listenable != l {
		if cell.unsub != nil {
			cell.unsub()
		}
		cell.listenable = l
		cell.unsub = l.AddListener(func() {
			base.SetState(nil)
		})
	}
}

// UseController memoizes a controller for the component's lifetime and
// disposes it when the component unmounts. create runs once, on the
// first build.
//
//	func (s *myState) Build(ctx core.BuildContext) core.Widget {
//	    scroll := core.UseController(s, NewScrollController)
//	    core.UseListenable(s, scroll)
//	    ...
//	}
func UseController[C Disposable](s stateBase, create func() C) C {
	base := s.state()
	return acquireHook(base, func() C {
		controller := create()
		base.OnDispose(controller.Dispose)
		return controller
	})
}
