package core

import (
	"slices"
	"sync"
	"time"

	"github.com/go-drift/orb/pkg/errors"
)

// orbEntry is one listener registration. Removal matches the entry
// pointer, so the same function can be registered more than once and
// each unsubscribe handle removes only its own registration.
type orbEntry[T any] struct {
	fn func(T)
}

// Orb holds a single value and notifies listeners when it changes.
//
// Orb is thread-safe and can be shared across goroutines. Listeners run
// synchronously on the goroutine that calls Set, in registration order,
// outside the internal lock, so a listener may freely read the orb or
// write it again.
//
// An orb outlives any component bound to it; see [UseOrb] for binding
// and [UseLocalOrb] for orbs owned by a single component.
type Orb[T any] struct {
	mu        sync.Mutex
	value     T
	equals    func(a, b T) bool
	listeners []*orbEntry[T]
}

// NewOrb creates an orb holding initial. Writes compare old and new
// with == and listeners fire only when the value actually changed.
//
// The comparison is shallow. Mutating a struct behind a pointer and
// writing the same pointer back is not a change the orb can see; write
// a fresh value, or use NewOrbWithEquality for custom change detection.
func NewOrb[T comparable](initial T) *Orb[T] {
	return &Orb[T]{
		value:  initial,
		equals: func(a, b T) bool { return a == b },
	}
}

// NewOrbWithEquality creates an orb with a custom equality function,
// for types that are not comparable or need coarser change detection.
// equals returning true suppresses notification for that write. A nil
// equals means every write notifies.
func NewOrbWithEquality[T any](initial T, equals func(a, b T) bool) *Orb[T] {
	return &Orb[T]{
		value:  initial,
		equals: equals,
	}
}

// Value returns the current value.
func (o *Orb[T]) Value() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Set stores value and invokes every listener with it, in registration
// order. If the orb's equality function considers value equal to the
// current value, nothing is stored and no listener runs.
//
// A listener that panics is reported through the errors package and
// does not stop the remaining listeners. A listener may call Set again;
// the nested write fans out before the outer call returns, so a
// listener that unconditionally writes a non-converging value will
// recurse without bound.
func (o *Orb[T]) Set(value T) {
	o.mu.Lock()
	if o.equals != nil && o.equals(o.value, value) {
		o.mu.Unlock()
		return
	}
	o.value = value
	snapshot := slices.Clone(o.listeners)
	o.mu.Unlock()

	fanOut(snapshot, value)
}

// Update applies transform to the current value and writes the result
// through the same equality gate as Set. The transform runs while the
// orb's lock is held and must not call back into the orb.
func (o *Orb[T]) Update(transform func(T) T) {
	if transform == nil {
		return
	}
	o.mu.Lock()
	next := transform(o.value)
	if o.equals != nil && o.equals(o.value, next) {
		o.mu.Unlock()
		return
	}
	o.value = next
	snapshot := slices.Clone(o.listeners)
	o.mu.Unlock()

	fanOut(snapshot, next)
}

// AddListener registers fn to run after every change. Registrations are
// not deduplicated: adding the same function twice makes it fire twice
// per change.
//
// The returned function removes exactly this registration. It is safe
// to call it more than once, concurrently with writes, and after
// Dispose. A handle removed while a notification is in flight may still
// receive that notification; it is excluded from all later writes.
func (o *Orb[T]) AddListener(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}
	entry := &orbEntry[T]{fn: fn}
	o.mu.Lock()
	o.listeners = append(o.listeners, entry)
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		for i, candidate := range o.listeners {
			if candidate == entry {
				o.listeners = slices.Delete(o.listeners, i, i+1)
				return
			}
		}
	}
}

// ListenerCount returns the number of active registrations.
func (o *Orb[T]) ListenerCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.listeners)
}

// Dispose removes all listeners. The orb itself stays usable: Value and
// Set keep working, and listeners added afterward are notified again.
// Dispose is idempotent, and unsubscribe handles from before the
// disposal degrade to no-ops.
func (o *Orb[T]) Dispose() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.listeners = nil
}

// fanOut invokes a snapshot of listeners, isolating panics per listener.
func fanOut[T any](entries []*orbEntry[T], value T) {
	for _, entry := range entries {
		invokeOrbListener(entry, value)
	}
}

func invokeOrbListener[T any](entry *orbEntry[T], value T) {
	defer func() {
		if r := recover(); r != nil {
			errors.ReportPanic(&errors.PanicError{
				Op:         "core.Orb.Set",
				Value:      r,
				StackTrace: errors.CaptureStack(),
				Timestamp:  time.Now(),
			})
		}
	}()
	entry.fn(value)
}
