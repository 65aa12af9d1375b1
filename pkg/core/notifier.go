package core

import (
	"slices"
	"sync"
	"time"

	"github.com/go-drift/orb/pkg/errors"
)

// Listenable is anything that can notify zero-argument listeners.
// [Notifier] and [ControllerBase] implement it; [UseListenable] consumes
// it.
type Listenable interface {
	// AddListener registers fn and returns a function that removes
	// exactly this registration.
	AddListener(fn func()) func()
}

// notifierEntry is one registration; removal matches the entry pointer.
type notifierEntry struct {
	fn func()
}

// Notifier broadcasts a no-payload event to registered listeners. It is
// the untyped counterpart of [Orb]: same registration-order fan-out,
// same unsubscribe handles, no value.
//
// The zero value is ready to use. Notifier is thread-safe; listeners
// run synchronously on the notifying goroutine, outside the internal
// lock.
type Notifier struct {
	mu        sync.Mutex
	listeners []*notifierEntry
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// AddListener registers fn to run on every Notify. Registrations are
// not deduplicated. The returned function removes exactly this
// registration and is safe to call more than once.
func (n *Notifier) AddListener(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	entry := &notifierEntry{fn: fn}
	n.mu.Lock()
	n.listeners = append(n.listeners, entry)
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, candidate := range n.listeners {
			if candidate == entry {
				n.listeners = slices.Delete(n.listeners, i, i+1)
				return
			}
		}
	}
}

// Notify invokes all listeners in registration order. A panicking
// listener is reported through the errors package and the remaining
// listeners still run.
func (n *Notifier) Notify() {
	n.notify("core.Notifier.Notify")
}

// notify fans out under the given operation name, so wrappers like
// ControllerBase report panics against their own entry point.
func (n *Notifier) notify(op string) {
	n.mu.Lock()
	snapshot := slices.Clone(n.listeners)
	n.mu.Unlock()

	for _, entry := range snapshot {
		invokeNotifierListener(op, entry)
	}
}

func invokeNotifierListener(op string, entry *notifierEntry) {
	defer func() {
		if r := recover(); r != nil {
			errors.ReportPanic(&errors.PanicError{
				Op:         op,
				Value:      r,
				StackTrace: errors.CaptureStack(),
				Timestamp:  time.Now(),
			})
		}
	}()
	entry.fn()
}

// ListenerCount returns the number of active registrations.
func (n *Notifier) ListenerCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}

// Dispose removes all listeners. Idempotent; the notifier stays usable.
func (n *Notifier) Dispose() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = nil
}
