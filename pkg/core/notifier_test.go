package core

import (
	"testing"

	"github.com/go-drift/orb/pkg/errors"
)

func TestNotifier_NotifyInvokesListenersInOrder(t *testing.T) {
	n := NewNotifier()

	var order []int
	n.AddListener(func() { order = append(order, 1) })
	n.AddListener(func() { order = append(order, 2) })

	n.Notify()

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("expected listeners in registration order, got %v", order)
	}
}

func TestNotifier_ZeroValueUsable(t *testing.T) {
	var n Notifier

	fired := 0
	n.AddListener(func() { fired++ })
	n.Notify()

	if fired != 1 {
		t.Errorf("expected zero-value notifier to deliver, fired %d times", fired)
	}
}

func TestNotifier_Unsubscribe(t *testing.T) {
	n := NewNotifier()

	fired := 0
	unsub := n.AddListener(func() { fired++ })

	n.Notify()
	unsub()
	n.Notify()

	if fired != 1 {
		t.Errorf("expected 1 firing, got %d", fired)
	}
	if n.ListenerCount() != 0 {
		t.Errorf("expected 0 listeners, got %d", n.ListenerCount())
	}
}

func TestNotifier_DuplicateListenerFiresPerRegistration(t *testing.T) {
	n := NewNotifier()

	fired := 0
	fn := func() { fired++ }
	n.AddListener(fn)
	n.AddListener(fn)

	n.Notify()

	if fired != 2 {
		t.Errorf("expected duplicate registration to fire twice, fired %d times", fired)
	}
}

func TestNotifier_Dispose(t *testing.T) {
	n := NewNotifier()

	fired := 0
	n.AddListener(func() { fired++ })

	n.Dispose()
	n.Notify()

	if fired != 0 {
		t.Errorf("expected no notifications after Dispose, got %d", fired)
	}
	if n.ListenerCount() != 0 {
		t.Errorf("expected 0 listeners after Dispose, got %d", n.ListenerCount())
	}
}

func TestNotifier_NilListenerIgnored(t *testing.T) {
	n := NewNotifier()
	unsub := n.AddListener(nil)

	if n.ListenerCount() != 0 {
		t.Errorf("expected nil listener not to register, got %d", n.ListenerCount())
	}
	unsub()
	n.Notify()
}

func TestNotifier_ListenerPanicIsolated(t *testing.T) {
	handler := &panicCaptureHandler{}
	errors.SetHandler(handler)
	defer errors.SetHandler(nil)

	n := NewNotifier()

	after := 0
	n.AddListener(func() { panic("notifier boom") })
	n.AddListener(func() { after++ })

	n.Notify()

	if after != 1 {
		t.Errorf("expected the listener after the panic to fire, fired %d times", after)
	}
	if len(handler.panics) != 1 {
		t.Fatalf("expected 1 reported panic, got %d", len(handler.panics))
	}
	if handler.panics[0].Op != "core.Notifier.Notify" {
		t.Errorf("expected op 'core.Notifier.Notify', got %q", handler.panics[0].Op)
	}
}

func TestControllerBase_NotifyListeners(t *testing.T) {
	type scrollController struct {
		ControllerBase
		offset float64
	}

	c := &scrollController{}

	var got float64
	c.AddListener(func() { got = c.offset })

	c.offset = 42
	c.NotifyListeners()

	if got != 42 {
		t.Errorf("expected listener to observe offset 42, got %v", got)
	}
}

func TestControllerBase_SatisfiesListenable(t *testing.T) {
	var l Listenable = &ControllerBase{}

	fired := 0
	unsub := l.AddListener(func() { fired++ })
	l.(*ControllerBase).NotifyListeners()
	unsub()
	l.(*ControllerBase).NotifyListeners()

	if fired != 1 {
		t.Errorf("expected 1 firing through the Listenable interface, got %d", fired)
	}
}

func TestControllerBase_PanicReportsControllerOp(t *testing.T) {
	handler := &panicCaptureHandler{}
	errors.SetHandler(handler)
	defer errors.SetHandler(nil)

	c := &ControllerBase{}
	c.AddListener(func() { panic("controller boom") })

	c.NotifyListeners()

	if len(handler.panics) != 1 {
		t.Fatalf("expected 1 reported panic, got %d", len(handler.panics))
	}
	if handler.panics[0].Op != "core.ControllerBase.NotifyListeners" {
		t.Errorf("expected op 'core.ControllerBase.NotifyListeners', got %q", handler.panics[0].Op)
	}
}

func TestControllerBase_DisposeStopsDelivery(t *testing.T) {
	c := &ControllerBase{}

	fired := 0
	c.AddListener(func() { fired++ })

	c.Dispose()
	c.NotifyListeners()

	if fired != 0 {
		t.Errorf("expected no delivery after Dispose, got %d", fired)
	}
}
