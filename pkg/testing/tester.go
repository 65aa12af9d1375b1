package testing

import (
	"errors"
	"testing"

	"github.com/go-drift/orb/pkg/core"
)

// DefaultMaxFlushes is the pump budget used by PumpUntilSettled when
// the caller passes a non-positive limit.
const DefaultMaxFlushes = 100

// ErrNotSettled is returned when PumpUntilSettled exhausts its flush
// budget with work still pending.
var ErrNotSettled = errors.New("PumpUntilSettled: tree did not settle")

// ComponentTester drives a component tree in isolation. It owns a
// build owner and a dispatch queue, standing in for the host
// framework's frame loop: tests mount a widget, trigger writes, and
// pump rebuilds deterministically.
type ComponentTester struct {
	buildOwner *core.BuildOwner
	root       core.Element
	dispatches []func()
}

// NewTester creates a tester with a fresh build owner.
// Call Cleanup() when done, or use NewTesterWithT() instead.
func NewTester() *ComponentTester {
	return &ComponentTester{
		buildOwner: core.NewBuildOwner(),
	}
}

// NewTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T) *ComponentTester {
	tester := NewTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts the tree so state disposers and orb subscriptions
// are released. Must be called if not using NewTesterWithT.
func (t *ComponentTester) Cleanup() {
	if t.root != nil {
		t.root.Unmount()
		t.root = nil
	}
	t.dispatches = nil
}

// Mount mounts (or remounts) a widget and flushes the initial build.
func (t *ComponentTester) Mount(widget core.Widget) {
	if t.root != nil {
		t.root.Unmount()
		t.root = nil
	}

	t.root = core.MountRoot(widget, t.buildOwner)
	t.Pump()
}

// Pump runs one cycle: it drains the dispatch queue, then flushes
// pending rebuilds.
func (t *ComponentTester) Pump() {
	dispatches := t.dispatches
	t.dispatches = nil
	for _, fn := range dispatches {
		fn()
	}

	t.buildOwner.FlushBuild()
}

// PumpUntilSettled pumps until no work remains. A dispatch that
// schedules another dispatch keeps the tree unsettled, so the loop
// gives up after maxFlushes pumps and returns ErrNotSettled.
// Non-positive maxFlushes uses DefaultMaxFlushes.
func (t *ComponentTester) PumpUntilSettled(maxFlushes int) error {
	if maxFlushes <= 0 {
		maxFlushes = DefaultMaxFlushes
	}
	for i := 0; i < maxFlushes; i++ {
		t.Pump()
		if !t.NeedsWork() {
			return nil
		}
	}
	return ErrNotSettled
}

// NeedsWork reports whether rebuilds or dispatches are pending.
func (t *ComponentTester) NeedsWork() bool {
	return t.buildOwner.NeedsWork() || len(t.dispatches) > 0
}

// Dispatch queues a callback for the next Pump, mirroring how a host
// framework defers work to the next frame.
func (t *ComponentTester) Dispatch(fn func()) {
	t.dispatches = append(t.dispatches, fn)
}

// RootElement returns the root element of the mounted tree.
func (t *ComponentTester) RootElement() core.Element {
	return t.root
}

// Find evaluates a finder against the current element tree.
func (t *ComponentTester) Find(finder Finder) FinderResult {
	if t.root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		elements: finder.Evaluate(t.root),
		finder:   finder,
	}
}
