// Package testing provides a component testing harness for Orb.
//
// # Quick Start
//
// Create a tester, mount a widget, and make assertions:
//
//	func TestCounter(t *testing.T) {
//	    tester := orbtest.NewTesterWithT(t)
//	    count := core.NewOrb(1)
//	    tester.Mount(CounterLabel{Count: count})
//
//	    // Find elements
//	    label := tester.Find(orbtest.ByType[CounterLabel]()).First()
//
//	    // Trigger a write and rebuild
//	    count.Set(2)
//	    tester.Pump()
//
//	    if label.Widget().(CounterLabel).Count.Value() != 2 {
//	        t.Error("expected updated count")
//	    }
//	}
//
// # Settling
//
// Writes made from listeners or dispatched callbacks can schedule
// further work. PumpUntilSettled pumps until the tree is idle:
//
//	if err := tester.PumpUntilSettled(0); err != nil {
//	    t.Fatal(err)
//	}
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import orbtest "github.com/go-drift/orb/pkg/testing"
package testing
