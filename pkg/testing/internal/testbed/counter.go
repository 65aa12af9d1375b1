// Package testbed provides internal test widgets for the testing harness.
package testbed

import (
	"github.com/go-drift/orb/pkg/core"
)

// Record captures what a probe widget observed across builds.
type Record struct {
	// Builds counts completed Build calls.
	Builds int
	// Values holds the orb value seen by each build, in order.
	Values []int
	// Set writes through the probe's orb. Captured on every build.
	Set func(int)
}

// Counter is a stateful widget owning a local count orb. Each build
// records the current count and captures a setter that writes through
// the orb, so tests can advance the count from outside.
type Counter struct {
	core.StatefulBase
	Initial int
	Record  *Record
}

func (c Counter) CreateState() core.State {
	return &counterState{}
}

type counterState struct {
	core.StateBase
}

func (s *counterState) Build(ctx core.BuildContext) core.Widget {
	w := ctx.Widget().(Counter)
	count := core.UseLocalOrb(s, w.Initial)

	if w.Record != nil {
		w.Record.Builds++
		w.Record.Values = append(w.Record.Values, count.Value())
		w.Record.Set = count.Set
	}

	return Label{Text: "count"}
}
