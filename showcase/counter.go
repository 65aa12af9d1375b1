package main

import (
	"fmt"

	"github.com/go-drift/orb/pkg/core"
)

// CounterView owns a local count orb. The orb survives rebuilds — the
// initial value is only read on the first build — and is disposed when
// the component unmounts.
type CounterView struct {
	core.StatefulBase
	Initial int
	// Increment receives the setter so the demo can advance the
	// count from outside the tree.
	Increment *func()
}

func (c CounterView) CreateState() core.State {
	return &counterViewState{}
}

type counterViewState struct {
	core.StateBase
}

func (s *counterViewState) Build(ctx core.BuildContext) core.Widget {
	w := ctx.Widget().(CounterView)
	count := core.UseLocalOrb(s, w.Initial)

	fmt.Printf("counter built: count=%d\n", count.Value())

	if w.Increment != nil {
		*w.Increment = func() {
			count.Set(count.Value() + 1)
		}
	}
	return nil
}

func runCounterDemo() error {
	run := newRunner()
	defer run.unmount()

	var increment func()
	run.mount(CounterView{Initial: 1, Increment: &increment})

	for i := 0; i < 3; i++ {
		increment()
		run.pump()
	}

	return nil
}
