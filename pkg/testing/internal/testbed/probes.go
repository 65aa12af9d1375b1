package testbed

import (
	"github.com/go-drift/orb/pkg/core"
)

// Label is a stateless leaf used to exercise finders.
type Label struct {
	core.StatelessBase
	K    any
	Text string
}

func (l Label) Key() any { return l.K }

func (l Label) Build(ctx core.BuildContext) core.Widget {
	return nil
}

// Panel wraps a child, giving finder tests an ancestor to anchor on.
type Panel struct {
	core.StatelessBase
	K     any
	Child core.Widget
}

func (p Panel) Key() any { return p.K }

func (p Panel) Build(ctx core.BuildContext) core.Widget {
	return p.Child
}

// SharedProbe binds to an externally owned orb. Each build records
// the value it saw and captures the write-through setter.
type SharedProbe struct {
	core.StatefulBase
	K      any
	Source *core.Orb[int]
	Record *Record
}

func (p SharedProbe) Key() any { return p.K }

func (p SharedProbe) CreateState() core.State {
	return &sharedProbeState{}
}

type sharedProbeState struct {
	core.StateBase
}

func (s *sharedProbeState) Build(ctx core.BuildContext) core.Widget {
	w := ctx.Widget().(SharedProbe)
	value, setValue := core.UseOrb(s, w.Source)

	if w.Record != nil {
		w.Record.Builds++
		w.Record.Values = append(w.Record.Values, value)
		w.Record.Set = setValue
	}

	return nil
}
