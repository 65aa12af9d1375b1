package main

import (
	"fmt"

	"github.com/go-drift/orb/pkg/core"
)

// NameBadge observes an externally owned orb. Every component bound to
// the same orb rebuilds exactly once per change, each reading the same
// value.
type NameBadge struct {
	core.StatefulBase
	Label  string
	Source *core.Orb[string]
}

func (b NameBadge) CreateState() core.State {
	return &nameBadgeState{}
}

type nameBadgeState struct {
	core.StateBase
}

func (s *nameBadgeState) Build(ctx core.BuildContext) core.Widget {
	w := ctx.Widget().(NameBadge)
	name, _ := core.UseOrb(s, w.Source)

	fmt.Printf("%s sees %q\n", w.Label, name)
	return nil
}

func runSharedDemo() error {
	name := core.NewOrb("ada")
	defer name.Dispose()

	run := newRunner()
	defer run.unmount()

	run.mount(core.Group{Children: []core.Widget{
		NameBadge{Label: "header", Source: name},
		NameBadge{Label: "sidebar", Source: name},
	}})

	// One write reaches both observers; writing the current value
	// back is a no-op and rebuilds nothing.
	name.Set("grace")
	run.pump()
	name.Set("grace")
	run.pump()

	return nil
}
