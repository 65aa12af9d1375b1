package main

import (
	"fmt"

	"github.com/go-drift/orb/pkg/core"
)

// ThemeLabel reads the theme orb from the nearest provider instead of
// taking it as a field, so intermediate widgets never see it.
type ThemeLabel struct {
	core.StatefulBase
}

func (ThemeLabel) CreateState() core.State {
	return &themeLabelState{}
}

type themeLabelState struct {
	core.StateBase
}

func (s *themeLabelState) Build(ctx core.BuildContext) core.Widget {
	theme, ok := core.ProviderOf[*core.Orb[string]](ctx)
	if !ok {
		fmt.Println("label: no theme in scope")
		return nil
	}
	value, _ := core.UseOrb(s, theme)

	fmt.Printf("label sees theme %q\n", value)
	return nil
}

// middle is a stateless pass-through that neither knows nor cares
// about the theme.
type middle struct {
	core.StatelessBase
	Child core.Widget
}

func (m middle) Build(ctx core.BuildContext) core.Widget {
	return m.Child
}

func runProviderDemo() error {
	theme := core.NewOrb("light")
	defer theme.Dispose()

	run := newRunner()
	defer run.unmount()

	run.mount(core.InheritedProvider[*core.Orb[string]]{
		Value: theme,
		Child: middle{Child: ThemeLabel{}},
	})

	theme.Set("dark")
	run.pump()

	return nil
}
