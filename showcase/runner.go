package main

import (
	"github.com/go-drift/orb/pkg/core"
)

// runner is a minimal headless frame loop: it mounts a widget tree on
// its own build owner and flushes rebuilds on demand, standing in for
// a host framework's frame scheduler.
type runner struct {
	buildOwner *core.BuildOwner
	root       core.Element
}

func newRunner() *runner {
	return &runner{buildOwner: core.NewBuildOwner()}
}

// mount mounts the widget and flushes the initial build.
func (r *runner) mount(widget core.Widget) {
	r.root = core.MountRoot(widget, r.buildOwner)
	r.buildOwner.FlushBuild()
}

// pump flushes pending rebuilds, like one frame of a host loop.
func (r *runner) pump() {
	r.buildOwner.FlushBuild()
}

// unmount tears the tree down, running state disposers and releasing
// orb subscriptions.
func (r *runner) unmount() {
	if r.root != nil {
		r.root.Unmount()
		r.root = nil
	}
}
