package core

import (
	"slices"
	"sync"
)

// BuildOwner tracks dirty elements that need rebuilding.
type BuildOwner struct {
	dirty    []Element
	dirtySet map[Element]bool
	mu       sync.Mutex

	// OnNeedsFrame is called when a new element is scheduled for
	// rebuild, signalling the host loop that a flush is wanted. This
	// lets hosts sleep until there is work instead of polling.
	OnNeedsFrame func()
}

// NewBuildOwner creates a new BuildOwner.
func NewBuildOwner() *BuildOwner {
	return &BuildOwner{}
}

// ScheduleBuild marks an element as needing rebuild. Scheduling an
// element that is already queued is a no-op, which is what keeps a
// component's rebuild count at one per flush no matter how many
// notifications arrived.
func (b *BuildOwner) ScheduleBuild(element Element) {
	added := func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.dirtySet[element] {
			return false
		}
		if b.dirtySet == nil {
			b.dirtySet = make(map[Element]bool)
		}
		b.dirtySet[element] = true
		b.dirty = append(b.dirty, element)
		return true
	}()

	if added && b.OnNeedsFrame != nil {
		b.OnNeedsFrame()
	}
}

// NeedsWork returns true if any element is waiting to rebuild.
func (b *BuildOwner) NeedsWork() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.dirty) > 0
}

// FlushBuild rebuilds all dirty elements in depth order, parents before
// children. Elements that become dirty during the flush are rebuilt in
// the same call.
func (b *BuildOwner) FlushBuild() {
	for {
		b.mu.Lock()
		if len(b.dirty) == 0 {
			b.mu.Unlock()
			return
		}

		slices.SortFunc(b.dirty, func(a, b Element) int {
			return a.Depth() - b.Depth()
		})

		dirty := b.dirty
		b.dirty = nil
		clear(b.dirtySet)
		b.mu.Unlock()

		for _, element := range dirty {
			if mountable, ok := element.(interface{ isMounted() bool }); ok && !mountable.isMounted() {
				continue
			}
			element.RebuildIfNeeded()
		}
	}
}
