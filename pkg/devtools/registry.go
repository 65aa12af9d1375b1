// Package devtools provides runtime inspection for orb-based applications:
// a named registry of observed orbs, a change trace buffer, runtime
// memory/GC sampling, and an HTTP server exposing all of it as JSON.
package devtools

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-drift/orb/pkg/core"
	"github.com/go-drift/orb/pkg/errors"
)

// OrbInfo is a point-in-time view of one registered orb.
type OrbInfo struct {
	// Name is the registration name.
	Name string `json:"name"`
	// Type is the Go type of the orb's value.
	Type string `json:"type"`
	// Changes counts writes observed since registration.
	Changes uint64 `json:"changes"`
	// LastChange is the Unix-millisecond time of the most recent
	// observed write, or 0 when none has been observed yet.
	LastChange int64 `json:"lastChange,omitempty"`
	// Value is the formatted current value. Empty when debug mode
	// is off.
	Value string `json:"value,omitempty"`
}

type registryEntry struct {
	name       string
	typeName   string
	changes    uint64
	lastChange time.Time
	value      string
}

// orbRegistry is the package-level registry shared by Register, the
// change buffer, and the inspection server.
type orbRegistry struct {
	mu      sync.Mutex
	entries map[string]*registryEntry
	buffer  *ChangeBuffer
	seq     uint64
}

var registry = orbRegistry{
	entries: make(map[string]*registryEntry),
}

// Register attaches a named observer to an orb so the inspection
// surfaces can report its change count, last change time, and current
// value. The returned release function detaches the observer and frees
// the name for reuse; it is safe to call more than once.
//
// Names must be unique across the process. Registering a name that is
// already taken returns a KindRegistry error and leaves the existing
// registration untouched.
func Register[T any](name string, orb *core.Orb[T]) (func(), error) {
	if name == "" {
		return nil, registryError("name must not be empty")
	}
	if orb == nil {
		return nil, registryError("orb %q is nil", name)
	}

	entry := &registryEntry{
		name:     name,
		typeName: reflect.TypeOf((*T)(nil)).Elem().String(),
	}
	if core.DebugMode {
		entry.value = formatValue(orb.Value())
	}

	registry.mu.Lock()
	if _, exists := registry.entries[name]; exists {
		registry.mu.Unlock()
		return nil, registryError("orb %q already registered", name)
	}
	registry.entries[name] = entry
	registry.mu.Unlock()

	unsub := orb.AddListener(func(value T) {
		registry.observe(entry, value)
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			unsub()
			registry.mu.Lock()
			if registry.entries[name] == entry {
				delete(registry.entries, name)
			}
			registry.mu.Unlock()
		})
	}, nil
}

// Entries returns a snapshot of every registered orb, sorted by name.
func Entries() []OrbInfo {
	registry.mu.Lock()
	infos := make([]OrbInfo, 0, len(registry.entries))
	for _, entry := range registry.entries {
		info := OrbInfo{
			Name:    entry.name,
			Type:    entry.typeName,
			Changes: entry.changes,
			Value:   entry.value,
		}
		if !entry.lastChange.IsZero() {
			info.LastChange = entry.lastChange.UnixMilli()
		}
		infos = append(infos, info)
	}
	registry.mu.Unlock()

	slices.SortFunc(infos, func(a, b OrbInfo) int {
		return strings.Compare(a.Name, b.Name)
	})
	return infos
}

// observe records one orb write: it advances the entry's counters and,
// when tracing is enabled, appends a record to the change buffer.
func (r *orbRegistry) observe(entry *registryEntry, value any) {
	now := time.Now()
	formatted := ""
	if core.DebugMode {
		formatted = formatValue(value)
	}

	r.mu.Lock()
	entry.changes++
	entry.lastChange = now
	entry.value = formatted
	r.seq++
	seq := r.seq
	buffer := r.buffer
	r.mu.Unlock()

	if buffer != nil {
		buffer.Add(ChangeRecord{
			Seq:       seq,
			Name:      entry.name,
			Value:     formatted,
			Timestamp: now.UnixMilli(),
		})
	}
}

// setTracing installs or removes the change buffer. The buffer is kept
// when only non-capacity settings changed, so records survive repeated
// SetDevtools calls.
func setTracing(enabled bool, capacity int) {
	if capacity <= 0 {
		capacity = DefaultChangeCapacity
	}
	registry.mu.Lock()
	if !enabled {
		registry.buffer = nil
	} else if registry.buffer == nil || registry.buffer.Capacity() != capacity {
		registry.buffer = NewChangeBuffer(capacity)
	}
	registry.mu.Unlock()
}

// changeSnapshot returns the current change log, or ok=false when
// tracing is disabled.
func changeSnapshot() (ChangeLog, bool) {
	registry.mu.Lock()
	buffer := registry.buffer
	registry.mu.Unlock()

	if buffer == nil {
		return ChangeLog{}, false
	}
	return buffer.Snapshot(), true
}

func registryError(format string, args ...any) error {
	return &errors.OrbError{
		Op:        "devtools.Register",
		Kind:      errors.KindRegistry,
		Err:       fmt.Errorf(format, args...),
		Timestamp: time.Now(),
	}
}

// formatValue renders a value for snapshots and change records.
func formatValue(value any) string {
	return fmt.Sprintf("%v", value)
}
