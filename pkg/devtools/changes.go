package devtools

import (
	"sync"
)

// DefaultChangeCapacity is the number of change records retained when a
// Config does not specify a capacity.
const DefaultChangeCapacity = 256

// ChangeRecord is a single observed write to a registered orb.
type ChangeRecord struct {
	// Seq orders records across all registered orbs. It increases by
	// one per observed write and never resets while the process runs.
	Seq uint64 `json:"seq"`
	// Name is the registration name of the orb that changed.
	Name string `json:"name"`
	// Value is the formatted new value. Empty when debug mode is off.
	Value string `json:"value,omitempty"`
	// Timestamp is the observation time in Unix milliseconds.
	Timestamp int64 `json:"ts"`
}

// ChangeLog is the inspection server response shape for /changes.
type ChangeLog struct {
	Changes []ChangeRecord `json:"changes"`
	Dropped int            `json:"dropped"`
}

// ChangeBuffer stores recent change records in a ring buffer. Once the
// buffer fills, each new record overwrites the oldest and the dropped
// count advances.
type ChangeBuffer struct {
	mu      sync.RWMutex
	records []ChangeRecord
	index   int
	count   int
	dropped int
}

// NewChangeBuffer creates a new change buffer.
func NewChangeBuffer(capacity int) *ChangeBuffer {
	if capacity <= 0 {
		capacity = DefaultChangeCapacity
	}
	return &ChangeBuffer{
		records: make([]ChangeRecord, capacity),
	}
}

// Capacity returns the buffer capacity.
func (b *ChangeBuffer) Capacity() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.records)
}

// Count returns the number of records currently held.
func (b *ChangeBuffer) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// Dropped returns how many records have been overwritten.
func (b *ChangeBuffer) Dropped() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dropped
}

// Add records a change, evicting the oldest record when full.
func (b *ChangeBuffer) Add(record ChangeRecord) {
	b.mu.Lock()
	if b.count == len(b.records) {
		b.dropped++
	}
	b.records[b.index] = record
	b.index = (b.index + 1) % len(b.records)
	if b.count < len(b.records) {
		b.count++
	}
	b.mu.Unlock()
}

// Snapshot returns a chronological copy of the held records and the
// dropped count.
func (b *ChangeBuffer) Snapshot() ChangeLog {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return ChangeLog{Dropped: b.dropped}
	}

	result := make([]ChangeRecord, b.count)
	if b.count < len(b.records) {
		copy(result, b.records[:b.count])
	} else {
		copy(result, b.records[b.index:])
		copy(result[len(b.records)-b.index:], b.records[:b.index])
	}

	return ChangeLog{
		Changes: result,
		Dropped: b.dropped,
	}
}
