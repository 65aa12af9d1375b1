package devtools

import (
	"testing"
)

func record(seq uint64, name string) ChangeRecord {
	return ChangeRecord{Seq: seq, Name: name, Timestamp: int64(seq)}
}

func TestChangeBuffer_SnapshotChronological(t *testing.T) {
	buffer := NewChangeBuffer(5)
	buffer.Add(record(1, "a"))
	buffer.Add(record(2, "b"))
	buffer.Add(record(3, "c"))

	log := buffer.Snapshot()
	if len(log.Changes) != 3 {
		t.Fatalf("expected 3 records, got %d", len(log.Changes))
	}
	for i, want := range []uint64{1, 2, 3} {
		if log.Changes[i].Seq != want {
			t.Errorf("record %d: expected seq %d, got %d", i, want, log.Changes[i].Seq)
		}
	}
	if log.Dropped != 0 {
		t.Errorf("expected no dropped records, got %d", log.Dropped)
	}
}

func TestChangeBuffer_WraparoundKeepsNewest(t *testing.T) {
	buffer := NewChangeBuffer(3)
	for seq := uint64(1); seq <= 5; seq++ {
		buffer.Add(record(seq, "x"))
	}

	log := buffer.Snapshot()
	if len(log.Changes) != 3 {
		t.Fatalf("expected 3 records after wraparound, got %d", len(log.Changes))
	}
	for i, want := range []uint64{3, 4, 5} {
		if log.Changes[i].Seq != want {
			t.Errorf("record %d: expected seq %d, got %d", i, want, log.Changes[i].Seq)
		}
	}
	if log.Dropped != 2 {
		t.Errorf("expected 2 dropped records, got %d", log.Dropped)
	}
}

func TestChangeBuffer_EmptySnapshot(t *testing.T) {
	buffer := NewChangeBuffer(4)
	log := buffer.Snapshot()
	if len(log.Changes) != 0 {
		t.Errorf("expected empty snapshot, got %d records", len(log.Changes))
	}
	if log.Dropped != 0 {
		t.Errorf("expected no dropped records, got %d", log.Dropped)
	}
}

func TestChangeBuffer_ZeroCapacityUsesDefault(t *testing.T) {
	buffer := NewChangeBuffer(0)
	if buffer.Capacity() != DefaultChangeCapacity {
		t.Errorf("expected default capacity %d, got %d", DefaultChangeCapacity, buffer.Capacity())
	}
}

func TestChangeBuffer_CountSaturatesAtCapacity(t *testing.T) {
	buffer := NewChangeBuffer(2)
	for seq := uint64(1); seq <= 10; seq++ {
		buffer.Add(record(seq, "x"))
	}
	if buffer.Count() != 2 {
		t.Errorf("expected count 2, got %d", buffer.Count())
	}
	if buffer.Dropped() != 8 {
		t.Errorf("expected 8 dropped, got %d", buffer.Dropped())
	}
}
