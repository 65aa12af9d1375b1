package devtools

import (
	"testing"
	"time"
)

func TestReadRuntimeSample_PopulatesFields(t *testing.T) {
	sample := readRuntimeSample()
	if sample.Timestamp == 0 {
		t.Error("expected timestamp to be set")
	}
	if sample.HeapAlloc == 0 {
		t.Error("expected non-zero heap alloc")
	}
	if sample.HeapSys == 0 {
		t.Error("expected non-zero heap sys")
	}
}

func TestRuntimeSampleBuffer_CapacityFromWindow(t *testing.T) {
	buffer := NewRuntimeSampleBuffer(60*time.Second, 5*time.Second)
	if buffer.Interval() != 5*time.Second {
		t.Errorf("expected interval 5s, got %v", buffer.Interval())
	}
	if buffer.Window() != 60*time.Second {
		t.Errorf("expected window 60s, got %v", buffer.Window())
	}
}

func TestRuntimeSampleBuffer_MinimumInterval(t *testing.T) {
	buffer := NewRuntimeSampleBuffer(10*time.Second, 100*time.Millisecond)
	if buffer.Interval() != time.Second {
		t.Errorf("expected interval raised to 1s, got %v", buffer.Interval())
	}
}

func TestRuntimeSampleBuffer_CapacityCapped(t *testing.T) {
	buffer := NewRuntimeSampleBuffer(10*time.Minute, time.Second)
	// 600 one-second samples exceed the cap, so the window shrinks to
	// what the buffer can actually hold.
	if buffer.Window() != time.Duration(statsMaxSamples)*time.Second {
		t.Errorf("expected window capped at %ds, got %v", statsMaxSamples, buffer.Window())
	}
}

func TestRuntimeSampleBuffer_SnapshotWraparound(t *testing.T) {
	buffer := NewRuntimeSampleBuffer(3*time.Second, time.Second)
	for i := int64(1); i <= 5; i++ {
		buffer.Add(RuntimeSample{Timestamp: i})
	}

	samples := buffer.Snapshot()
	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}
	for i, want := range []int64{3, 4, 5} {
		if samples[i].Timestamp != want {
			t.Errorf("sample %d: expected timestamp %d, got %d", i, want, samples[i].Timestamp)
		}
	}
}

func TestRuntimeSampleBuffer_EmptySnapshot(t *testing.T) {
	buffer := NewRuntimeSampleBuffer(statsWindowDefault, statsIntervalDefault)
	if samples := buffer.Snapshot(); samples != nil {
		t.Errorf("expected nil snapshot for empty buffer, got %d samples", len(samples))
	}
}

func TestRuntimeSampler_StartTakesImmediateSample(t *testing.T) {
	buffer := NewRuntimeSampleBuffer(statsWindowDefault, statsIntervalDefault)
	startRuntimeSampler(buffer, statsIntervalDefault)
	defer stopRuntimeSampler()

	if len(buffer.Snapshot()) == 0 {
		t.Error("expected an immediate sample on start")
	}
}

func TestRuntimeSampler_StartStopIdempotent(t *testing.T) {
	buffer := NewRuntimeSampleBuffer(statsWindowDefault, statsIntervalDefault)

	// Restarting replaces the previous sampler; stopping twice is safe.
	startRuntimeSampler(buffer, statsIntervalDefault)
	startRuntimeSampler(buffer, statsIntervalDefault)
	stopRuntimeSampler()
	stopRuntimeSampler()
}

func TestRuntimeSampler_NilBufferStops(t *testing.T) {
	buffer := NewRuntimeSampleBuffer(statsWindowDefault, statsIntervalDefault)
	startRuntimeSampler(buffer, statsIntervalDefault)
	startRuntimeSampler(nil, statsIntervalDefault)
	stopRuntimeSampler()
}

func TestStatsSnapshot_DisabledReturnsFalse(t *testing.T) {
	setStatsBuffer(nil)
	if _, ok := statsSnapshot(); ok {
		t.Error("expected ok=false with no stats buffer")
	}
}

func TestStatsSnapshot_ReturnsBufferContents(t *testing.T) {
	buffer := NewRuntimeSampleBuffer(statsWindowDefault, statsIntervalDefault)
	buffer.Add(readRuntimeSample())
	setStatsBuffer(buffer)
	defer setStatsBuffer(nil)

	samples, ok := statsSnapshot()
	if !ok {
		t.Fatal("expected ok=true with a stats buffer installed")
	}
	if len(samples) != 1 {
		t.Errorf("expected 1 sample, got %d", len(samples))
	}
}
