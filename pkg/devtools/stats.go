package devtools

import (
	"runtime"
	"sync"
	"time"
)

const (
	statsIntervalDefault = 5 * time.Second
	statsWindowDefault   = 60 * time.Second
	statsMinInterval     = 1 * time.Second
	statsMaxSamples      = 120
)

// RuntimeSample captures a snapshot of runtime memory/GC stats.
type RuntimeSample struct {
	Timestamp    int64  `json:"ts"`
	HeapAlloc    uint64 `json:"heapAlloc"`
	HeapInuse    uint64 `json:"heapInuse"`
	HeapSys      uint64 `json:"heapSys"`
	NumGC        uint32 `json:"numGC"`
	LastGCTime   int64  `json:"lastGCTime"`
	PauseTotalNs uint64 `json:"pauseTotalNs"`
	LastPauseNs  uint64 `json:"lastPauseNs"`
}

// RuntimeSampleBuffer stores recent runtime samples in a ring buffer.
type RuntimeSampleBuffer struct {
	mu       sync.RWMutex
	samples  []RuntimeSample
	index    int
	count    int
	interval time.Duration
	window   time.Duration
}

type runtimeSampler struct {
	mu   sync.Mutex
	stop chan struct{}
}

var samplerState runtimeSampler

// statsState holds the buffer the sampler feeds and the server reads.
var statsState struct {
	mu      sync.Mutex
	samples *RuntimeSampleBuffer
}

// NewRuntimeSampleBuffer creates a buffer sized for the configured window/interval.
func NewRuntimeSampleBuffer(window, interval time.Duration) *RuntimeSampleBuffer {
	interval = normalizeStatsInterval(interval)
	window = normalizeStatsWindow(window, interval)

	capacity := min(max(int(window/interval), 1), statsMaxSamples)
	window = time.Duration(capacity) * interval

	return &RuntimeSampleBuffer{
		samples:  make([]RuntimeSample, capacity),
		interval: interval,
		window:   window,
	}
}

// Interval returns the sampling interval.
func (b *RuntimeSampleBuffer) Interval() time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.interval
}

// Window returns the history window covered by the buffer.
func (b *RuntimeSampleBuffer) Window() time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.window
}

// Add stores a runtime sample.
func (b *RuntimeSampleBuffer) Add(sample RuntimeSample) {
	b.mu.Lock()
	b.samples[b.index] = sample
	b.index = (b.index + 1) % len(b.samples)
	if b.count < len(b.samples) {
		b.count++
	}
	b.mu.Unlock()
}

// Snapshot returns samples in chronological order.
func (b *RuntimeSampleBuffer) Snapshot() []RuntimeSample {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return nil
	}

	result := make([]RuntimeSample, b.count)
	if b.count < len(b.samples) {
		copy(result, b.samples[:b.count])
	} else {
		copy(result, b.samples[b.index:])
		copy(result[len(b.samples)-b.index:], b.samples[:b.index])
	}

	return result
}

func normalizeStatsInterval(interval time.Duration) time.Duration {
	if interval <= 0 {
		interval = statsIntervalDefault
	}
	if interval < statsMinInterval {
		interval = statsMinInterval
	}
	return interval
}

func normalizeStatsWindow(window, interval time.Duration) time.Duration {
	if window <= 0 {
		window = statsWindowDefault
	}
	if window < interval {
		window = interval
	}
	return window
}

func statsConfig(config *Config) (time.Duration, time.Duration) {
	if config == nil {
		return 0, 0
	}
	interval := normalizeStatsInterval(config.StatsInterval)
	window := normalizeStatsWindow(config.StatsWindow, interval)
	return interval, window
}

func setStatsBuffer(buffer *RuntimeSampleBuffer) {
	statsState.mu.Lock()
	statsState.samples = buffer
	statsState.mu.Unlock()
}

// statsSnapshot returns the current samples, or ok=false when sampling
// is disabled.
func statsSnapshot() ([]RuntimeSample, bool) {
	statsState.mu.Lock()
	buffer := statsState.samples
	statsState.mu.Unlock()

	if buffer == nil {
		return nil, false
	}
	return buffer.Snapshot(), true
}

func readRuntimeSample() RuntimeSample {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	lastPause := uint64(0)
	if stats.NumGC > 0 {
		index := (stats.NumGC - 1) % 256
		lastPause = stats.PauseNs[index]
	}

	lastGC := int64(0)
	if stats.LastGC > 0 {
		lastGC = time.Unix(0, int64(stats.LastGC)).UnixMilli()
	}

	return RuntimeSample{
		Timestamp:    time.Now().UnixMilli(),
		HeapAlloc:    stats.HeapAlloc,
		HeapInuse:    stats.HeapInuse,
		HeapSys:      stats.HeapSys,
		NumGC:        stats.NumGC,
		LastGCTime:   lastGC,
		PauseTotalNs: stats.PauseTotalNs,
		LastPauseNs:  lastPause,
	}
}

// startRuntimeSampler begins periodic sampling into buffer, replacing
// any sampler already running. The first sample is taken immediately so
// the stats endpoint has data before the first tick.
func startRuntimeSampler(buffer *RuntimeSampleBuffer, interval time.Duration) {
	interval = normalizeStatsInterval(interval)
	if buffer == nil {
		stopRuntimeSampler()
		return
	}

	samplerState.mu.Lock()
	if samplerState.stop != nil {
		close(samplerState.stop)
		samplerState.stop = nil
	}
	stopCh := make(chan struct{})
	samplerState.stop = stopCh
	samplerState.mu.Unlock()

	buffer.Add(readRuntimeSample())

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				buffer.Add(readRuntimeSample())
			case <-stopCh:
				return
			}
		}
	}()
}

// stopRuntimeSampler stops the sampler if one is running. Safe to call
// repeatedly.
func stopRuntimeSampler() {
	samplerState.mu.Lock()
	if samplerState.stop != nil {
		close(samplerState.stop)
		samplerState.stop = nil
	}
	samplerState.mu.Unlock()
}
