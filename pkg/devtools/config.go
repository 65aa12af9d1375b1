package devtools

import (
	"sync"
	"time"

	"github.com/go-drift/orb/pkg/errors"
)

// Config controls the devtools layer: change tracing, runtime stats
// sampling, and the inspection HTTP server.
type Config struct {
	// TraceChanges records every observed orb write into a ring
	// buffer served at /changes.
	TraceChanges bool

	// ChangeCapacity is the number of change records retained.
	// Zero uses DefaultChangeCapacity.
	ChangeCapacity int

	// StatsInterval is how often runtime memory/GC stats are
	// sampled. Zero uses 5s; values under 1s are raised to 1s.
	StatsInterval time.Duration

	// StatsWindow is how much sample history is retained.
	// Zero uses 60s.
	StatsWindow time.Duration

	// ServerPort starts the inspection HTTP server on this port.
	// Zero leaves the server untouched; call StartServer directly
	// for an ephemeral port.
	ServerPort int
}

// DefaultConfig returns a Config with tracing and sampling enabled at
// default capacities. The server stays off until a port is set.
func DefaultConfig() *Config {
	return &Config{
		TraceChanges:   true,
		ChangeCapacity: DefaultChangeCapacity,
		StatsInterval:  statsIntervalDefault,
		StatsWindow:    statsWindowDefault,
	}
}

var configState struct {
	mu     sync.Mutex
	config *Config
}

// SetDevtools applies a devtools configuration, starting or stopping
// the tracing buffer, the stats sampler, and the inspection server as
// needed. Passing nil disables all of them. Reapplying a config with
// the same port does not restart the server.
func SetDevtools(config *Config) {
	// Determine the port transition first; server shutdown can block
	// up to two seconds and must not run under the state lock.
	configState.mu.Lock()
	oldPort := 0
	if configState.config != nil {
		oldPort = configState.config.ServerPort
	}
	configState.config = config
	configState.mu.Unlock()

	newPort := 0
	if config != nil {
		newPort = config.ServerPort
	}

	if oldPort != newPort {
		StopServer()
		if newPort > 0 {
			if _, err := StartServer(newPort); err != nil {
				errors.Report(&errors.OrbError{
					Op:        "devtools.SetDevtools",
					Kind:      errors.KindServer,
					Err:       err,
					Timestamp: time.Now(),
				})
			}
		}
	}

	if config == nil {
		setTracing(false, 0)
		setStatsBuffer(nil)
		stopRuntimeSampler()
		return
	}

	setTracing(config.TraceChanges, config.ChangeCapacity)

	interval, window := statsConfig(config)
	buffer := NewRuntimeSampleBuffer(window, interval)
	setStatsBuffer(buffer)
	startRuntimeSampler(buffer, interval)
}
