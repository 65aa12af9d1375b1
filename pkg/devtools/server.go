package devtools

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-drift/orb/pkg/errors"
)

// inspectServer manages the HTTP server for orb inspection.
type inspectServer struct {
	server   *http.Server
	listener net.Listener
	mu       sync.Mutex
}

var inspectSrv inspectServer

const serverShutdownTimeout = 2 * time.Second

// StartServer starts the inspection HTTP server on the specified port
// and returns the actual port (useful when port=0 for ephemeral
// allocation). When the server is already running, the call is a no-op
// returning the running server's port.
func StartServer(port int) (int, error) {
	inspectSrv.mu.Lock()
	defer inspectSrv.mu.Unlock()

	if inspectSrv.server != nil {
		// Already running - return current port
		if inspectSrv.listener != nil {
			return inspectSrv.listener.Addr().(*net.TCPAddr).Port, nil
		}
		return port, nil
	}

	// Bind listener first to fail fast on port conflicts
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return 0, &errors.OrbError{
			Op:        "devtools.StartServer",
			Kind:      errors.KindServer,
			Err:       err,
			Timestamp: time.Now(),
		}
	}

	actualPort := listener.Addr().(*net.TCPAddr).Port

	mux := http.NewServeMux()
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/orbs", handleOrbs)
	mux.HandleFunc("/changes", handleChanges)
	mux.HandleFunc("/stats", handleStats)

	server := &http.Server{Handler: mux}
	inspectSrv.server = server
	inspectSrv.listener = listener

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			// Server failed - clear state so it can be restarted
			inspectSrv.mu.Lock()
			inspectSrv.server = nil
			inspectSrv.listener = nil
			inspectSrv.mu.Unlock()
			errors.Report(&errors.OrbError{
				Op:        "devtools.Serve",
				Kind:      errors.KindServer,
				Err:       err,
				Timestamp: time.Now(),
			})
		}
	}()

	return actualPort, nil
}

// StopServer gracefully shuts down the inspection server, waiting up
// to two seconds for in-flight requests. No-op when not running.
func StopServer() {
	inspectSrv.mu.Lock()
	server := inspectSrv.server
	inspectSrv.server = nil
	inspectSrv.listener = nil
	inspectSrv.mu.Unlock()

	if server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()
	server.Shutdown(ctx)
}

// handleHealth returns a simple health check response.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleOrbs returns the registry contents as JSON.
func handleOrbs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Recover from panics during serialization
	defer func() {
		if rec := recover(); rec != nil {
			http.Error(w, fmt.Sprintf("panic: %v", rec), http.StatusInternalServerError)
		}
	}()

	resp := struct {
		Orbs []OrbInfo `json:"orbs"`
	}{
		Orbs: Entries(),
	}

	writeJSON(w, resp)
}

// handleChanges returns recent change records as JSON. Supports
// ?name= to filter by registration name and ?limit= to keep only the
// most recent records.
func handleChanges(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	log, ok := changeSnapshot()
	if !ok {
		http.Error(w, "change tracing disabled", http.StatusServiceUnavailable)
		return
	}

	applyChangeFilters(r, &log)

	writeJSON(w, log)
}

// handleStats returns recent runtime/GC samples as JSON.
func handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	samples, ok := statsSnapshot()
	if !ok {
		http.Error(w, "stats sampling disabled", http.StatusServiceUnavailable)
		return
	}

	resp := struct {
		Samples []RuntimeSample `json:"samples"`
	}{
		Samples: samples,
	}

	writeJSON(w, resp)
}

func applyChangeFilters(r *http.Request, log *ChangeLog) {
	if name := r.URL.Query().Get("name"); name != "" {
		filtered := make([]ChangeRecord, 0, len(log.Changes))
		for _, record := range log.Changes {
			if record.Name == name {
				filtered = append(filtered, record)
			}
		}
		log.Changes = filtered
	}

	limit := 0
	if value := r.URL.Query().Get("limit"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > 0 && len(log.Changes) > limit {
		log.Changes = log.Changes[len(log.Changes)-limit:]
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	// Encode to buffer first so we can catch errors
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
