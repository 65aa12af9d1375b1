package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-drift/orb/cmd/orb-inspect/internal/config"
)

var httpClient = &http.Client{Timeout: 5 * time.Second}

// resolveContext determines which devtools server to talk to. The
// --server flag wins, then .orb-inspect.yaml at the module root, then
// the default address. Running outside a Go module is fine; the
// defaults apply.
func resolveContext() *config.Resolved {
	resolved := &config.Resolved{
		AppName: "unknown",
		Server:  config.DefaultServerAddress,
	}

	if root, err := config.FindProjectRoot(); err == nil {
		if r, err := config.Resolve(root); err == nil {
			resolved = r
		}
	}

	if serverOverride != "" {
		resolved.Server = serverOverride
	}

	return resolved
}

// fetchJSON issues a GET against the devtools server and decodes the
// JSON response into v.
func fetchJSON(server, path string, v any) error {
	url := serverURL(server, path)

	resp, err := httpClient.Get(url)
	if err != nil {
		return fmt.Errorf("failed to reach devtools server at %s: %w", server, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = resp.Status
		}
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, msg)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}

	return nil
}

func serverURL(server, path string) string {
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}
	return strings.TrimSuffix(server, "/") + path
}
