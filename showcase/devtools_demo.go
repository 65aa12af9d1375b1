package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-drift/orb/pkg/core"
	"github.com/go-drift/orb/pkg/devtools"
)

// runDevtoolsDemo registers two orbs, enables change tracing, makes a
// few writes, and then inspects the result over the devtools HTTP
// server the way orb-inspect does.
func runDevtoolsDemo() error {
	devtools.SetDevtools(devtools.DefaultConfig())

	temperature := core.NewOrb(21.5)
	status := core.NewOrb("idle")
	defer temperature.Dispose()
	defer status.Dispose()

	releaseTemp, err := devtools.Register("sensor.temperature", temperature)
	if err != nil {
		return err
	}
	defer releaseTemp()

	releaseStatus, err := devtools.Register("worker.status", status)
	if err != nil {
		return err
	}
	defer releaseStatus()

	temperature.Set(22.0)
	temperature.Set(22.5)
	status.Set("running")

	port, err := devtools.StartServer(0)
	if err != nil {
		return err
	}
	defer devtools.StopServer()

	var orbs struct {
		Orbs []devtools.OrbInfo `json:"orbs"`
	}
	if err := fetchJSON(port, "/orbs", &orbs); err != nil {
		return err
	}
	for _, info := range orbs.Orbs {
		fmt.Printf("%-20s %-8s changes=%d value=%s\n", info.Name, info.Type, info.Changes, info.Value)
	}

	var changes devtools.ChangeLog
	if err := fetchJSON(port, "/changes", &changes); err != nil {
		return err
	}
	for _, change := range changes.Changes {
		fmt.Printf("#%d %s -> %s\n", change.Seq, change.Name, change.Value)
	}

	return nil
}

func fetchJSON(port int, path string, v any) error {
	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d%s", port, path))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned %s", path, resp.Status)
	}
	return json.Unmarshal(body, v)
}
