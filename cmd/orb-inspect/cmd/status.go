package cmd

import (
	"fmt"

	"github.com/go-drift/orb/pkg/devtools"
)

func init() {
	RegisterCommand(&Command{
		Name:  "status",
		Short: "Show devtools server status",
		Long: `Show the health of a running devtools server.

Reports whether the server is reachable, how many orbs are registered,
and the latest runtime heap sample when stats sampling is enabled.`,
		Usage: "orb-inspect status",
		Run:   runStatus,
	})
}

func runStatus(args []string) error {
	ctx := resolveContext()

	fmt.Printf("App:    %s\n", ctx.AppName)
	fmt.Printf("Server: %s\n", ctx.Server)

	var health struct {
		Status string `json:"status"`
	}
	if err := fetchJSON(ctx.Server, "/health", &health); err != nil {
		fmt.Printf("Health: unreachable (%v)\n", err)
		return nil
	}
	fmt.Printf("Health: %s\n", health.Status)

	var orbs struct {
		Orbs []devtools.OrbInfo `json:"orbs"`
	}
	if err := fetchJSON(ctx.Server, "/orbs", &orbs); err != nil {
		fmt.Printf("Orbs:   error (%v)\n", err)
	} else {
		fmt.Printf("Orbs:   %d registered\n", len(orbs.Orbs))
	}

	var stats struct {
		Samples []devtools.RuntimeSample `json:"samples"`
	}
	if err := fetchJSON(ctx.Server, "/stats", &stats); err != nil {
		fmt.Println("Stats:  sampling disabled")
	} else if len(stats.Samples) == 0 {
		fmt.Println("Stats:  no samples yet")
	} else {
		latest := stats.Samples[len(stats.Samples)-1]
		fmt.Printf("Heap:   %s in use, %d GC cycles\n", formatBytes(latest.HeapInuse), latest.NumGC)
	}

	return nil
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
