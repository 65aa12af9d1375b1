package cmd

import (
	"fmt"
	"time"

	"github.com/go-drift/orb/pkg/devtools"
)

func init() {
	RegisterCommand(&Command{
		Name:  "orbs",
		Short: "List registered orbs",
		Long: `List every orb registered with the devtools server.

Shows each orb's name, value type, change count, the time of the last
change, and the current value. Values are omitted when the application
runs with debug mode off.`,
		Usage: "orb-inspect orbs",
		Run:   runOrbs,
	})
}

func runOrbs(args []string) error {
	ctx := resolveContext()

	var resp struct {
		Orbs []devtools.OrbInfo `json:"orbs"`
	}
	if err := fetchJSON(ctx.Server, "/orbs", &resp); err != nil {
		return err
	}

	if len(resp.Orbs) == 0 {
		fmt.Println("No orbs registered.")
		return nil
	}

	fmt.Printf("%-24s %-16s %8s  %-9s %s\n", "NAME", "TYPE", "CHANGES", "LAST", "VALUE")
	for _, orb := range resp.Orbs {
		last := "-"
		if orb.LastChange > 0 {
			last = time.UnixMilli(orb.LastChange).Format("15:04:05")
		}
		fmt.Printf("%-24s %-16s %8d  %-9s %s\n", orb.Name, orb.Type, orb.Changes, last, orb.Value)
	}

	return nil
}
