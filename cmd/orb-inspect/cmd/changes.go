package cmd

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-drift/orb/pkg/devtools"
)

func init() {
	RegisterCommand(&Command{
		Name:  "changes",
		Short: "Show recent orb changes",
		Long: `Show the most recent orb changes recorded by the devtools server.

Requires change tracing to be enabled in the application via
devtools.SetDevtools. The server keeps a bounded in-memory trace;
older changes are dropped once the buffer wraps.`,
		Usage: "orb-inspect changes [-limit N] [-name NAME]",
		Run:   runChanges,
	})
}

func runChanges(args []string) error {
	limit := 0
	name := ""

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--limit", "-limit":
			if i+1 < len(args) {
				n, err := strconv.Atoi(args[i+1])
				if err != nil {
					return fmt.Errorf("invalid -limit value: %s", args[i+1])
				}
				limit = n
				i++
			}
		case "--name", "-name":
			if i+1 < len(args) {
				name = args[i+1]
				i++
			}
		default:
			return fmt.Errorf("unknown flag: %s", args[i])
		}
	}

	ctx := resolveContext()

	log, err := fetchChanges(ctx.Server, name, limit)
	if err != nil {
		return err
	}

	if len(log.Changes) == 0 {
		fmt.Println("No changes recorded.")
		return nil
	}

	if log.Dropped > 0 {
		fmt.Printf("(%d older changes dropped)\n", log.Dropped)
	}
	for _, change := range log.Changes {
		printChange(change)
	}

	return nil
}

func fetchChanges(server, name string, limit int) (*devtools.ChangeLog, error) {
	query := url.Values{}
	if name != "" {
		query.Set("name", name)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	path := "/changes"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var log devtools.ChangeLog
	if err := fetchJSON(server, path, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

func printChange(change devtools.ChangeRecord) {
	ts := time.UnixMilli(change.Timestamp).Format("15:04:05.000")
	fmt.Printf("%6d  %s  %-24s %s\n", change.Seq, ts, change.Name, change.Value)
}
