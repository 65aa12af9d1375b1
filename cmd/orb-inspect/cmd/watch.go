package cmd

import (
	"fmt"
	"time"
)

func init() {
	RegisterCommand(&Command{
		Name:  "watch",
		Short: "Tail orb changes as they happen",
		Long: `Poll the devtools server and print each new orb change as it is
recorded. Changes already in the trace when watching starts are
printed first, then the command polls until interrupted.

Requires change tracing to be enabled in the application via
devtools.SetDevtools.`,
		Usage: "orb-inspect watch [-interval DURATION] [-name NAME]",
		Run:   runWatch,
	})
}

func runWatch(args []string) error {
	interval := time.Second
	name := ""

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--interval", "-interval":
			if i+1 < len(args) {
				d, err := time.ParseDuration(args[i+1])
				if err != nil {
					return fmt.Errorf("invalid -interval value: %s", args[i+1])
				}
				if d <= 0 {
					return fmt.Errorf("-interval must be positive, got %s", args[i+1])
				}
				interval = d
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
	fmt.Printf("Watching %s (poll every %s, Ctrl-C to stop)\n", ctx.Server, interval)

	// Sequence numbers are monotonic across the server's trace, so
	// tracking the highest one printed is enough to avoid duplicates
	// even when the buffer wraps between polls.
	var lastSeq uint64
	for {
		log, err := fetchChanges(ctx.Server, name, 0)
		if err != nil {
			return err
		}
		for _, change := range log.Changes {
			if change.Seq <= lastSeq {
				continue
			}
			printChange(change)
			lastSeq = change.Seq
		}
		time.Sleep(interval)
	}
}
