// Package main provides the orb demo program. Each demo mounts a small
// component tree headlessly and drives it through writes and rebuilds,
// printing what each component observes.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) > 1 {
		name := os.Args[1]
		demo, ok := findDemo(name)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown demo: %s\n\n", name)
			printUsage()
			os.Exit(1)
		}
		runDemo(demo)
		return
	}

	for i, demo := range demos {
		if i > 0 {
			fmt.Println()
		}
		runDemo(demo)
	}
}

func runDemo(demo Demo) {
	fmt.Printf("=== %s — %s\n", demo.Name, demo.Title)
	if err := demo.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "demo %s failed: %v\n", demo.Name, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: showcase [demo]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Demos:")
	for _, demo := range demos {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", demo.Name, demo.Title)
	}
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "With no argument, every demo runs in order.")
}
