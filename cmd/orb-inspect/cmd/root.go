// Package cmd implements the orb-inspect CLI commands.
//
// The command structure follows standard Go CLI patterns with a root
// command that dispatches to subcommands (status, orbs, changes, watch).
package cmd

import (
	"fmt"
	"os"
	"strings"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "orb-inspect",
	Short: "Inspect a running orb application",
	Long: `orb-inspect talks to the devtools HTTP server embedded in an
application built on the orb library. It can check server health,
list registered orbs, print recent changes, and tail changes live.

Use "orb-inspect <command> --help" for more information about a command.`,
	Usage: "orb-inspect <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// serverOverride holds the --server flag value, which wins over the
// address from .orb-inspect.yaml.
var serverOverride string

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the given arguments.
func Execute() error {
	args := os.Args[1:]

	// Handle no arguments
	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	// Handle global flags and extract --server
	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Printf("orb-inspect version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--server", "-server":
			if i+1 < len(args) {
				serverOverride = args[i+1]
				i++
			} else {
				return fmt.Errorf("--server requires an address (host:port)")
			}
		default:
			if strings.HasPrefix(arg, "--server=") {
				serverOverride = strings.TrimPrefix(arg, "--server=")
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	// Find and execute the command
	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	// Check for help flag on subcommand
	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return cmd.Run(cmdArgs)
}

func printHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
	fmt.Println()
	fmt.Println("Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Printf("  %-10s %s\n", sub.Name, sub.Short)
	}
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -h, --help           Show help for a command")
	fmt.Println("  -v, --version        Show version information")
	fmt.Println("  --server HOST:PORT   Devtools server address (default: from .orb-inspect.yaml)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  orb-inspect status                 Check server health and runtime stats")
	fmt.Println("  orb-inspect orbs                   List registered orbs")
	fmt.Println("  orb-inspect changes -limit 20      Print the 20 most recent changes")
	fmt.Println("  orb-inspect watch -name counter    Tail changes to one orb")
}

func printCommandHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
}
