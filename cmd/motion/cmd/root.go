// Package cmd implements the motion CLI commands.
//
// The command structure follows the usual root-plus-subcommands layout: the
// root command dispatches to list, sample, plot and preview.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-drift/motion/pkg/config"
	motionerrors "github.com/go-drift/motion/pkg/errors"
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
	Name:  "motion",
	Short: "motion - inspect animation curves",
	Long: `motion evaluates the easing, cubic Bézier and spring curves used by
animated UI properties. It samples curves, plots their trajectories
and previews them live in the terminal.

Curves are named by a motion.yaml catalog entry, an easing name, or an
inline record such as "spring: {mass: 1, stiffness: 100, damping: 10}".

Use "motion <command> --help" for more information about a command.`,
	Usage: "motion <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// stdout receives command output.
var stdout io.Writer = os.Stdout

// configPath overrides catalog discovery when set by --config.
var configPath string

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return execute(os.Args[1:])
}

func execute(args []string) error {
	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	// Handle global flags
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
				fmt.Fprintf(stdout, "motion version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--verbose":
			motionerrors.SetHandler(&motionerrors.LogHandler{Verbose: true})
		case "--config":
			if i+1 < len(args) {
				configPath = args[i+1]
				i++
			} else {
				return fmt.Errorf("--config requires a file path")
			}
		default:
			if strings.HasPrefix(arg, "--config=") {
				configPath = strings.TrimPrefix(arg, "--config=")
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
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
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

// loadCatalog resolves the --config file, or motion.yaml in the project root.
// Outside a project it returns an empty catalog.
func loadCatalog() (*config.Catalog, error) {
	var (
		f   *config.File
		err error
	)
	if configPath != "" {
		f, err = config.Load(configPath)
	} else {
		root, rootErr := config.FindProjectRoot()
		if rootErr != nil {
			root = "."
		}
		f, err = config.LoadOptional(root)
	}
	if err != nil {
		return nil, err
	}
	return f.Resolve()
}

func printHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(stdout, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Flags:")
	fmt.Fprintln(stdout, "  -h, --help           Show help for a command")
	fmt.Fprintln(stdout, "  -v, --version        Show version information")
	fmt.Fprintln(stdout, "  --config FILE        Curve catalog (default: motion.yaml in the project root)")
	fmt.Fprintln(stdout, "  --verbose            Report errors with timestamps and causes")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Examples:")
	fmt.Fprintln(stdout, "  motion list                              List easings and catalog curves")
	fmt.Fprintln(stdout, "  motion sample ease-out-back --steps 5    Print a progress table")
	fmt.Fprintln(stdout, "  motion plot bouncy snappy -o springs.png Plot two catalog curves")
	fmt.Fprintln(stdout, "  motion preview ease-in-out bouncy        Animate curves in the terminal")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
}
