package main

import (
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsonlens/internal/analyzer"
	"github.com/mcncl/jsonlens/internal/cli"
	"github.com/mcncl/jsonlens/internal/config"
	"github.com/mcncl/jsonlens/internal/errors" // Custom errors package
)

// Version information
const (
	Version = "0.1.0"
)

// valueFlags are the global flags that consume the following argument.
var valueFlags = map[string]bool{
	"-i": true, "--input": true,
	"-o": true, "--output": true,
	"-c": true, "--config": true,
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the program and returns the process exit code
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var root cli.CLI
	parser, err := kong.New(&root,
		kong.Name("jsonlens"),
		kong.Description("Validate, format, analyze and query JSON documents"),
		kong.UsageOnError(),
		kong.Vars{"version": "jsonlens version " + Version},
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		return 1
	}

	if !hasCommand(args, commandNames(parser)) {
		printUsageHint(stdout, commandNames(parser))
		return 0
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		fmt.Fprintf(stderr, "\nFor help, run: jsonlens --help\n")
		return 1
	}

	cfg, err := config.LoadConfigWithCLI(root.Config, root.Debug)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", errors.UserFriendlyError(err))
		return 1
	}
	logger := newLogger(stderr, cfg.Dev.Debug)

	ctx := &cli.Context{
		Input:       root.Input,
		Output:      root.Output,
		Interactive: root.Interactive,
		Analyzer:    analyzer.NewAnalyzerWithConfig(cfg).WithLogger(logger),
		Logger:      logger,
		Stdin:       stdin,
		Stdout:      stdout,
		Stderr:      stderr,
	}

	if err := kctx.Run(ctx); err != nil {
		if stderrors.Is(err, cli.ErrInvalidDocument) {
			return 1
		}
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(stderr, "\nFor help, run: jsonlens --help\n")
		return 1
	}
	return 0
}

// newLogger writes text records to w at debug level when debug is set,
// otherwise only warnings and above.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func commandNames(parser *kong.Kong) []string {
	names := make([]string, 0, len(parser.Model.Children))
	for _, child := range parser.Model.Children {
		names = append(names, child.Name)
	}
	return names
}

// hasCommand reports whether args name a known command, or ask kong for
// help or the version.
func hasCommand(args, commands []string) bool {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help" || arg == "--version":
			return true
		case valueFlags[arg]:
			i++
		case strings.HasPrefix(arg, "-"):
			// boolean flag, or --flag=value
		default:
			for _, name := range commands {
				if arg == name {
					return true
				}
			}
			return false
		}
	}
	return false
}

func printUsageHint(w io.Writer, commands []string) {
	fmt.Fprintln(w, "Usage: jsonlens [flags] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Commands: %s\n", strings.Join(commands, ", "))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "For help, run: jsonlens --help")
}
