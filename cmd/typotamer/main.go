// Package main is the entry point for the TypoTamer editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/typotamer/internal/app"
	"github.com/dshills/typotamer/internal/logging"
	"github.com/dshills/typotamer/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, code, done := parseFlags(args, stdout, stderr)
	if done {
		return code
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(stderr, "Error: typotamer must be run in a terminal")
		return 1
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	screen, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	// SIGTERM and SIGHUP end the session like a forced quit, so the editor
	// unwinds and restores the terminal itself.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signals)
	sessionDone := make(chan struct{})
	defer close(sessionDone)
	go forwardSignals(signals, screen, sessionDone)

	if err := application.Run(screen); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// forwardSignals posts an interrupt to b for the first signal received.
// It returns once a signal is forwarded or done is closed.
func forwardSignals(signals <-chan os.Signal, b backend.Backend, done <-chan struct{}) {
	select {
	case <-signals:
		b.PostEvent(backend.Event{Type: backend.EventInterrupt})
	case <-done:
	}
}

// parseFlags parses args. done is true when the process should exit with
// code without starting the editor.
func parseFlags(args []string, stdout, stderr io.Writer) (opts app.Options, code int, done bool) {
	fs := flag.NewFlagSet("typotamer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var showVersion, showHelp bool
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to settings file (.toml, .yaml)")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to settings file (shorthand)")
	fs.StringVar(&opts.LogFile, "log", "", "Write diagnostics to this file")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&showHelp, "help", false, "Show help message")
	fs.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "TypoTamer - a small terminal text editor\n\n")
		fmt.Fprintf(stderr, "Usage: typotamer [options] [file]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nKeys: Ctrl-S save, Ctrl-F find, Ctrl-Q quit\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, 0, true
		}
		return opts, 2, true
	}

	if showHelp {
		fs.Usage()
		return opts, 0, true
	}
	if showVersion {
		fmt.Fprintf(stdout, "TypoTamer %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return opts, 0, true
	}

	if opts.LogLevel != "" && !logging.ValidLevel(opts.LogLevel) {
		fmt.Fprintf(stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		return opts, 1, true
	}

	switch fs.NArg() {
	case 0:
	case 1:
		opts.Path = fs.Arg(0)
	default:
		fmt.Fprintf(stderr, "Error: expected at most one file, got %d\n", fs.NArg())
		return opts, 2, true
	}

	opts.Version = version
	return opts, 0, false
}
