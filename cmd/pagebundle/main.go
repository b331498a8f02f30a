package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	env := DefaultEnv()

	// Flags are parsed again by runMain; here only --verbose matters.
	verbose := false
	if flags, _, err := parseFlags(os.Args[1:]); err == nil {
		verbose = flags.common.verbose
	}
	setMaxProcs(env.Stderr, verbose)

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args[1:], env)
	stop()
	os.Exit(code)
}

// setMaxProcs configures GOMAXPROCS with conditional logging.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(w io.Writer, verbose bool) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			_, _ = fmt.Fprintf(w, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}

// runMain dispatches on flags and returns the process exit code.
// args excludes the program name.
func runMain(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseFlags(args)
	if err != nil {
		_, _ = fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch {
	case flags.mode.help:
		printUsage(env.Stdout)
		return ExitSuccess
	case flags.mode.version:
		_, _ = fmt.Fprintf(env.Stdout, "pagebundle %s\n", Version)
		return ExitSuccess
	case flags.mode.completion != "":
		if err := GenerateCompletion(env.Stdout, Shell(flags.mode.completion)); err != nil {
			_, _ = fmt.Fprintf(env.Stderr, "error: %v\n", err)
			return exitCodeFor(err)
		}
		return ExitSuccess
	case flags.mode.doctor:
		return runDoctorCmd(ctx, flags, env)
	case flags.mode.printConfig:
		if err := runPrintConfig(flags, env); err != nil {
			_, _ = fmt.Fprintf(env.Stderr, "error: %v\n", err)
			return exitCodeFor(err)
		}
		return ExitSuccess
	}

	if err := runBundle(ctx, positional, flags, env); err != nil {
		_, _ = fmt.Fprintf(env.Stderr, "error: %v\n", err)
		if errors.Is(err, ErrUsage) {
			_, _ = fmt.Fprintln(env.Stderr)
			printUsage(env.Stderr)
		}
		return exitCodeFor(err)
	}
	return ExitSuccess
}
