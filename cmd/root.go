package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/hpkotak/dryrun/internal/config"
	"github.com/hpkotak/dryrun/internal/diag"
	"github.com/hpkotak/dryrun/internal/engine"
	"github.com/hpkotak/dryrun/internal/executor"
	"github.com/hpkotak/dryrun/internal/invocation"
	"github.com/spf13/cobra"
)

// Package-level variables for testability.
// Tests replace these with buffer-backed values.
var (
	printer = diag.New(diag.Detect())
	streams = executor.StdStreams()
)

var rootCmd = &cobra.Command{
	Use:   "dryrun <command> [flags...] [--] [args...]",
	Short: "Preview what a shell command would do without doing it",
	Long: `dryrun intercepts a potentially destructive command and shows what it
would do. Tools with their own dry-run mode (rsync, apt, git push, terraform,
kubectl, ...) are run with that mode switched on. Filesystem commands (rm, cp,
mv, chmod, ...) are described without touching anything.

Examples:
  dryrun rm -rf build/
  dryrun chmod 754 deploy.sh
  dryrun rsync -av src/ backup/
  dryrun check-vars cleanup.sh`,
	Args:               cobra.ArbitraryArgs,
	RunE:               runIntercept,
	DisableFlagParsing: true,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableAutoGenTag:  true,
	CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	var exitErr *executor.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	printer.Error("%v", err)
	return 1
}

// runIntercept handles "dryrun <command> ...". A leading "--" makes the next
// token the command even when it looks like one of our own flags.
func runIntercept(cmd *cobra.Command, args []string) error {
	forced := len(args) > 0 && args[0] == invocation.Separator
	if forced {
		args = args[1:]
	}
	if len(args) == 0 {
		return cmd.Help()
	}

	if !forced {
		switch args[0] {
		case "-h", "--help":
			return cmd.Help()
		case "--version":
			_, _ = fmt.Fprintln(printer.Out(), cmd.Version)
			return nil
		}
	}

	e, err := newEngine()
	if err != nil {
		return err
	}
	return e.Run(commandContext(cmd), args[0], args[1:])
}

func newEngine() (*engine.Engine, error) {
	tbl, err := config.Load()
	if err != nil {
		return nil, err
	}
	return engine.New(tbl, printer, streams)
}

// commandContext returns the command's context, or Background when the
// command was invoked directly rather than through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}
