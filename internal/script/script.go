// Package script inspects shell scripts without running them. Every mode is
// line-oriented and textual; the only shell grammar involved is the
// interpreter's own syntax check.
package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hpkotak/dryrun/internal/diag"
	"github.com/hpkotak/dryrun/internal/executor"
	"github.com/hpkotak/dryrun/internal/invocation"
	"github.com/hpkotak/dryrun/internal/platform"
	"mvdan.cc/sh/v3/syntax"
)

// Mode names, as typed on the command line.
const (
	ModeSyntax    = "syntax"
	ModeTrace     = "trace"
	ModeSimulate  = "script"
	ModeCheckVars = "check-vars"
	ModeLint      = "lint"
)

var (
	ErrNoScript    = errors.New("script not found")
	ErrSyntax      = errors.New("syntax check failed")
	ErrUnknownMode = errors.New("unknown script mode")
)

// Package-level function variables for testability.
var (
	scriptShell = platform.ScriptShell
	runCapture  = executor.RunCapture
)

// Simulator runs a single simulated command in process.
type Simulator interface {
	Supports(command string) bool
	Simulate(ctx context.Context, inv invocation.Invocation) error
}

// Engine runs the script modes.
type Engine struct {
	Printer   *diag.Printer
	Simulator Simulator
	Streams   executor.Streams
}

// Run dispatches to the named mode.
func (e *Engine) Run(ctx context.Context, mode, path string) error {
	switch mode {
	case ModeSyntax:
		return e.Syntax(ctx, path)
	case ModeTrace:
		return e.Trace(path)
	case ModeSimulate:
		return e.Simulate(ctx, path)
	case ModeCheckVars:
		return e.CheckVars(path)
	case ModeLint:
		return e.Lint(ctx, path)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
}

// Syntax validates path with the shell's -n flag, or with the in-process
// parser when no shell is installed.
func (e *Engine) Syntax(ctx context.Context, path string) error {
	if err := requireFile(path); err != nil {
		return err
	}

	shell, ok := scriptShell()
	if !ok {
		if err := parseSyntax(path); err != nil {
			_, _ = fmt.Fprintln(e.Printer.Err(), err)
			return fmt.Errorf("%w: %s", ErrSyntax, path)
		}
		e.Printer.OK("syntax OK: %s", path)
		return nil
	}

	out, code, err := runCapture(ctx, shell, "-n", path)
	if err != nil {
		return err
	}
	if code != 0 {
		if out != "" {
			_, _ = fmt.Fprintln(e.Printer.Err(), out)
		}
		return fmt.Errorf("%w: %s", ErrSyntax, path)
	}
	e.Printer.OK("syntax OK: %s", path)
	return nil
}

func parseSyntax(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	parser := syntax.NewParser(syntax.KeepComments(false), syntax.Variant(syntax.LangBash))
	_, err = parser.Parse(f, path)
	return err
}

// Trace prints every non-blank, non-comment line behind a "+ " marker.
func (e *Engine) Trace(path string) error {
	lines, err := readLines(path)
	if err != nil {
		return err
	}

	e.Printer.Info("trace of %s (not executed)", path)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		e.Printer.Line("+ " + strings.TrimRight(line, " \t\r"))
	}
	return nil
}

// Simulate feeds each supported line to the simulator. A line that fails is
// reported and the scan continues.
func (e *Engine) Simulate(ctx context.Context, path string) error {
	lines, err := readLines(path)
	if err != nil {
		return err
	}

	for i, raw := range lines {
		l := ParseLine(i+1, raw)
		if l.Text == "" {
			continue
		}
		if !e.Simulator.Supports(l.Command) {
			e.Printer.Warn("line %d: skipped, unsupported or complex: %s", l.Number, l.Text)
			continue
		}

		e.Printer.Info("line %d: %s", l.Number, l.Text)
		if err := e.Simulator.Simulate(ctx, invocation.Parse(l.Command, l.Args)); err != nil {
			e.Printer.Error("line %d: %v", l.Number, err)
		}
	}
	e.Printer.OK("finished simulating %s", path)
	return nil
}

// CheckVars reports variable references and risky deletions.
func (e *Engine) CheckVars(path string) error {
	f, err := openScript(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	findings, err := ScanVars(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var refs, deletions int
	for _, fd := range findings {
		switch fd.Kind {
		case KindVariable:
			refs++
			e.Printer.Warn("line %d: uses %s; make sure it is set and quoted", fd.Line, strings.Join(fd.Vars, ", "))
		case KindDangerousDelete:
			deletions++
			e.Printer.Warn("line %d: possible dangerous deletion with unquoted variable: %s", fd.Line, fd.Text)
		}
	}
	e.Printer.OK("finished scanning %s (%d lines with variables, %d risky deletions)", path, refs, deletions)
	return nil
}

// Lint runs shellcheck on path. Its exit code becomes ours.
func (e *Engine) Lint(ctx context.Context, path string) error {
	if err := requireFile(path); err != nil {
		return err
	}
	bin, err := executor.Require("shellcheck")
	if err != nil {
		return err
	}

	code, err := executor.Run(ctx, e.Streams, bin, path)
	if err != nil {
		return err
	}
	if code == 0 {
		e.Printer.OK("shellcheck found no issues in %s", path)
	}
	return executor.Check("shellcheck", code)
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNoScript, path)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrNoScript, path)
	}
	return nil
}

func openScript(path string) (*os.File, error) {
	if err := requireFile(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return f, nil
}

func readLines(path string) ([]string, error) {
	f, err := openScript(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}
