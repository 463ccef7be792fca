// Package executor runs external programs on behalf of the delegate and
// script layers. Exit statuses are returned as data; only failures to start
// a program are Go errors.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/hpkotak/dryrun/internal/platform"
)

// MaxOutputBytes is the maximum captured output size before truncation.
const MaxOutputBytes = 8192

// ExitError carries a child's non-zero exit status up to main.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
}

// Streams are the standard streams handed to a child process.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process's own standard streams.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Run executes name with args, connected to s, and returns its exit code.
func Run(ctx context.Context, s Streams, name string, args ...string) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = s.In
	cmd.Stdout = s.Out
	cmd.Stderr = s.Err
	return exitCode(cmd.Run())
}

// RunCapture executes a command and returns its combined output alongside the
// exit code. Output is truncated at MaxOutputBytes.
func RunCapture(ctx context.Context, name string, args ...string) (output string, code int, err error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	code, err = exitCode(cmd.Run())
	if err != nil {
		return "", 0, err
	}

	out := buf.String()
	if len(out) > MaxOutputBytes {
		out = out[:MaxOutputBytes] + "\n[output truncated]"
	}
	return strings.TrimRight(out, "\n"), code, nil
}

// Check converts a non-zero exit code into an *ExitError.
func Check(command string, code int) error {
	if code == 0 {
		return nil
	}
	return &ExitError{Command: command, Code: code}
}

func exitCode(runErr error) (int, error) {
	if runErr == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, fmt.Errorf("executing command: %w", runErr)
}

var ErrNotInstalled = errors.New("required program not installed")

// lookPath is injectable for testing.
var lookPath = exec.LookPath

// goos is injectable for testing.
var goos = platform.OS

// installHints are appended to the not-installed error for tools users often
// lack, keyed by tool and then by OS. The "" entry is the fallback.
var installHints = map[string]map[string]string{
	"shellcheck": {
		"darwin": "install it with brew install shellcheck",
		"linux":  "install it with your package manager (apt install shellcheck, dnf install ShellCheck)",
		"":       "install it with your package manager",
	},
}

func installHint(name string) (string, bool) {
	hints, ok := installHints[name]
	if !ok {
		return "", false
	}
	if h, ok := hints[goos()]; ok {
		return h, true
	}
	h, ok := hints[""]
	return h, ok
}

// Require returns the path of name, or an error wrapping ErrNotInstalled.
func Require(name string) (string, error) {
	p, err := lookPath(name)
	if err == nil {
		return p, nil
	}
	if hint, ok := installHint(name); ok {
		return "", fmt.Errorf("%w: %s; %s", ErrNotInstalled, name, hint)
	}
	return "", fmt.Errorf("%w: %s", ErrNotInstalled, name)
}
