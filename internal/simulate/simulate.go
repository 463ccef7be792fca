// Package simulate describes what filesystem and text commands would do
// without doing it. Handlers may stat, list and read metadata; they never
// create, delete, rename, chmod or chown anything.
//
// A handler either returns a Report of notes, or an error when a structural
// precondition fails (missing operand, missing required file). Callers print
// nothing from a report that came back with an error.
package simulate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/hpkotak/dryrun/internal/diag"
	"github.com/hpkotak/dryrun/internal/invocation"
)

var (
	ErrUsage   = errors.New("usage")
	ErrMissing = errors.New("no such file or directory")
)

// maxCount bounds the recursive item count for rm. It limits the walk, it is
// not an accuracy guarantee.
const maxCount = 200

// Note is one predicted effect on one target.
type Note struct {
	Level  diag.Level
	Target string
	Text   string
}

// Report is the ordered list of notes a handler produced.
type Report struct {
	Command string
	Notes   []Note
}

func (r *Report) add(level diag.Level, target, format string, args ...any) {
	r.Notes = append(r.Notes, Note{Level: level, Target: target, Text: fmt.Sprintf(format, args...)})
}

func (r *Report) info(target, format string, args ...any) {
	r.add(diag.LevelInfo, target, format, args...)
}

func (r *Report) warn(target, format string, args ...any) {
	r.add(diag.LevelWarn, target, format, args...)
}

// warnings returns the warning notes.
func (r Report) warnings() []Note {
	var out []Note
	for _, n := range r.Notes {
		if n.Level == diag.LevelWarn {
			out = append(out, n)
		}
	}
	return out
}

// Handler simulates one command.
type Handler func(inv invocation.Invocation) (Report, error)

var handlers = map[string]Handler{
	"rm":    simulateRm,
	"rmdir": simulateRmdir,
	"cp":    simulateCp,
	"mv":    simulateMv,
	"mkdir": simulateMkdir,
	"touch": simulateTouch,
	"chmod": simulateChmod,
	"chown": simulateChown,
	"echo":  simulateEcho,
	"cat":   simulateCat,
	"ls":    simulateLs,
	"grep":  simulateGrep,
	"find":  simulateFind,
}

// lookup returns the handler for command.
func lookup(command string) (Handler, bool) {
	h, ok := handlers[command]
	return h, ok
}

// Names returns every command with a handler, sorted.
func Names() []string {
	names := make([]string, 0, len(handlers))
	for n := range handlers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Run looks up and runs the handler for inv.Command.
func Run(inv invocation.Invocation) (Report, error) {
	h, ok := lookup(inv.Command)
	if !ok {
		return Report{}, fmt.Errorf("%w: no simulation for %s", ErrUsage, inv.Command)
	}
	r, err := h(inv)
	if err != nil {
		return Report{}, err
	}
	r.Command = inv.Command
	return r, nil
}

func usage(command, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrUsage, command, fmt.Sprintf(format, args...))
}

func missing(command, path string) error {
	return fmt.Errorf("%s: %s: %w", command, path, ErrMissing)
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// countItems counts the entries below root. capped is set when there are more
// than maxCount, in which case n is maxCount.
func countItems(root string) (n int, capped bool) {
	_ = filepath.WalkDir(root, func(path string, _ fs.DirEntry, err error) error {
		// err is set on the second visit of an unreadable directory.
		if err != nil || path == root {
			return nil
		}
		if n == maxCount {
			capped = true
			return fs.SkipAll
		}
		n++
		return nil
	})
	return n, capped
}

func formatCount(n int, capped bool) string {
	if capped {
		return fmt.Sprintf("%d+ items", maxCount)
	}
	if n == 1 {
		return "~1 item"
	}
	return fmt.Sprintf("~%d items", n)
}
