// Package safety decides how an intercepted command is handled. The decision
// is a static table lookup; nothing about the command is executed to make it.
package safety

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/hpkotak/dryrun/internal/config"
	"github.com/hpkotak/dryrun/internal/platform"
)

// Class is the behavior class of a command.
type Class int

const (
	Unknown Class = iota
	FilesystemSimulate
	TextSimulate
	NativeDelegate
	ScriptMode
)

var ErrNotFound = errors.New("command not found")

// Package-level function variables for testability.
var (
	lookPath = exec.LookPath
	readDir  = os.ReadDir
	pathDirs = platform.PathDirs
)

// Classifier maps command names to classes.
type Classifier struct {
	classes map[string]Class
}

// NewClassifier builds a classifier from the command table.
func NewClassifier(t *config.Table) *Classifier {
	c := &Classifier{classes: make(map[string]Class)}
	for _, n := range t.Filesystem {
		c.classes[n] = FilesystemSimulate
	}
	for _, n := range t.Text {
		c.classes[n] = TextSimulate
	}
	for _, n := range t.Script {
		c.classes[n] = ScriptMode
	}
	for n := range t.Delegate {
		c.classes[n] = NativeDelegate
	}
	return c
}

// Classify returns the class for command, or Unknown when the table has no
// entry for it.
func (c *Classifier) Classify(command string) Class {
	return c.classes[command]
}

// Simulated reports whether command is handled by a simulation handler.
func (c *Classifier) Simulated(command string) bool {
	cl := c.Classify(command)
	return cl == FilesystemSimulate || cl == TextSimulate
}

// Locate probes PATH for a command the table does not know. A miss returns an
// error wrapping ErrNotFound, carrying a hint when one is available.
func Locate(command string) (string, error) {
	p, err := lookPath(command)
	if err == nil {
		return p, nil
	}
	if hint := Suggest(command); hint != "" {
		return "", fmt.Errorf("%w: %s (did you mean %q?)", ErrNotFound, command, hint)
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, command)
}

// Suggest returns the first executable on PATH sharing the command's leading
// two characters. PATH order wins, then directory listing order. It is a hint,
// not a closest match.
func Suggest(command string) string {
	prefix := command
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	if prefix == "" {
		return ""
	}

	for _, dir := range pathDirs() {
		entries, err := readDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			name := e.Name()
			if name == command || !strings.HasPrefix(name, prefix) {
				continue
			}
			if isExecutable(filepath.Join(dir, name), e) {
				return name
			}
		}
	}
	return ""
}

func isExecutable(path string, e os.DirEntry) bool {
	if e.IsDir() {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}

func (c Class) String() string {
	switch c {
	case FilesystemSimulate:
		return "filesystem-simulate"
	case TextSimulate:
		return "text-simulate"
	case NativeDelegate:
		return "native-delegate"
	case ScriptMode:
		return "script-mode"
	default:
		return "unknown"
	}
}
