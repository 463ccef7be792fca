// Package platform provides OS and shell detection helpers.
package platform

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// lookPath is injectable for testing.
var lookPath = exec.LookPath

// posixShells are the $SHELL basenames trusted to check sh/bash syntax.
var posixShells = map[string]bool{"bash": true, "sh": true}

// OS returns the operating system name (e.g., "darwin", "linux").
func OS() string {
	return runtime.GOOS
}

// Shell returns the user's shell from $SHELL, defaulting to /bin/sh.
func Shell() string {
	if s := os.Getenv("SHELL"); s != "" {
		return s
	}
	return "/bin/sh"
}

// ScriptShell returns the interpreter used to syntax-check scripts. The
// user's $SHELL wins when it is bash or sh; otherwise bash on PATH, then sh.
// ok is false when none is available.
func ScriptShell() (path string, ok bool) {
	if s := Shell(); posixShells[filepath.Base(s)] {
		if p, err := lookPath(s); err == nil {
			return p, true
		}
	}
	for _, name := range []string{"bash", "sh"} {
		if p, err := lookPath(name); err == nil {
			return p, true
		}
	}
	return "", false
}

// PathDirs returns the directories listed in $PATH, in order, skipping empty
// entries.
func PathDirs() []string {
	var dirs []string
	for _, d := range filepath.SplitList(os.Getenv("PATH")) {
		if d != "" {
			dirs = append(dirs, d)
		}
	}
	return dirs
}
