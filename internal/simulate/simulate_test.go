package simulate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hpkotak/dryrun/internal/diag"
	"github.com/hpkotak/dryrun/internal/invocation"
)

// fixture lays out files and directories under a temp dir.
// Names ending in "/" are directories.
func fixture(t *testing.T, names ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, n := range names {
		p := filepath.Join(root, n)
		if strings.HasSuffix(n, "/") {
			if err := os.MkdirAll(p, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", p, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(p), err)
		}
		if err := os.WriteFile(p, []byte("data\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
	return root
}

func run(t *testing.T, command string, argv ...string) (Report, error) {
	t.Helper()
	return Run(invocation.Parse(command, argv))
}

func mustRun(t *testing.T, command string, argv ...string) Report {
	t.Helper()
	r, err := run(t, command, argv...)
	if err != nil {
		t.Fatalf("%s %q: unexpected error: %v", command, argv, err)
	}
	return r
}

func hasNote(r Report, level diag.Level, substr string) bool {
	for _, n := range r.Notes {
		if n.Level == level && strings.Contains(n.Text, substr) {
			return true
		}
	}
	return false
}

func TestRunUnknownCommand(t *testing.T) {
	_, err := run(t, "dd", "if=/dev/zero")
	if !errors.Is(err, ErrUsage) {
		t.Errorf("error = %v, want ErrUsage", err)
	}
}

func TestNamesCoverHandlers(t *testing.T) {
	want := []string{"cat", "chmod", "chown", "cp", "echo", "find", "grep", "ls", "mkdir", "mv", "rm", "rmdir", "touch"}
	got := Names()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Names() = %q, want %q", got, want)
	}
}

func TestRm(t *testing.T) {
	root := fixture(t, "file.txt", "dir/a", "dir/b", "dir/sub/c")
	file := filepath.Join(root, "file.txt")
	dir := filepath.Join(root, "dir")
	gone := filepath.Join(root, "gone")

	r := mustRun(t, "rm", "-rf", file, dir, gone)

	if !hasNote(r, diag.LevelInfo, "would delete file "+file) {
		t.Errorf("missing file note: %+v", r.Notes)
	}
	if !hasNote(r, diag.LevelInfo, "~4 items") {
		t.Errorf("missing item count for dir (a, b, sub, sub/c): %+v", r.Notes)
	}
	if !hasNote(r, diag.LevelWarn, gone+" does not exist") {
		t.Errorf("missing does-not-exist warning: %+v", r.Notes)
	}

	// rm only reports; the tree must still be there.
	for _, p := range []string{file, dir, filepath.Join(dir, "sub", "c")} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s was touched: %v", p, err)
		}
	}
}

func TestRmNonexistentIsAdvisory(t *testing.T) {
	r, err := run(t, "rm", filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("rm on missing target returned error: %v", err)
	}
	if len(r.warnings()) != 1 {
		t.Errorf("warnings = %+v, want exactly one", r.warnings())
	}
}

func TestRmNoTargetsIsFatal(t *testing.T) {
	_, err := run(t, "rm", "-rf")
	if !errors.Is(err, ErrUsage) {
		t.Errorf("error = %v, want ErrUsage", err)
	}
}

func TestRmDirectoryWithoutRecursive(t *testing.T) {
	root := fixture(t, "dir/")
	dir := filepath.Join(root, "dir")
	r := mustRun(t, "rm", dir)
	if !hasNote(r, diag.LevelWarn, "without -r") {
		t.Errorf("want recursive warning, got %+v", r.Notes)
	}
}

func TestRmCountIsCapped(t *testing.T) {
	tests := []struct {
		name       string
		files      int
		wantN      int
		wantCapped bool
		wantText   string
	}{
		{"below limit", maxCount - 1, maxCount - 1, false, "~199 items"},
		{"exactly at limit", maxCount, maxCount, false, "~200 items"},
		{"one over limit", maxCount + 1, maxCount, true, "200+ items"},
		{"well over limit", maxCount + 20, maxCount, true, "200+ items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for i := 0; i < tt.files; i++ {
				p := filepath.Join(root, fmt.Sprintf("f%03d", i))
				if err := os.WriteFile(p, nil, 0o644); err != nil {
					t.Fatalf("write: %v", err)
				}
			}
			n, capped := countItems(root)
			if n != tt.wantN || capped != tt.wantCapped {
				t.Errorf("countItems() = (%d, %v), want (%d, %v)", n, capped, tt.wantN, tt.wantCapped)
			}
			if got := formatCount(n, capped); got != tt.wantText {
				t.Errorf("formatCount() = %q, want %q", got, tt.wantText)
			}
		})
	}
}

func TestCpMv(t *testing.T) {
	root := fixture(t, "a.txt", "b.txt", "srcdir/x", "dest/", "plain.txt")
	a := filepath.Join(root, "a.txt")
	b := filepath.Join(root, "b.txt")
	srcdir := filepath.Join(root, "srcdir")
	dest := filepath.Join(root, "dest")
	plain := filepath.Join(root, "plain.txt")
	nowhere := filepath.Join(root, "nowhere")

	tests := []struct {
		name      string
		command   string
		argv      []string
		wantWarn  string // substring of an expected warning, empty for none
		wantInfo  string
		noWarning bool
	}{
		{"one source into dir", "cp", []string{a, dest}, "", "would copy " + a + " -> " + filepath.Join(dest, "a.txt"), true},
		{"mv one source into dir", "mv", []string{a, dest}, "", "would move " + a, true},
		{"two sources into file", "cp", []string{a, b, plain}, "is not an existing directory", "", false},
		{"two sources into nonexistent", "mv", []string{a, b, nowhere}, "is not an existing directory", "", false},
		{"missing source", "cp", []string{filepath.Join(root, "ghost"), dest}, "does not exist", "", false},
		{"dir without -r", "cp", []string{srcdir, nowhere}, "cp without -r", "", false},
		{"dir with -r", "cp", []string{"-r", srcdir, nowhere}, "", "would copy " + srcdir, true},
		{"dir with -a cluster", "cp", []string{"-av", srcdir, nowhere}, "", "would copy", true},
		{"mv dir needs no -r", "mv", []string{srcdir, nowhere}, "", "would move", true},
		{"overwrite", "cp", []string{a, plain}, "would be overwritten", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustRun(t, tt.command, tt.argv...)
			if tt.wantWarn != "" && !hasNote(r, diag.LevelWarn, tt.wantWarn) {
				t.Errorf("want warning %q, got %+v", tt.wantWarn, r.Notes)
			}
			if tt.wantInfo != "" && !hasNote(r, diag.LevelInfo, tt.wantInfo) {
				t.Errorf("want info %q, got %+v", tt.wantInfo, r.Notes)
			}
			if tt.noWarning && len(r.warnings()) != 0 {
				t.Errorf("want no warnings, got %+v", r.warnings())
			}
		})
	}
}

func TestCpMvArity(t *testing.T) {
	for _, c := range []string{"cp", "mv"} {
		if _, err := run(t, c, "only-one"); !errors.Is(err, ErrUsage) {
			t.Errorf("%s with one operand: error = %v, want ErrUsage", c, err)
		}
	}
}

func TestMkdirTouch(t *testing.T) {
	root := fixture(t, "existing/")
	existing := filepath.Join(root, "existing")
	fresh := filepath.Join(root, "fresh")

	r := mustRun(t, "mkdir", existing, fresh)
	if !hasNote(r, diag.LevelWarn, "mkdir would fail") {
		t.Errorf("want exists warning, got %+v", r.Notes)
	}
	if !hasNote(r, diag.LevelInfo, "would create directory "+fresh) {
		t.Errorf("want create note, got %+v", r.Notes)
	}
	if exists(fresh) {
		t.Error("mkdir simulation created the directory")
	}

	r = mustRun(t, "mkdir", "-p", existing)
	if len(r.warnings()) != 0 {
		t.Errorf("mkdir -p on existing dir warned: %+v", r.warnings())
	}

	r = mustRun(t, "touch", existing, fresh)
	if len(r.Notes) != 2 || len(r.warnings()) != 0 {
		t.Errorf("touch notes = %+v", r.Notes)
	}
	if exists(fresh) {
		t.Error("touch simulation created the file")
	}

	for _, c := range []string{"mkdir", "touch"} {
		if _, err := run(t, c); !errors.Is(err, ErrUsage) {
			t.Errorf("%s with no operand: error = %v, want ErrUsage", c, err)
		}
	}
}

func TestEcho(t *testing.T) {
	tests := []struct {
		argv []string
		want string
	}{
		{[]string{"hello", "world"}, "would print: hello world"},
		{[]string{"a b"}, "would print: 'a b'"},
		{[]string{"$HOME"}, "would print: '$HOME'"},
		{nil, "would print: "},
	}
	for _, tt := range tests {
		r := mustRun(t, "echo", tt.argv...)
		if len(r.Notes) != 1 || r.Notes[0].Text != tt.want {
			t.Errorf("echo %q = %+v, want %q", tt.argv, r.Notes, tt.want)
		}
	}
}

func TestCatRmdirRequireTargets(t *testing.T) {
	root := fixture(t, "f.txt", "empty/", "full/x")
	missingPath := filepath.Join(root, "missing")

	for _, c := range []string{"cat", "rmdir"} {
		_, err := run(t, c, missingPath)
		if !errors.Is(err, ErrMissing) {
			t.Errorf("%s on missing path: error = %v, want ErrMissing", c, err)
		}
	}

	r := mustRun(t, "cat", filepath.Join(root, "f.txt"))
	if !hasNote(r, diag.LevelInfo, "(5 bytes)") {
		t.Errorf("cat notes = %+v", r.Notes)
	}

	r = mustRun(t, "rmdir", filepath.Join(root, "empty"), filepath.Join(root, "full"), filepath.Join(root, "f.txt"))
	if !hasNote(r, diag.LevelInfo, "would remove empty directory") {
		t.Errorf("rmdir empty note missing: %+v", r.Notes)
	}
	if !hasNote(r, diag.LevelWarn, "is not empty") {
		t.Errorf("rmdir non-empty warning missing: %+v", r.Notes)
	}
	if !hasNote(r, diag.LevelWarn, "is not a directory") {
		t.Errorf("rmdir file warning missing: %+v", r.Notes)
	}
	if !isDir(filepath.Join(root, "empty")) {
		t.Error("rmdir simulation removed the directory")
	}
}

func TestLs(t *testing.T) {
	root := fixture(t, "a", "b")

	r := mustRun(t, "ls", root, filepath.Join(root, "nope"))
	if !hasNote(r, diag.LevelInfo, "(2 entries)") {
		t.Errorf("ls notes = %+v", r.Notes)
	}
	if !hasNote(r, diag.LevelWarn, "does not exist") {
		t.Errorf("ls missing-path warning absent: %+v", r.Notes)
	}

	r = mustRun(t, "ls", "-la")
	if len(r.Notes) != 1 || r.Notes[0].Target != "." {
		t.Errorf("ls with no target should default to '.', got %+v", r.Notes)
	}
}

func TestGrep(t *testing.T) {
	root := fixture(t, "log.txt")
	logFile := filepath.Join(root, "log.txt")

	if _, err := run(t, "grep", "pattern"); !errors.Is(err, ErrUsage) {
		t.Errorf("grep with no file: error = %v, want ErrUsage", err)
	}
	if _, err := run(t, "grep", "x", filepath.Join(root, "nope")); !errors.Is(err, ErrMissing) {
		t.Errorf("grep missing file: error = %v, want ErrMissing", err)
	}

	r := mustRun(t, "grep", "-i", "error here", logFile)
	if !hasNote(r, diag.LevelInfo, "for 'error here'") {
		t.Errorf("grep notes = %+v", r.Notes)
	}
}

func TestFind(t *testing.T) {
	r := mustRun(t, "find", ".", "-name", "*.tmp")
	if !hasNote(r, diag.LevelInfo, "would run: find . -name '*.tmp'") {
		t.Errorf("find notes = %+v", r.Notes)
	}
	if len(r.warnings()) != 0 {
		t.Errorf("plain find warned: %+v", r.warnings())
	}

	r = mustRun(t, "find")
	if !hasNote(r, diag.LevelInfo, "would run: find") {
		t.Errorf("bare find notes = %+v", r.Notes)
	}

	r = mustRun(t, "find", ".", "-name", "*.log", "-delete")
	if !hasNote(r, diag.LevelWarn, "-delete") {
		t.Errorf("find -delete should warn, got %+v", r.Notes)
	}
}
