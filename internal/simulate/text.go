package simulate

import (
	"os"
	"strconv"
	"strings"

	"github.com/hpkotak/dryrun/internal/invocation"
	"mvdan.cc/sh/v3/syntax"
)

// findActions are find primaries that act on what they match.
var findActions = []string{"-delete", "-exec", "-execdir", "-ok", "-okdir"}

func simulateEcho(inv invocation.Invocation) (Report, error) {
	var r Report
	r.info("", "would print: %s", Quote(inv.Raw))
	return r, nil
}

func simulateCat(inv invocation.Invocation) (Report, error) {
	for _, path := range inv.Args {
		if !exists(path) {
			return Report{}, missing("cat", path)
		}
	}

	var r Report
	if len(inv.Args) == 0 {
		r.info("", "would read from standard input")
		return r, nil
	}
	for _, path := range inv.Args {
		info, err := os.Stat(path)
		switch {
		case err != nil:
			r.info(path, "would display %s", path)
		case info.IsDir():
			r.warn(path, "%s is a directory; cat would fail", path)
		default:
			r.info(path, "would display %s (%d bytes)", path, info.Size())
		}
	}
	return r, nil
}

func simulateLs(inv invocation.Invocation) (Report, error) {
	targets := inv.Args
	if len(targets) == 0 {
		targets = []string{"."}
	}

	var r Report
	for _, path := range targets {
		info, err := os.Stat(path)
		if err != nil {
			r.warn(path, "%s does not exist", path)
			continue
		}
		if !info.IsDir() {
			r.info(path, "would list %s", path)
			continue
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			r.info(path, "would list directory %s", path)
			continue
		}
		r.info(path, "would list directory %s (%d entries)", path, len(entries))
	}
	return r, nil
}

func simulateGrep(inv invocation.Invocation) (Report, error) {
	if len(inv.Args) < 2 {
		return Report{}, usage("grep", "needs a pattern and at least one file")
	}

	pattern, files := inv.Args[0], inv.Args[1:]
	for _, f := range files {
		if !exists(f) {
			return Report{}, missing("grep", f)
		}
	}

	var r Report
	for _, f := range files {
		r.info(f, "would search %s for %s", f, Quote([]string{pattern}))
	}
	return r, nil
}

func simulateFind(inv invocation.Invocation) (Report, error) {
	var r Report
	for _, tok := range inv.Raw {
		for _, a := range findActions {
			if tok == a {
				r.warn(tok, "find expression uses %s and would act on every match", tok)
			}
		}
	}
	r.info("", "would run: %s", strings.TrimSpace("find "+Quote(inv.Raw)))
	return r, nil
}

// Quote joins words with each one quoted for a shell, so whitespace and
// special characters stay visible.
func Quote(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		q, err := syntax.Quote(w, syntax.LangBash)
		if err != nil {
			q = strconv.Quote(w)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " ")
}
