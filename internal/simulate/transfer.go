package simulate

import (
	"path/filepath"

	"github.com/hpkotak/dryrun/internal/invocation"
)

func simulateCp(inv invocation.Invocation) (Report, error) {
	return simulateTransfer(inv, "copy")
}

func simulateMv(inv invocation.Invocation) (Report, error) {
	return simulateTransfer(inv, "move")
}

// simulateTransfer handles cp and mv: the last positional is the destination,
// everything before it is a source.
func simulateTransfer(inv invocation.Invocation, verb string) (Report, error) {
	if len(inv.Args) < 2 {
		return Report{}, usage(inv.Command, "needs at least one source and a destination")
	}

	sources := inv.Args[:len(inv.Args)-1]
	dest := inv.Args[len(inv.Args)-1]
	destIsDir := isDir(dest)
	recursive := inv.HasShortFlag('r') || inv.HasShortFlag('R') || inv.HasShortFlag('a') ||
		inv.HasFlag("--recursive", "--archive")

	var r Report
	if len(sources) > 1 && !destIsDir {
		r.warn(dest, "%d sources but destination %s is not an existing directory", len(sources), dest)
	}

	for _, src := range sources {
		if !exists(src) {
			r.warn(src, "source %s does not exist", src)
			continue
		}
		if verb == "copy" && isDir(src) && !recursive {
			r.warn(src, "%s is a directory; cp without -r would skip it", src)
			continue
		}

		target := dest
		if destIsDir {
			target = filepath.Join(dest, filepath.Base(src))
		}
		if exists(target) && !isDir(target) {
			r.warn(target, "%s already exists and would be overwritten", target)
		}
		r.info(src, "would %s %s -> %s", verb, src, target)
	}
	return r, nil
}
