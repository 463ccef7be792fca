package simulate

import (
	"os"

	"github.com/hpkotak/dryrun/internal/invocation"
)

func simulateRm(inv invocation.Invocation) (Report, error) {
	if len(inv.Args) == 0 {
		return Report{}, usage("rm", "missing operand")
	}

	recursive := inv.HasShortFlag('r') || inv.HasShortFlag('R') || inv.HasFlag("--recursive")

	var r Report
	for _, target := range inv.Args {
		info, err := os.Lstat(target)
		if err != nil {
			r.warn(target, "%s does not exist, nothing to delete", target)
			continue
		}

		switch {
		case info.Mode()&os.ModeSymlink != 0:
			r.info(target, "would delete symlink %s (target left alone)", target)
		case info.IsDir():
			if !recursive {
				r.warn(target, "%s is a directory; rm without -r would refuse it", target)
			}
			r.info(target, "would delete directory %s (%s)", target, formatCount(countItems(target)))
		default:
			r.info(target, "would delete file %s (%d bytes)", target, info.Size())
		}
	}
	return r, nil
}

func simulateRmdir(inv invocation.Invocation) (Report, error) {
	if len(inv.Args) == 0 {
		return Report{}, usage("rmdir", "missing operand")
	}
	for _, target := range inv.Args {
		if !exists(target) {
			return Report{}, missing("rmdir", target)
		}
	}

	var r Report
	for _, target := range inv.Args {
		if !isDir(target) {
			r.warn(target, "%s is not a directory; rmdir would fail", target)
			continue
		}
		entries, err := os.ReadDir(target)
		if err == nil && len(entries) > 0 {
			r.warn(target, "%s is not empty (%d entries); rmdir would fail", target, len(entries))
			continue
		}
		r.info(target, "would remove empty directory %s", target)
	}
	return r, nil
}
