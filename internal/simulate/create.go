package simulate

import "github.com/hpkotak/dryrun/internal/invocation"

func simulateMkdir(inv invocation.Invocation) (Report, error) {
	if len(inv.Args) == 0 {
		return Report{}, usage("mkdir", "missing operand")
	}

	parents := inv.HasShortFlag('p') || inv.HasFlag("--parents")

	var r Report
	for _, target := range inv.Args {
		switch {
		case exists(target) && parents:
			r.info(target, "%s already exists, nothing to do", target)
		case exists(target):
			r.warn(target, "%s already exists; mkdir would fail", target)
		default:
			r.info(target, "would create directory %s", target)
		}
	}
	return r, nil
}

// touch is idempotent on existing files, so no existence check is made.
func simulateTouch(inv invocation.Invocation) (Report, error) {
	if len(inv.Args) == 0 {
		return Report{}, usage("touch", "missing file operand")
	}

	var r Report
	for _, target := range inv.Args {
		r.info(target, "would create %s or update its timestamp", target)
	}
	return r, nil
}
