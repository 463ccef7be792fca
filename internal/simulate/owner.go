package simulate

import (
	"fmt"
	"strings"

	"github.com/hpkotak/dryrun/internal/invocation"
)

// ownerOf is injectable for testing.
var ownerOf = statOwner

// DescribeOwner turns a chown user[:group] spec into a description.
func DescribeOwner(spec string) string {
	user, group, hasGroup := strings.Cut(spec, ":")
	switch {
	case !hasGroup:
		return fmt.Sprintf("owner %s (group unchanged)", user)
	case user == "":
		return fmt.Sprintf("group %s (owner unchanged)", group)
	case group == "":
		return fmt.Sprintf("owner %s, group set to %s's login group", user, user)
	default:
		return fmt.Sprintf("owner %s, group %s", user, group)
	}
}

func simulateChown(inv invocation.Invocation) (Report, error) {
	if len(inv.Args) < 2 {
		return Report{}, usage("chown", "needs user[:group] and at least one file")
	}

	spec, targets := inv.Args[0], inv.Args[1:]
	if spec == "" || spec == ":" {
		return Report{}, usage("chown", "empty owner spec")
	}
	for _, target := range targets {
		if !exists(target) {
			return Report{}, missing("chown", target)
		}
	}

	change := DescribeOwner(spec)

	var r Report
	for _, target := range targets {
		current, err := ownerOf(target)
		if err != nil {
			current = "unknown"
		}
		r.info(target, "would change %s to %s (current: %s)", target, change, current)
	}
	return r, nil
}
