package simulate

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/hpkotak/dryrun/internal/invocation"
)

// triads maps one octal digit to its rwx string.
var triads = [8]string{"---", "--x", "-w-", "-wx", "r--", "r-x", "rw-", "rwx"}

var (
	octalRe      = regexp.MustCompile(`^[0-7]{3}$`)
	signedOctRe  = regexp.MustCompile(`^[+-][0-7]{3}$`)
	modeFlagRe   = regexp.MustCompile(`^-([rwx]|[0-7]{3})$`)
	symbolicMode = map[string]string{
		"+x": "add execute permission",
		"-x": "remove execute permission",
		"+w": "add write permission",
		"-w": "remove write permission",
		"+r": "add read permission",
		"-r": "remove read permission",
	}
)

// Triads decodes three octal digits into owner, group and other triads.
func Triads(digits string) (owner, group, other string, ok bool) {
	if !octalRe.MatchString(digits) {
		return "", "", "", false
	}
	return triads[digits[0]-'0'], triads[digits[1]-'0'], triads[digits[2]-'0'], true
}

// DescribeMode turns a chmod mode spec into a description of the change.
// Specs it does not recognize get a generic description.
func DescribeMode(spec string) string {
	if d, ok := symbolicMode[spec]; ok {
		return d
	}
	if o, g, x, ok := Triads(spec); ok {
		return fmt.Sprintf("set mode to %s%s%s (owner=%s group=%s other=%s)", o, g, x, o, g, x)
	}
	if signedOctRe.MatchString(spec) {
		o, g, x, _ := Triads(spec[1:])
		verb := "add"
		if spec[0] == '-' {
			verb = "remove"
		}
		return fmt.Sprintf("%s permissions owner=%s group=%s other=%s", verb, o, g, x)
	}
	return fmt.Sprintf("change permissions to %s", spec)
}

// chmodOperands finds the mode spec. A spec with a leading "-" ("-x", "-755")
// is filed under flags by the partitioner, so flags are checked first.
func chmodOperands(inv invocation.Invocation) (spec string, targets []string, err error) {
	for _, f := range inv.Flags {
		if modeFlagRe.MatchString(f) {
			spec, targets = f, inv.Args
			break
		}
	}
	if spec == "" {
		if len(inv.Args) == 0 {
			return "", nil, usage("chmod", "missing mode")
		}
		spec, targets = inv.Args[0], inv.Args[1:]
	}
	if len(targets) == 0 {
		return "", nil, usage("chmod", "missing operand after %s", spec)
	}
	return spec, targets, nil
}

func simulateChmod(inv invocation.Invocation) (Report, error) {
	spec, targets, err := chmodOperands(inv)
	if err != nil {
		return Report{}, err
	}

	change := DescribeMode(spec)

	var r Report
	for _, target := range targets {
		current := "unknown"
		if info, err := os.Stat(target); err == nil {
			current = strings.TrimPrefix(info.Mode().Perm().String(), "-")
		} else if !exists(target) {
			r.warn(target, "%s does not exist; chmod would fail", target)
		}
		r.info(target, "would %s on %s (current: %s)", change, target, current)
	}
	return r, nil
}
