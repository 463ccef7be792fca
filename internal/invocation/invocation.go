// Package invocation splits an intercepted argument vector into flags and
// positional arguments.
package invocation

import "strings"

// Separator forces every later token to be positional.
const Separator = "--"

// Invocation is one intercepted command line. It is built once by Parse and
// treated as read-only afterwards.
type Invocation struct {
	Command string
	Flags   []string
	Args    []string

	// Raw is the argument vector exactly as given, separator included.
	Raw []string
}

// Parse partitions argv (everything after the command token).
// Before the first "--", tokens with a leading "-" are flags and the rest are
// positional. The first "--" is dropped and everything after it is positional,
// a second "--" included.
func Parse(command string, argv []string) Invocation {
	inv := Invocation{
		Command: command,
		Flags:   []string{},
		Args:    []string{},
		Raw:     append([]string(nil), argv...),
	}

	forced := false
	for _, tok := range argv {
		switch {
		case forced:
			inv.Args = append(inv.Args, tok)
		case tok == Separator:
			forced = true
		case strings.HasPrefix(tok, "-"):
			inv.Flags = append(inv.Flags, tok)
		default:
			inv.Args = append(inv.Args, tok)
		}
	}
	return inv
}

// HasFlag reports whether any of names was given verbatim as a flag.
func (inv Invocation) HasFlag(names ...string) bool {
	for _, f := range inv.Flags {
		for _, n := range names {
			if f == n {
				return true
			}
		}
	}
	return false
}

// HasShortFlag reports whether the single-letter option c was given, either
// alone ("-r") or inside a cluster ("-rf").
func (inv Invocation) HasShortFlag(c rune) bool {
	for _, f := range inv.Flags {
		if len(f) < 2 || strings.HasPrefix(f, "--") {
			continue
		}
		if strings.ContainsRune(f[1:], c) {
			return true
		}
	}
	return false
}

// SeparatorIndex returns the position of the first "--" in Raw, or -1.
func (inv Invocation) SeparatorIndex() int {
	for i, tok := range inv.Raw {
		if tok == Separator {
			return i
		}
	}
	return -1
}
