package script

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

// Kind classifies a variable scan finding.
type Kind int

const (
	KindVariable Kind = iota
	KindDangerousDelete
)

// Finding is one hit from ScanVars.
type Finding struct {
	Line int
	Kind Kind
	Text string
	Vars []string
}

var (
	varRefRe = regexp.MustCompile(`\$[A-Za-z_][A-Za-z0-9_]*`)

	// rm followed, possibly after other words, by a short option cluster
	// containing r, R or f (-rf, -fr, -R, -vf), or by --force or --recursive.
	forcedRmRe = regexp.MustCompile(`\brm\s(?:.*\s)?(?:-[A-Za-z]*[rRf]|--force\b|--recursive\b)`)
)

// ScanVars scans r line by line. Every line with a variable reference yields
// a KindVariable finding; a forced or recursive rm that also has a reference
// outside quotes yields a KindDangerousDelete finding after it.
func ScanVars(r io.Reader) ([]Finding, error) {
	var findings []Finding

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Text()

		locs := varRefRe.FindAllStringIndex(line, -1)
		if len(locs) == 0 {
			continue
		}

		findings = append(findings, Finding{
			Line: n,
			Kind: KindVariable,
			Text: strings.TrimSpace(line),
			Vars: uniqueRefs(line, locs),
		})

		if forcedRmRe.MatchString(line) && hasUnquotedRef(line, locs) {
			findings = append(findings, Finding{
				Line: n,
				Kind: KindDangerousDelete,
				Text: strings.TrimSpace(line),
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return findings, nil
}

func uniqueRefs(line string, locs [][]int) []string {
	seen := make(map[string]bool)
	var refs []string
	for _, loc := range locs {
		ref := line[loc[0]:loc[1]]
		if !seen[ref] {
			seen[ref] = true
			refs = append(refs, ref)
		}
	}
	return refs
}

// hasUnquotedRef reports whether any reference sits outside quotes, judged
// by the count of quote characters before it on the same line.
func hasUnquotedRef(line string, locs [][]int) bool {
	for _, loc := range locs {
		before := line[:loc[0]]
		if strings.Count(before, `"`)%2 == 0 && strings.Count(before, `'`)%2 == 0 {
			return true
		}
	}
	return false
}
