package script

import "strings"

// Line is one physical script line split for simulation.
type Line struct {
	Number int
	Raw    string

	// Text is Raw cut at the first "#" and trimmed.
	Text    string
	Command string
	Args    []string
}

// ParseLine splits raw on whitespace. Quotes are not understood: a quoted
// argument containing spaces becomes several words, and a "#" inside quotes
// still starts a comment.
func ParseLine(number int, raw string) Line {
	l := Line{Number: number, Raw: raw}

	text, _, _ := strings.Cut(raw, "#")
	l.Text = strings.TrimSpace(text)

	fields := strings.Fields(l.Text)
	if len(fields) > 0 {
		l.Command = fields[0]
		l.Args = fields[1:]
	}
	return l
}
