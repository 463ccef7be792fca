// Package diag prints leveled messages. Info and ok lines go to the output
// stream, warnings and errors to the error stream, each behind a fixed prefix.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Level is the severity of a message.
type Level int

const (
	LevelInfo Level = iota
	LevelOK
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelOK:
		return "OK"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Prefix is the bracketed label written before every message of this level.
func (l Level) Prefix() string {
	return "[" + l.String() + "]"
}

// Options is the process-wide output configuration, computed once at startup.
type Options struct {
	Out   io.Writer
	Err   io.Writer
	Color bool
}

// Printer writes leveled messages. The zero value is not usable; build one
// with New.
type Printer struct {
	out    io.Writer
	err    io.Writer
	color  bool
	styles map[Level]lipgloss.Style
	faint  lipgloss.Style
}

// Detect returns options for the real stdout/stderr. Color is enabled only
// when both streams are terminals and NO_COLOR is unset.
func Detect() Options {
	color := !termenv.EnvNoColor() &&
		isTerminal(os.Stdout) && isTerminal(os.Stderr)
	return Options{Out: os.Stdout, Err: os.Stderr, Color: color}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // Fd() fits in int on all supported platforms
}

// New builds a Printer from opts.
func New(opts Options) *Printer {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Err == nil {
		opts.Err = io.Discard
	}

	r := lipgloss.NewRenderer(opts.Out)
	if !opts.Color {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Printer{
		out:   opts.Out,
		err:   opts.Err,
		color: opts.Color,
		styles: map[Level]lipgloss.Style{
			LevelInfo:  r.NewStyle().Foreground(lipgloss.Color("#5FAFD7")).Bold(true),
			LevelOK:    r.NewStyle().Foreground(lipgloss.Color("#A8B545")).Bold(true),
			LevelWarn:  r.NewStyle().Foreground(lipgloss.Color("#FFD93D")).Bold(true),
			LevelError: r.NewStyle().Foreground(lipgloss.Color("#E05A3A")).Bold(true),
		},
		faint: r.NewStyle().Faint(true),
	}
}

// Out is the stream for informational output.
func (p *Printer) Out() io.Writer { return p.out }

// Err is the stream for warnings and errors.
func (p *Printer) Err() io.Writer { return p.err }

// Print writes msg at the given level.
func (p *Printer) Print(level Level, msg string) {
	w := p.out
	if level >= LevelWarn {
		w = p.err
	}

	label := level.Prefix()
	if p.color {
		label = p.styles[level].Render(label)
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", label, msg)
}

func (p *Printer) Info(format string, args ...any) {
	p.Print(LevelInfo, fmt.Sprintf(format, args...))
}

func (p *Printer) OK(format string, args ...any) {
	p.Print(LevelOK, fmt.Sprintf(format, args...))
}

func (p *Printer) Warn(format string, args ...any) {
	p.Print(LevelWarn, fmt.Sprintf(format, args...))
}

func (p *Printer) Error(format string, args ...any) {
	p.Print(LevelError, fmt.Sprintf(format, args...))
}

// Line writes an unprefixed line to the output stream, dimmed when color is on.
func (p *Printer) Line(s string) {
	if p.color {
		s = p.faint.Render(s)
	}
	_, _ = fmt.Fprintln(p.out, s)
}
