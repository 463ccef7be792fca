// Package delegate runs tools that have their own dry-run mode, with that
// mode switched on. A plan is built first and always carries the dry-run
// form; there is no path that runs a delegated tool without it.
package delegate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hpkotak/dryrun/internal/config"
	"github.com/hpkotak/dryrun/internal/diag"
	"github.com/hpkotak/dryrun/internal/executor"
	"github.com/hpkotak/dryrun/internal/invocation"
)

var ErrNoDryRun = errors.New("no dry-run form")

// Plan is the command that will run in place of the intercepted one.
type Plan struct {
	Tool string
	Args []string

	// Describe is set when the tool has no dry-run mode for this use; the
	// plan is reported and never executed.
	Describe bool
}

func (p Plan) String() string {
	if len(p.Args) == 0 {
		return p.Tool
	}
	return p.Tool + " " + strings.Join(p.Args, " ")
}

// Planner builds plans from the command table.
type Planner struct {
	forms map[string]config.DryRun
}

// NewPlanner returns a planner for the delegates listed in t.
func NewPlanner(t *config.Table) *Planner {
	return &Planner{forms: t.Delegate}
}

// Plan attaches the tool's dry-run form to inv.
func (p *Planner) Plan(inv invocation.Invocation) (Plan, error) {
	form, ok := p.forms[inv.Command]
	if !ok {
		return Plan{}, fmt.Errorf("%w: %s", ErrNoDryRun, inv.Command)
	}

	raw := inv.Raw
	plan := Plan{Tool: inv.Command}

	switch {
	case len(form.Subcommands) > 0:
		idx := firstPositional(raw)
		if idx < 0 {
			plan.Args = clone(raw)
			plan.Describe = true
			return plan, nil
		}
		flags, ok := form.Subcommands[raw[idx]]
		if !ok {
			plan.Args = clone(raw)
			plan.Describe = true
			return plan, nil
		}
		plan.Args = insert(raw, idx+1, flags...)

	case form.Subcommand != "":
		idx := firstPositional(raw)
		if idx >= 0 {
			repl := []string{form.Subcommand}
			if r, ok := form.Rewrite[raw[idx]]; ok {
				repl = r
			}
			plan.Args = append(append(clone(raw[:idx]), repl...), raw[idx+1:]...)
		} else {
			at := len(raw)
			if sep := inv.SeparatorIndex(); sep >= 0 {
				at = sep
			}
			plan.Args = insert(raw, at, form.Subcommand)
		}

	case form.Append:
		at := len(raw)
		if sep := inv.SeparatorIndex(); sep >= 0 {
			at = sep
		}
		plan.Args = insert(raw, at, form.Flags...)

	default:
		plan.Args = insert(raw, 0, form.Flags...)
	}
	return plan, nil
}

// firstPositional returns the index in raw of the first positional token,
// honoring "--", or -1.
func firstPositional(raw []string) int {
	for i, tok := range raw {
		if tok == invocation.Separator {
			if i+1 < len(raw) {
				return i + 1
			}
			return -1
		}
		if !strings.HasPrefix(tok, "-") {
			return i
		}
	}
	return -1
}

func clone(s []string) []string {
	return append([]string{}, s...)
}

func insert(s []string, at int, vals ...string) []string {
	out := make([]string, 0, len(s)+len(vals))
	out = append(out, s[:at]...)
	out = append(out, vals...)
	out = append(out, s[at:]...)
	return out
}

// Runner checks, reports and executes plans.
type Runner struct {
	Planner *Planner
	Printer *diag.Printer
	Streams executor.Streams
}

// Run plans inv and executes the plan. A non-zero exit from the tool comes
// back as *executor.ExitError carrying the tool's own code.
func (r *Runner) Run(ctx context.Context, inv invocation.Invocation) error {
	plan, err := r.Planner.Plan(inv)
	if err != nil {
		return err
	}

	path, err := executor.Require(plan.Tool)
	if err != nil {
		return err
	}

	if plan.Describe {
		r.Printer.Info("would run: %s", plan)
		r.Printer.Warn("%s has no dry-run mode for this subcommand; not executed", inv.Command)
		return nil
	}

	r.Printer.Info("running: %s", plan)
	code, err := executor.Run(ctx, r.Streams, path, plan.Args...)
	if err != nil {
		return err
	}
	return executor.Check(plan.Tool, code)
}
