// Package engine routes an intercepted command to its handler. The route
// table maps every known command name to a class and a handler, and is built
// once when the engine is created.
package engine

import (
	"context"
	"fmt"

	"github.com/hpkotak/dryrun/internal/config"
	"github.com/hpkotak/dryrun/internal/delegate"
	"github.com/hpkotak/dryrun/internal/diag"
	"github.com/hpkotak/dryrun/internal/executor"
	"github.com/hpkotak/dryrun/internal/invocation"
	"github.com/hpkotak/dryrun/internal/safety"
	"github.com/hpkotak/dryrun/internal/script"
	"github.com/hpkotak/dryrun/internal/simulate"
)

type handlerFunc func(ctx context.Context, inv invocation.Invocation) error

type route struct {
	class   safety.Class
	handler handlerFunc
}

// Engine classifies and handles intercepted commands.
type Engine struct {
	printer    *diag.Printer
	classifier *safety.Classifier
	delegates  *delegate.Runner
	scripts    *script.Engine
	routes     map[string]route
}

// New builds an engine for the command table t. It fails if the table names
// a simulated command that has no handler.
func New(t *config.Table, p *diag.Printer, s executor.Streams) (*Engine, error) {
	e := &Engine{
		printer:    p,
		classifier: safety.NewClassifier(t),
		delegates: &delegate.Runner{
			Planner: delegate.NewPlanner(t),
			Printer: p,
			Streams: s,
		},
		routes: make(map[string]route),
	}
	e.scripts = &script.Engine{Printer: p, Simulator: e, Streams: s}

	handled := make(map[string]bool)
	for _, n := range simulate.Names() {
		handled[n] = true
	}
	for _, names := range [][]string{t.Filesystem, t.Text} {
		for _, n := range names {
			if !handled[n] {
				return nil, fmt.Errorf("no simulation handler for %s", n)
			}
			e.routes[n] = route{class: e.classifier.Classify(n), handler: e.Simulate}
		}
	}
	for _, n := range t.DelegateNames() {
		e.routes[n] = route{class: safety.NativeDelegate, handler: e.delegates.Run}
	}
	for _, n := range t.Script {
		e.routes[n] = route{class: safety.ScriptMode, handler: e.runScript}
	}
	return e, nil
}

// Class returns the class the route table holds for command.
func (e *Engine) Class(command string) safety.Class {
	return e.routes[command].class
}

// Run handles command with argv. Commands outside the table are looked up on
// PATH: present ones get a warning and nothing else, missing ones are fatal.
func (e *Engine) Run(ctx context.Context, command string, argv []string) error {
	inv := invocation.Parse(command, argv)

	r, ok := e.routes[command]
	if !ok {
		if _, err := safety.Locate(command); err != nil {
			return err
		}
		e.printer.Warn("%s is not explicitly supported; nothing was simulated or run", command)
		return nil
	}
	return r.handler(ctx, inv)
}

// Supports reports whether command has a simulation handler.
func (e *Engine) Supports(command string) bool {
	return e.classifier.Simulated(command)
}

// Simulate runs the simulation handler for inv and prints its notes.
func (e *Engine) Simulate(_ context.Context, inv invocation.Invocation) error {
	report, err := simulate.Run(inv)
	if err != nil {
		return err
	}
	for _, n := range report.Notes {
		e.printer.Print(n.Level, n.Text)
	}
	return nil
}

func (e *Engine) runScript(ctx context.Context, inv invocation.Invocation) error {
	if len(inv.Args) != 1 {
		return fmt.Errorf("%w: %s takes exactly one script path", simulate.ErrUsage, inv.Command)
	}
	return e.scripts.Run(ctx, inv.Command, inv.Args[0])
}
