// Package config loads the command table compiled into the binary.
// The table decides which commands are simulated, which are delegated to
// their own dry-run mode, and which name a script analysis mode.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed commands.yaml
var commandsYAML []byte

var ErrDuplicate = errors.New("command listed in more than one class")

// Table is the parsed interception table.
type Table struct {
	Filesystem []string          `yaml:"filesystem"`
	Text       []string          `yaml:"text"`
	Script     []string          `yaml:"script"`
	Delegate   map[string]DryRun `yaml:"delegate"`
}

// DryRun describes how a delegated tool is switched into its dry-run mode.
type DryRun struct {
	// Flags are inserted right after the tool name, or at the end when Append
	// is set.
	Flags  []string `yaml:"flags,omitempty"`
	Append bool     `yaml:"append,omitempty"`

	// Subcommand replaces the first positional argument (terraform plan).
	// Rewrite overrides that replacement for specific subcommands, so
	// "destroy" can become "plan -destroy".
	Subcommand string              `yaml:"subcommand,omitempty"`
	Rewrite    map[string][]string `yaml:"rewrite,omitempty"`

	// Subcommands maps a subcommand to the flags placed after it. Subcommands
	// not listed are described, never executed.
	Subcommands map[string][]string `yaml:"subcommands,omitempty"`
}

// Load parses and validates the embedded table.
func Load() (*Table, error) {
	return loadFrom(commandsYAML)
}

func loadFrom(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing command table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks that the class sets are mutually exclusive and that every
// delegate has some dry-run form.
func (t *Table) Validate() error {
	seen := make(map[string]string)
	add := func(class, name string) error {
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("empty command name in %s", class)
		}
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("%w: %s (%s, %s)", ErrDuplicate, name, prev, class)
		}
		seen[name] = class
		return nil
	}

	for class, names := range map[string][]string{
		"filesystem": t.Filesystem,
		"text":       t.Text,
		"script":     t.Script,
	} {
		for _, n := range names {
			if err := add(class, n); err != nil {
				return err
			}
		}
	}
	for _, n := range t.DelegateNames() {
		if err := add("delegate", n); err != nil {
			return err
		}
		d := t.Delegate[n]
		if len(d.Flags) == 0 && d.Subcommand == "" && len(d.Subcommands) == 0 {
			return fmt.Errorf("delegate %s has no dry-run form", n)
		}
		if len(d.Rewrite) > 0 && d.Subcommand == "" {
			return fmt.Errorf("delegate %s has rewrites but no subcommand", n)
		}
		for sub, repl := range d.Rewrite {
			if len(repl) == 0 {
				return fmt.Errorf("delegate %s: empty rewrite for %s", n, sub)
			}
		}
	}
	return nil
}

// DelegateNames returns the delegated tool names in sorted order.
func (t *Table) DelegateNames() []string {
	names := make([]string, 0, len(t.Delegate))
	for n := range t.Delegate {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Marshal renders the table as YAML.
func (t *Table) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encoding command table: %w", err)
	}
	return data, nil
}
