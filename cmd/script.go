package cmd

import (
	"github.com/hpkotak/dryrun/internal/script"
	"github.com/spf13/cobra"
)

var scriptModes = []struct {
	mode  string
	short string
}{
	{script.ModeSyntax, "Check a script's syntax with the shell, without running it"},
	{script.ModeTrace, "Print every command line of a script, in order, without running it"},
	{script.ModeSimulate, "Simulate each supported command line of a script"},
	{script.ModeCheckVars, "Flag variable usage and unquoted variables in deletions"},
	{script.ModeLint, "Run shellcheck on a script"},
}

func init() {
	for _, m := range scriptModes {
		rootCmd.AddCommand(newScriptCmd(m.mode, m.short))
	}
}

func newScriptCmd(mode, short string) *cobra.Command {
	return &cobra.Command{
		Use:   mode + " <script>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, mode, args[0])
		},
	}
}

func runScript(cmd *cobra.Command, mode, path string) error {
	e, err := newEngine()
	if err != nil {
		return err
	}
	return e.Run(commandContext(cmd), mode, []string{path})
}
