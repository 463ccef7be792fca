package cmd

import (
	"fmt"

	"github.com/hpkotak/dryrun/internal/config"
	"github.com/spf13/cobra"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Show the commands dryrun simulates or delegates",
	Args:  cobra.NoArgs,
	RunE:  runCommands,
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}

func runCommands(cmd *cobra.Command, args []string) error {
	tbl, err := config.Load()
	if err != nil {
		return err
	}

	data, err := tbl.Marshal()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprint(printer.Out(), string(data))
	return nil
}
