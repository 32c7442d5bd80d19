// Package habit holds the habit tracking commands.
package habit

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for habit management.
var Cmd = &cobra.Command{
	Use:   "habit",
	Short: "Manage habits and daily logs",
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(updateCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(logCmd)
	Cmd.AddCommand(historyCmd)
}
