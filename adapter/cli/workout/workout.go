// Package workout holds the workout commands.
package workout

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for workouts.
var Cmd = &cobra.Command{
	Use:   "workout",
	Short: "Manage workout templates and sessions",
}

func init() {
	Cmd.AddCommand(templatesCmd)
	Cmd.AddCommand(createTemplateCmd)
	Cmd.AddCommand(startCmd)
	Cmd.AddCommand(trackCmd)
	Cmd.AddCommand(finishCmd)
	Cmd.AddCommand(statsCmd)
}
