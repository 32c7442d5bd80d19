// Package couple holds the partner pairing commands.
package couple

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for couple management.
var Cmd = &cobra.Command{
	Use:   "couple",
	Short: "Pair with a partner and share progress",
}

func init() {
	Cmd.AddCommand(statusCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(inviteCmd)
	Cmd.AddCommand(acceptCmd)
	Cmd.AddCommand(settingsCmd)
	Cmd.AddCommand(feedCmd)
	Cmd.AddCommand(leaveCmd)
}
