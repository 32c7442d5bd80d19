// Package auth holds the session commands.
package auth

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for session management.
var Cmd = &cobra.Command{
	Use:   "auth",
	Short: "Sign in, sign out, and inspect the session",
}

func init() {
	Cmd.AddCommand(loginCmd)
	Cmd.AddCommand(registerCmd)
	Cmd.AddCommand(appleCmd)
	Cmd.AddCommand(logoutCmd)
	Cmd.AddCommand(statusCmd)
}
