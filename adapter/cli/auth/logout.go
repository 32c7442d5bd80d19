package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pairfit/adapter/cli"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear local data",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cli.GetContainer()
		if c == nil {
			return fmt.Errorf("client is not initialized")
		}

		c.AuthStore.Logout(cmd.Context())
		fmt.Println("Signed out. Local data cleared.")
		return nil
	},
}
