package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pairfit/adapter/cli"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cli.GetContainer()
		if c == nil {
			return fmt.Errorf("client is not initialized")
		}

		c.AuthStore.CheckAuthStatus(cmd.Context())

		if !c.AuthStore.IsAuthenticated() {
			fmt.Println("Not signed in.")
			return nil
		}

		user := c.AuthStore.CurrentUser()
		fmt.Printf("Signed in as %s (%s)\n", user.FullName, user.Email)
		return nil
	},
}
