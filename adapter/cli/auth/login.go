package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pairfit/adapter/cli"
	"github.com/felixgeelhaar/pairfit/internal/api"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:     "login",
	Short:   "Sign in with email and password",
	Example: `  pairfit auth login -e me@example.com -p secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cli.GetContainer()
		if c == nil {
			return fmt.Errorf("client is not initialized")
		}

		err := c.AuthStore.Login(cmd.Context(), api.LoginRequest{
			Email:    loginEmail,
			Password: loginPassword,
		})
		if err != nil {
			return fmt.Errorf("login failed: %s", c.AuthStore.Err())
		}

		user := c.AuthStore.CurrentUser()
		fmt.Printf("Signed in as %s (%s)\n", user.FullName, user.Email)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}
