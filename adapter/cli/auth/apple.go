package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pairfit/adapter/cli"
)

var (
	appleIdentityToken string
	appleAuthCode      string
)

var appleCmd = &cobra.Command{
	Use:   "apple",
	Short: "Sign in with an Apple identity token",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cli.GetContainer()
		if c == nil {
			return fmt.Errorf("client is not initialized")
		}

		err := c.AuthStore.LoginWithApple(cmd.Context(), appleIdentityToken, appleAuthCode)
		if err != nil {
			return fmt.Errorf("apple sign in failed: %s", c.AuthStore.Err())
		}

		user := c.AuthStore.CurrentUser()
		fmt.Printf("Signed in as %s (%s)\n", user.FullName, user.Email)
		return nil
	},
}

func init() {
	appleCmd.Flags().StringVar(&appleIdentityToken, "identity-token", "", "Apple identity token")
	appleCmd.Flags().StringVar(&appleAuthCode, "auth-code", "", "Apple authorization code")
	_ = appleCmd.MarkFlagRequired("identity-token")
	_ = appleCmd.MarkFlagRequired("auth-code")
}
