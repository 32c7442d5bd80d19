package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pairfit/adapter/cli"
	"github.com/felixgeelhaar/pairfit/internal/api"
)

var (
	registerEmail    string
	registerPassword string
	registerFullName string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cli.GetContainer()
		if c == nil {
			return fmt.Errorf("client is not initialized")
		}

		err := c.AuthStore.Register(cmd.Context(), api.RegisterRequest{
			Email:    registerEmail,
			Password: registerPassword,
			FullName: registerFullName,
		})
		if err != nil {
			return fmt.Errorf("registration failed: %s", c.AuthStore.Err())
		}

		user := c.AuthStore.CurrentUser()
		fmt.Printf("Welcome to PairFit, %s!\n", user.FullName)
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "account email")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "account password")
	registerCmd.Flags().StringVarP(&registerFullName, "name", "n", "", "full name")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("name")
}
