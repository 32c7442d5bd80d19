package couple

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pairfit/adapter/cli"
	couplestore "github.com/felixgeelhaar/pairfit/internal/couple"
)

var createName string

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a couple",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cli.GetContainer()
		if c == nil {
			return fmt.Errorf("client is not initialized")
		}

		err := c.CoupleStore.CreateCouple(cmd.Context(), couplestore.CreateCoupleRequest{Name: createName})
		if err != nil {
			return fmt.Errorf("create couple: %w", err)
		}

		fmt.Println("Couple created. Generate an invite to add your partner.")
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&createName, "name", "n", "", "couple name")
}
