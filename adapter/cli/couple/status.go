package couple

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pairfit/adapter/cli"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show your couple and its members",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cli.GetContainer()
		if c == nil {
			return fmt.Errorf("client is not initialized")
		}

		if err := c.CoupleStore.FetchCoupleInfo(cmd.Context()); err != nil {
			return fmt.Errorf("fetch couple: %w", err)
		}

		pair := c.CoupleStore.Couple()
		if pair == nil {
			fmt.Println("Not paired yet. Create a couple or accept an invite.")
			return nil
		}

		fmt.Printf("Couple %s\n", pair.ID)
		for _, m := range c.CoupleStore.Members() {
			fmt.Printf("  %s (%s, %s)\n", m.User.FullName, m.User.Email, m.Role)
		}
		if settings := c.CoupleStore.Settings(); settings != nil {
			fmt.Printf("  Sharing: progress=%t habits=%t\n",
				settings.ShareProgressEnabled, settings.ShareHabitsEnabled)
		}
		return nil
	},
}
