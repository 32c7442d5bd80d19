package couple

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pairfit/adapter/cli"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show the shared activity feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cli.GetContainer()
		if c == nil {
			return fmt.Errorf("client is not initialized")
		}

		c.CoupleStore.FetchSharedFeed(cmd.Context())

		feed := c.CoupleStore.SharedFeed()
		if len(feed) == 0 {
			fmt.Println("Nothing shared yet.")
			return nil
		}

		for _, item := range feed {
			fmt.Printf("%s  [%s] %s: %s\n",
				item.CreatedAt.Format("Jan 2 15:04"), item.Type, item.UserName, item.Content)
		}
		return nil
	},
}

var leaveCmd = &cobra.Command{
	Use:   "leave",
	Short: "Leave the couple",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cli.GetContainer()
		if c == nil {
			return fmt.Errorf("client is not initialized")
		}

		if err := c.CoupleStore.LeaveCouple(cmd.Context()); err != nil {
			return fmt.Errorf("leave couple: %w", err)
		}

		fmt.Println("You left the couple. Shared data cleared locally.")
		return nil
	},
}
