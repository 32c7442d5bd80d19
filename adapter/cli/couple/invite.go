package couple

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pairfit/adapter/cli"
	couplestore "github.com/felixgeelhaar/pairfit/internal/couple"
)

var inviteCmd = &cobra.Command{
	Use:   "invite",
	Short: "Generate an invite code for your partner",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cli.GetContainer()
		if c == nil {
			return fmt.Errorf("client is not initialized")
		}

		invite, err := c.CoupleStore.GenerateInvite(cmd.Context())
		if errors.Is(err, couplestore.ErrNoCouple) {
			return fmt.Errorf("create a couple first with 'pairfit couple create'")
		}
		if err != nil {
			return fmt.Errorf("generate invite: %w", err)
		}

		fmt.Printf("Invite code: %s (expires %s)\n",
			invite.InviteCode, invite.ExpiresAt.Format("2006-01-02 15:04"))
		return nil
	},
}

var acceptCmd = &cobra.Command{
	Use:   "accept <code>",
	Short: "Accept a partner's invite code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cli.GetContainer()
		if c == nil {
			return fmt.Errorf("client is not initialized")
		}

		if err := c.CoupleStore.AcceptInvite(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("accept invite: %w", err)
		}

		fmt.Println("You are paired!")
		return nil
	},
}
