package couple

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pairfit/adapter/cli"
	couplestore "github.com/felixgeelhaar/pairfit/internal/couple"
)

var (
	settingsShareProgress bool
	settingsShareHabits   bool
)

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Short:   "Update sharing settings",
	Example: `  pairfit couple settings --share-progress=false
  pairfit couple settings --share-habits=true`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cli.GetContainer()
		if c == nil {
			return fmt.Errorf("client is not initialized")
		}

		var req couplestore.UpdateSettingsRequest
		if cmd.Flags().Changed("share-progress") {
			req.ShareProgressEnabled = &settingsShareProgress
		}
		if cmd.Flags().Changed("share-habits") {
			req.ShareHabitsEnabled = &settingsShareHabits
		}
		if req.ShareProgressEnabled == nil && req.ShareHabitsEnabled == nil {
			settings := c.CoupleStore.Settings()
			if settings == nil {
				fmt.Println("No settings available. Fetch couple status first.")
				return nil
			}
			fmt.Printf("Sharing: progress=%t habits=%t\n",
				settings.ShareProgressEnabled, settings.ShareHabitsEnabled)
			return nil
		}

		if err := c.CoupleStore.UpdateSettings(cmd.Context(), req); err != nil {
			return fmt.Errorf("update settings: %w", err)
		}

		fmt.Println("Settings updated.")
		return nil
	},
}

func init() {
	settingsCmd.Flags().BoolVar(&settingsShareProgress, "share-progress", true, "share workout progress with your partner")
	settingsCmd.Flags().BoolVar(&settingsShareHabits, "share-habits", true, "share habit activity with your partner")
}
