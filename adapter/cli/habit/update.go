package habit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pairfit/adapter/cli"
	habitstore "github.com/felixgeelhaar/pairfit/internal/habit"
)

var (
	updateName        string
	updateDescription string
	updateCadence     string
)

var updateCmd = &cobra.Command{
	Use:   "update <habit-id>",
	Short: "Update a habit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cli.GetContainer()
		if c == nil {
			return fmt.Errorf("client is not initialized")
		}

		var req habitstore.UpdateHabitRequest
		if cmd.Flags().Changed("name") {
			req.Name = &updateName
		}
		if cmd.Flags().Changed("description") {
			req.Description = &updateDescription
		}
		if cmd.Flags().Changed("cadence") {
			cadence := habitstore.Cadence(updateCadence)
			if !cadence.IsValid() {
				return fmt.Errorf("invalid cadence %q (daily, weekly, or custom)", updateCadence)
			}
			req.Cadence = &cadence
		}

		updated, err := c.HabitStore.UpdateHabit(cmd.Context(), args[0], req)
		if err != nil {
			return fmt.Errorf("update habit: %w", err)
		}

		fmt.Printf("Updated habit %s\n", updated.Name)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVarP(&updateName, "name", "n", "", "habit name")
	updateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "habit description")
	updateCmd.Flags().StringVarP(&updateCadence, "cadence", "c", "", "cadence (daily, weekly, custom)")
}
