package habit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pairfit/adapter/cli"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <habit-id>",
	Short: "Delete a habit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cli.GetContainer()
		if c == nil {
			return fmt.Errorf("client is not initialized")
		}

		if err := c.HabitStore.DeleteHabit(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete habit: %w", err)
		}

		fmt.Println("Habit deleted.")
		return nil
	},
}
