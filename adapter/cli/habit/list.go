package habit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pairfit/adapter/cli"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your habits",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cli.GetContainer()
		if c == nil {
			return fmt.Errorf("client is not initialized")
		}

		if err := c.HabitStore.FetchHabits(cmd.Context()); err != nil {
			return fmt.Errorf("fetch habits: %w", err)
		}

		habits := c.HabitStore.Habits()
		if len(habits) == 0 {
			fmt.Println("No habits yet. Create one with 'pairfit habit create'.")
			return nil
		}

		for _, h := range habits {
			fmt.Printf("%s  %s (%s)\n", h.ID, h.Name, h.Cadence)
		}
		return nil
	},
}
