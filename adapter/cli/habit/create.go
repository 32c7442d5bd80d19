package habit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pairfit/adapter/cli"
	habitstore "github.com/felixgeelhaar/pairfit/internal/habit"
)

var (
	createName        string
	createDescription string
	createCadence     string
	createDays        []int
	createInterval    int
)

var createCmd = &cobra.Command{
	Use:     "create",
	Short:   "Create a habit",
	Example: `  pairfit habit create -n "Morning run" -c daily
  pairfit habit create -n "Leg day" -c weekly --days 1,4`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cli.GetContainer()
		if c == nil {
			return fmt.Errorf("client is not initialized")
		}

		cadence := habitstore.Cadence(createCadence)
		if !cadence.IsValid() {
			return fmt.Errorf("invalid cadence %q (daily, weekly, or custom)", createCadence)
		}

		req := habitstore.CreateHabitRequest{
			Name:        createName,
			Description: createDescription,
			Cadence:     cadence,
		}
		if len(createDays) > 0 || createInterval > 0 {
			req.CadenceConfig = &habitstore.CadenceConfig{
				DaysOfWeek:         createDays,
				CustomIntervalDays: createInterval,
			}
		}

		created, err := c.HabitStore.CreateHabit(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("create habit: %w", err)
		}

		fmt.Printf("Created habit %s (%s)\n", created.Name, created.ID)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&createName, "name", "n", "", "habit name")
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "habit description")
	createCmd.Flags().StringVarP(&createCadence, "cadence", "c", "daily", "cadence (daily, weekly, custom)")
	createCmd.Flags().IntSliceVar(&createDays, "days", nil, "weekdays for a weekly cadence (0=Sunday)")
	createCmd.Flags().IntVar(&createInterval, "every", 0, "interval in days for a custom cadence")
	_ = createCmd.MarkFlagRequired("name")
}
