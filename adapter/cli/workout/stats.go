package workout

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pairfit/adapter/cli"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show this week's training stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cli.GetContainer()
		if c == nil {
			return fmt.Errorf("client is not initialized")
		}

		c.WorkoutStore.FetchWeeklyStats(cmd.Context())

		stats := c.WorkoutStore.WeeklyStats()
		if stats == nil {
			fmt.Println("No stats available.")
			return nil
		}

		fmt.Printf("Week of %s\n", stats.WeekStart)
		fmt.Printf("  Sessions: %d\n", stats.SessionsCount)
		fmt.Printf("  Total time: %s\n", (time.Duration(stats.TotalDurationSeconds) * time.Second).Round(time.Minute))
		fmt.Printf("  Total volume: %.1f kg\n", stats.TotalVolume)
		return nil
	},
}
