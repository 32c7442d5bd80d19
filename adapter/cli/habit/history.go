package habit

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pairfit/adapter/cli"
	habitstore "github.com/felixgeelhaar/pairfit/internal/habit"
)

var historyDays int

var historyCmd = &cobra.Command{
	Use:   "history <habit-id>",
	Short: "Show recent logs for a habit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cli.GetContainer()
		if c == nil {
			return fmt.Errorf("client is not initialized")
		}

		to := time.Now()
		from := to.AddDate(0, 0, -historyDays)
		fromStr := from.Format(habitstore.DateLayout)
		toStr := to.Format(habitstore.DateLayout)

		c.HabitStore.FetchLogs(cmd.Context(), fromStr, toStr)

		logs := c.HabitStore.HabitLogsForDateRange(args[0], fromStr, toStr)
		if len(logs) == 0 {
			fmt.Println("No logs in this range.")
			return nil
		}

		for _, l := range logs {
			line := fmt.Sprintf("%s  %s", l.Date, l.Status)
			if l.Notes != "" {
				line += "  " + l.Notes
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyDays, "days", 30, "how many days back to show")
}
