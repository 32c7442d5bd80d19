package habit

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pairfit/adapter/cli"
	habitstore "github.com/felixgeelhaar/pairfit/internal/habit"
)

var (
	logDate   string
	logStatus string
	logNotes  string
)

var logCmd = &cobra.Command{
	Use:     "log <habit-id>",
	Short:   "Log a habit for a day",
	Example: `  pairfit habit log 2f9c... --status done
  pairfit habit log 2f9c... --date 2026-08-30 --status skipped`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cli.GetContainer()
		if c == nil {
			return fmt.Errorf("client is not initialized")
		}

		date := logDate
		if date == "" {
			date = time.Now().Format(habitstore.DateLayout)
		}
		status := habitstore.LogStatus(logStatus)
		if !status.IsValid() {
			return fmt.Errorf("invalid status %q (done or skipped)", logStatus)
		}

		entry, err := c.HabitStore.LogHabit(cmd.Context(), args[0], habitstore.LogRequest{
			Date:   date,
			Status: status,
			Notes:  logNotes,
		})
		if err != nil {
			return fmt.Errorf("log habit: %w", err)
		}

		fmt.Printf("Logged %s on %s\n", entry.Status, entry.Date)
		return nil
	},
}

func init() {
	logCmd.Flags().StringVar(&logDate, "date", "", "day to log (YYYY-MM-DD, defaults to today)")
	logCmd.Flags().StringVar(&logStatus, "status", "done", "log status (done or skipped)")
	logCmd.Flags().StringVar(&logNotes, "notes", "", "optional notes")
}
