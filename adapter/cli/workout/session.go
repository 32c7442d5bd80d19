package workout

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pairfit/adapter/cli"
	workoutstore "github.com/felixgeelhaar/pairfit/internal/workout"
)

var (
	startTemplateID string
	startName       string
	startMode       string
)

// The in-progress session lives in process memory, never in the mirror,
// so start, track and finish only cooperate inside one process. Separate
// CLI invocations cannot pick up a session started earlier.
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a workout session",
	Long: `Start a workout session. The in-progress session is held in memory
and is not persisted, so track and finish must run in the same process.`,
	Example: `  pairfit workout start -n "Push day" -m gym
  pairfit workout start --template 4b1a...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cli.GetContainer()
		if c == nil {
			return fmt.Errorf("client is not initialized")
		}

		mode := workoutstore.Mode(startMode)
		if !mode.IsValid() {
			return fmt.Errorf("invalid mode %q (gym or home)", startMode)
		}

		req := workoutstore.StartSessionRequest{
			TemplateID: startTemplateID,
			Name:       startName,
			Mode:       mode,
			StartTime:  time.Now(),
		}

		session, err := c.WorkoutStore.StartSession(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("start session: %w", err)
		}

		fmt.Printf("Session %s started at %s\n", session.ID, session.StartTime.Format("15:04"))
		return nil
	},
}

var trackNotes string

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Update the in-progress session",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cli.GetContainer()
		if c == nil {
			return fmt.Errorf("client is not initialized")
		}
		if c.WorkoutStore.CurrentSession() == nil {
			return fmt.Errorf("no session in progress")
		}

		var patch workoutstore.SessionPatch
		if cmd.Flags().Changed("notes") {
			patch.Notes = &trackNotes
		}
		c.WorkoutStore.UpdateCurrentSession(patch)

		fmt.Println("Session updated.")
		return nil
	},
}

var finishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Finish the in-progress session",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cli.GetContainer()
		if c == nil {
			return fmt.Errorf("client is not initialized")
		}
		if c.WorkoutStore.CurrentSession() == nil {
			fmt.Println("No session in progress.")
			return nil
		}

		if err := c.WorkoutStore.FinishSession(cmd.Context()); err != nil {
			return fmt.Errorf("finish session: %w", err)
		}

		fmt.Println("Session finished.")
		return nil
	},
}

func init() {
	startCmd.Flags().StringVar(&startTemplateID, "template", "", "template to start from")
	startCmd.Flags().StringVarP(&startName, "name", "n", "Workout", "session name")
	startCmd.Flags().StringVarP(&startMode, "mode", "m", "gym", "workout mode (gym or home)")

	trackCmd.Flags().StringVar(&trackNotes, "notes", "", "session notes")
}
