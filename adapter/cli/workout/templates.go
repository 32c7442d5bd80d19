package workout

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pairfit/adapter/cli"
	workoutstore "github.com/felixgeelhaar/pairfit/internal/workout"
)

var templatesMine bool

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List workout templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cli.GetContainer()
		if c == nil {
			return fmt.Errorf("client is not initialized")
		}

		if err := c.WorkoutStore.FetchTemplates(cmd.Context(), templatesMine); err != nil {
			return fmt.Errorf("fetch templates: %w", err)
		}

		templates := c.WorkoutStore.Templates()
		if len(templates) == 0 {
			fmt.Println("No templates found.")
			return nil
		}

		for _, t := range templates {
			origin := "mine"
			if t.IsSystem {
				origin = "system"
			}
			fmt.Printf("%s  %s [%s, %s, %d exercises]\n", t.ID, t.Name, t.Mode, origin, len(t.Exercises))
		}
		return nil
	},
}

var (
	createTemplateName string
	createTemplateMode string
)

var createTemplateCmd = &cobra.Command{
	Use:   "create-template",
	Short: "Create a workout template",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cli.GetContainer()
		if c == nil {
			return fmt.Errorf("client is not initialized")
		}

		mode := workoutstore.Mode(createTemplateMode)
		if !mode.IsValid() {
			return fmt.Errorf("invalid mode %q (gym or home)", createTemplateMode)
		}

		created, err := c.WorkoutStore.CreateTemplate(cmd.Context(), workoutstore.CreateTemplateRequest{
			Name: createTemplateName,
			Mode: mode,
		})
		if err != nil {
			return fmt.Errorf("create template: %w", err)
		}

		fmt.Printf("Created template %s (%s)\n", created.Name, created.ID)
		return nil
	},
}

func init() {
	templatesCmd.Flags().BoolVar(&templatesMine, "mine", false, "only show templates you created")

	createTemplateCmd.Flags().StringVarP(&createTemplateName, "name", "n", "", "template name")
	createTemplateCmd.Flags().StringVarP(&createTemplateMode, "mode", "m", "gym", "workout mode (gym or home)")
	_ = createTemplateCmd.MarkFlagRequired("name")
}
