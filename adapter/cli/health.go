package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := GetContainer()
		if c == nil {
			return fmt.Errorf("client is not initialized")
		}

		health, err := c.APIClient.Health(cmd.Context())
		if err != nil {
			return fmt.Errorf("backend unreachable: %w", err)
		}

		fmt.Printf("Backend: %s\n", health.Status)
		fmt.Printf("  App: %s %s\n", health.App, health.Version)
		fmt.Printf("  Database: %s\n", health.Database)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
