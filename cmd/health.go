package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnix/internal/api"
	"github.com/abhisek/learnix/internal/logging"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		client := api.New(api.Config{
			BaseURL: cfg.APIBaseURL,
			Timeout: cfg.RequestTimeout,
		}, logging.Nop())

		if err := client.HealthCheck(cmd.Context()); err != nil {
			return fmt.Errorf("backend unhealthy: %w", err)
		}
		fmt.Println("Backend is healthy:", cfg.APIBaseURL)
		return nil
	},
}
