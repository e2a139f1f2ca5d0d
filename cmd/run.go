package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnix/internal/app"
)

// runApp resolves config and launches the TUI.
func runApp(cmd *cobra.Command) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}

	return app.Run(app.Options{
		Config: loadConfig(cmd),
		DBPath: dbPath,
	})
}
