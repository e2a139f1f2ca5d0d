package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/learnix/internal/cache"
	"github.com/abhisek/learnix/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "learnix",
	Short: "AI learning companion in your terminal",
	Long:  "Learnix — terminal app for exploring any topic through generated lessons, flashcards and quizzes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite cache file (overrides LEARNIX_DB env var)")
	rootCmd.PersistentFlags().String("api-url", "", "Backend base URL (overrides LEARNIX_API_URL env var)")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig builds the app config from env plus command-line overrides.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg := config.Load()
	if u, _ := cmd.Flags().GetString("api-url"); u != "" {
		cfg.APIBaseURL = u
	}
	return cfg
}

// resolveDBPath returns the cache path using --db flag (highest priority),
// then LEARNIX_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, cache.EnsureDir(p)
	}
	return cache.DefaultDBPath()
}
