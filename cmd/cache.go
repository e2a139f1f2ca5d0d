package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnix/internal/cache"
	"github.com/abhisek/learnix/internal/logging"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the offline cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		stats, err := store.Stats()
		if err != nil {
			return fmt.Errorf("read stats: %w", err)
		}
		fmt.Printf("Cached query mappings: %d\n", stats.Mappings)
		fmt.Printf("Saved progress entries: %d\n", stats.ProgressEntries)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all cached mappings and saved progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.ClearAll(); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		fmt.Println("Cache cleared")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func openStore(cmd *cobra.Command) (*cache.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	if err := cache.EnsureDir(dbPath); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	store, err := cache.Open(dbPath, logging.Nop())
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return store, nil
}
