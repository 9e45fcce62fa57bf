package cmd

import (
	"fmt"
	"time"

	"github.com/eoflazer/paperclip/internal/cache"
	"github.com/eoflazer/paperclip/internal/config"
	"github.com/spf13/cobra"
)

var flagOlderThan string

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the metadata lookup cache",
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old entries from the metadata cache",
	Long: `Delete cached metadata lookups older than the retention period and reclaim
disk space. Pruned URLs will be re-analyzed on their next submission.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		retention := 90 * 24 * time.Hour
		if flagOlderThan != "" {
			d, err := parseRetention(flagOlderThan)
			if err != nil {
				return fmt.Errorf("invalid --older-than value: %w", err)
			}
			retention = d
		}

		c, err := cache.Open(config.CachePath())
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer c.Close()

		deleted, err := c.Prune(retention)
		if err != nil {
			return fmt.Errorf("pruning: %w", err)
		}

		if deleted == 0 {
			fmt.Println("Nothing to prune.")
		} else {
			fmt.Printf("Pruned %d cached lookup(s) older than %s.\n", deleted, formatDuration(retention))
		}
		return nil
	},
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show metadata cache statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := config.CachePath()
		c, err := cache.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer c.Close()

		count, size, err := c.Stats(dbPath)
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		fmt.Printf("Cache: %s\n", dbPath)
		fmt.Printf("Entries: %d\n", count)
		fmt.Printf("Size: %s\n", formatBytes(size))
		return nil
	},
}

func init() {
	cachePruneCmd.Flags().StringVar(&flagOlderThan, "older-than", "", "override retention period (e.g., 30d, 720h)")
	cacheCmd.AddCommand(cachePruneCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
}

func formatDuration(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days > 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}
