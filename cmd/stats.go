package cmd

import (
	"fmt"
	"os"

	"github.com/eoflazer/paperclip/internal/config"
	"github.com/eoflazer/paperclip/internal/view"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show reading-list statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log := newLogger(cfg)
		defer log.Sync()

		st, err := openStore(log)
		if err != nil {
			return fmt.Errorf("opening reading list: %w", err)
		}

		counts := view.Tally(st.Items())
		total := counts.Unread + counts.Read + counts.Archived

		fmt.Printf("Items: %d\n", total)
		fmt.Printf("  unread:   %d\n", counts.Unread)
		fmt.Printf("  read:     %d\n", counts.Read)
		fmt.Printf("  archived: %d\n", counts.Archived)

		path := config.DataPath()
		fmt.Printf("Data: %s\n", path)
		if fi, err := os.Stat(path); err == nil {
			fmt.Printf("Size: %s\n", formatBytes(fi.Size()))
		}
		return nil
	},
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
