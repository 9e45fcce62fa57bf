package cmd

import (
	"fmt"

	"github.com/eoflazer/paperclip/internal/view"
	"github.com/spf13/cobra"
)

var flagStatus string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the reading list",
	Long: `Print the items the given filter admits. "all" shows everything except
archived items; "archived" shows only those.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := view.ParseFilter(flagStatus)
		if err != nil {
			return err
		}

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

		items := view.Visible(st.Items(), filter)
		if len(items) == 0 {
			fmt.Println("No items found.")
			return nil
		}

		for _, it := range items {
			fmt.Printf("[%s] %s\n", it.Status, it.Title)
			fmt.Printf("        %s · %s · added %s\n", it.Author, it.Site(), it.AddedAt.Format("Jan 2, 2006"))
			fmt.Printf("        %s\n", it.URL)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&flagStatus, "status", "all", "filter by status (all, unread, read, archived)")
}
