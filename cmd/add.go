package cmd

import (
	"context"
	"fmt"

	"github.com/eoflazer/paperclip/internal/extract"
	"github.com/eoflazer/paperclip/internal/store"
	"github.com/spf13/cobra"
)

func metadataOf(res extract.Result) store.Metadata {
	return store.Metadata{
		Title:    res.Title,
		Author:   res.Author,
		SiteName: res.SiteName,
		Summary:  res.Summary,
	}
}

var flagSkipLookup bool

var addCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Add a URL to the reading list",
	Long: `Validate a URL, derive its metadata through the configured AI provider, and
save it as a new unread item. If the lookup fails the item is still saved
with fallback metadata.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rawURL := args[0]
		if err := extract.ValidateURL(rawURL); err != nil {
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

		var res extract.Result
		if flagSkipLookup {
			res = extract.Fallback(rawURL)
		} else {
			svc, c := newService(cfg, log)
			if c != nil {
				defer c.Close()
			}
			fmt.Println("Analyzing...")
			res = svc.Lookup(context.Background(), rawURL)
		}

		item, err := st.Add(rawURL, metadataOf(res))
		if err != nil {
			return fmt.Errorf("saving item: %w", err)
		}

		fmt.Printf("Added %q\n", item.Title)
		fmt.Printf("  by %s · %s\n", item.Author, item.Site())
		if item.Summary != "" {
			fmt.Printf("  %s\n", item.Summary)
		}
		return nil
	},
}

func init() {
	addCmd.Flags().BoolVar(&flagSkipLookup, "skip-lookup", false, "store fallback metadata without calling the AI service")
}
