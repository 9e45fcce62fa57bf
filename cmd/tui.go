package cmd

import (
	"fmt"

	"github.com/eoflazer/paperclip/internal/tui"
	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, args []string) error {
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

	svc, c := newService(cfg, log)
	if c != nil {
		defer c.Close()
	}

	return tui.Run(tui.RunOpts{
		Cfg:     cfg,
		Store:   st,
		Service: svc,
		Log:     log,
	})
}
