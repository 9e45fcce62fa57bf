package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/eoflazer/paperclip/internal/cache"
	"github.com/eoflazer/paperclip/internal/config"
	"github.com/eoflazer/paperclip/internal/extract"
	"github.com/eoflazer/paperclip/internal/logger"
	"github.com/eoflazer/paperclip/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "paperclip",
	Short: "Terminal reading-list manager",
	Long:  "paperclip saves URLs to a local reading list, derives their metadata with an LLM, and lets you triage items as unread, read, or archived.",
	RunE:  runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(cacheCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("paperclip %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newLogger never blocks startup: if the log file cannot be created the app
// just runs without logging.
func newLogger(cfg *config.Config) *zap.Logger {
	log, err := logger.New(config.LogPath(), cfg.LogLevel)
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func openStore(log *zap.Logger) (*store.Store, error) {
	return store.Open(config.DataPath(), config.LegacyDataPath(), log)
}

// newService wires the extractor: provider if an API key is configured,
// metadata cache if it opens. Both are optional — the service degrades to
// fallback metadata without them. The returned cache may be nil; callers
// close it when it isn't.
func newService(cfg *config.Config, log *zap.Logger) (*extract.Service, *cache.Cache) {
	var provider extract.Provider
	if cfg.AIEnabled() {
		p, err := extract.New(cfg.AI, cfg.AIKey())
		if err != nil {
			log.Warn("AI provider unavailable", zap.Error(err))
		} else {
			provider = p
		}
	}

	c, err := cache.Open(config.CachePath())
	if err != nil {
		log.Warn("metadata cache unavailable", zap.Error(err))
		c = nil
	}

	return extract.NewService(provider, c, cfg.ExtractTimeoutDuration(), log), c
}

// parseRetention accepts time.ParseDuration syntax plus an "Nd" day form.
func parseRetention(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}
