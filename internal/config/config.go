package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

type AIConfig struct {
	Provider string `yaml:"provider"` // "gemini" or "openai"
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
}

type Config struct {
	ExtractTimeout string    `yaml:"extract_timeout"`
	LogLevel       string    `yaml:"log_level,omitempty"`
	AI             *AIConfig `yaml:"ai,omitempty"`
}

// AIEnabled returns true if AI is configured with a valid API key.
func (c *Config) AIEnabled() bool {
	if c.AI == nil {
		return false
	}
	key := c.AI.APIKey
	if key == "" {
		key = os.Getenv("PAPERCLIP_AI_KEY")
	}
	return key != ""
}

// AIKey returns the resolved API key (config or env var).
func (c *Config) AIKey() string {
	if c.AI != nil && c.AI.APIKey != "" {
		return c.AI.APIKey
	}
	return os.Getenv("PAPERCLIP_AI_KEY")
}

func (c *Config) ExtractTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.ExtractTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "paperclip", "config.yaml")
}

// DataPath is where the reading list blob lives.
func DataPath() string {
	return filepath.Join(xdg.DataHome, "paperclip", "paperclip_items.json")
}

// LegacyDataPath is the pre-rename readflow blob, read once as a migration
// source and never written back.
func LegacyDataPath() string {
	return filepath.Join(xdg.DataHome, "readflow", "readflow_items.json")
}

func CachePath() string {
	return filepath.Join(xdg.CacheHome, "paperclip", "paperclip.db")
}

func LogPath() string {
	return filepath.Join(xdg.StateHome, "paperclip", "paperclip.log")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	if cfg.AI != nil {
		switch cfg.AI.Provider {
		case "gemini", "openai":
		case "":
			return fmt.Errorf("ai: provider is required when the ai block is set")
		default:
			return fmt.Errorf("ai: unknown provider %q (valid: gemini, openai)", cfg.AI.Provider)
		}
	}
	if cfg.ExtractTimeout != "" {
		if _, err := time.ParseDuration(cfg.ExtractTimeout); err != nil {
			return fmt.Errorf("extract_timeout: %w", err)
		}
	}
	return nil
}
