// Package extract turns a URL into descriptive metadata via an external LLM
// provider. A caller that has validated its URL always gets usable metadata
// back: any provider failure degrades to the deterministic Fallback.
package extract

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/eoflazer/paperclip/internal/cache"
	"github.com/eoflazer/paperclip/internal/config"
	"go.uber.org/zap"
)

// Result holds the four metadata fields for one URL.
type Result struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	SiteName string `json:"siteName"`
	Summary  string `json:"summary"`
}

// Provider queries one LLM backend for URL metadata.
type Provider interface {
	Extract(ctx context.Context, url string) (Result, error)
}

// New creates a Provider from the given AI config.
func New(cfg *config.AIConfig, apiKey string) (Provider, error) {
	if cfg == nil || apiKey == "" {
		return nil, errors.New("AI not configured")
	}

	client := &http.Client{Timeout: 30 * time.Second}

	switch cfg.Provider {
	case "gemini":
		model := cfg.Model
		if model == "" {
			model = "gemini-2.5-flash"
		}
		return &geminiProvider{apiKey: apiKey, model: model, client: client, baseURL: geminiBaseURL}, nil
	case "openai":
		model := cfg.Model
		if model == "" {
			model = "gpt-4o-mini"
		}
		return &openaiProvider{apiKey: apiKey, model: model, client: client, endpoint: openaiEndpoint}, nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %q (valid: gemini, openai)", cfg.Provider)
	}
}

const extractPrompt = `Analyze this URL and extract metadata: %s.
If the URL is a specific article, try to find the specific title and author.
If you cannot access the live page, infer the metadata from the URL structure or your knowledge base.
Provide a concise summary (approx 30-50 words) of what the page is about.`

const fallbackSummary = "Could not retrieve metadata automatically."

// Fallback is the deterministic degraded result used when extraction fails.
// It never errors: an unparseable host leaves the raw URL standing in for
// the site name.
func Fallback(rawURL string) Result {
	site := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
		site = u.Hostname()
	}
	return Result{
		Title:    rawURL,
		Author:   "Unknown",
		SiteName: site,
		Summary:  fallbackSummary,
	}
}

// ValidateURL is the submission-boundary check. Malformed URLs are rejected
// here and never reach a provider.
func ValidateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return errors.New("enter a URL")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("enter a valid URL (e.g., https://example.com)")
	}
	if u.Host == "" {
		return errors.New("enter a valid URL (e.g., https://example.com)")
	}
	return nil
}

// Service wraps a Provider with the cache and the never-fail contract.
type Service struct {
	provider Provider
	cache    *cache.Cache
	timeout  time.Duration
	log      *zap.Logger
}

// NewService builds a Service. provider and c may be nil: without a provider
// every lookup is a fallback, without a cache nothing is remembered.
func NewService(provider Provider, c *cache.Cache, timeout time.Duration, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Service{provider: provider, cache: c, timeout: timeout, log: log}
}

// Lookup resolves metadata for a validated URL. It never fails: provider
// errors are logged and absorbed by Fallback, so the add flow always has a
// complete result to store. Fallback results are not cached.
func (s *Service) Lookup(ctx context.Context, rawURL string) Result {
	if s.cache != nil {
		if e, ok, err := s.cache.Get(rawURL); err != nil {
			s.log.Warn("metadata cache read failed", zap.String("url", rawURL), zap.Error(err))
		} else if ok {
			return Result{Title: e.Title, Author: e.Author, SiteName: e.SiteName, Summary: e.Summary}
		}
	}

	if s.provider == nil {
		s.log.Info("no AI provider configured, using fallback metadata", zap.String("url", rawURL))
		return Fallback(rawURL)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.provider.Extract(ctx, rawURL)
	if err != nil {
		s.log.Warn("metadata extraction failed, using fallback", zap.String("url", rawURL), zap.Error(err))
		return Fallback(rawURL)
	}
	if res.Author == "" {
		res.Author = "Unknown"
	}

	if s.cache != nil {
		err := s.cache.Put(cache.Entry{
			URL:      rawURL,
			Title:    res.Title,
			Author:   res.Author,
			SiteName: res.SiteName,
			Summary:  res.Summary,
		})
		if err != nil {
			s.log.Warn("metadata cache write failed", zap.String("url", rawURL), zap.Error(err))
		}
	}
	return res
}
