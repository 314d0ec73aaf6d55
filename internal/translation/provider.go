// Package translation fills empty catalog entries with machine translations.
//
// Providers are looked up by name with New. An unknown or empty name yields
// no provider, and filling with no provider leaves the catalog unchanged.
package translation

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrMissingCredentials is returned by providers that have no API key configured.
var ErrMissingCredentials = errors.New("missing provider credentials")

// Provider translates a single text between two locales.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string
	// Translate returns text translated from source to target. Locales are
	// given in canonical form ("en" or "pt_BR").
	Translate(ctx context.Context, source, target, text string) (string, error)
}

// Usage is a provider's character quota.
type Usage struct {
	Used  int64
	Limit int64
}

// Remaining returns Limit-Used, or -1 when the limit is unknown.
func (u Usage) Remaining() int64 {
	if u.Limit <= 0 {
		return -1
	}

	return u.Limit - u.Used
}

// UsageReporter is implemented by providers that expose their quota.
type UsageReporter interface {
	Usage(ctx context.Context) (Usage, error)
}

// Options carries provider credentials and transport settings.
type Options struct {
	DeepLAPIKey  string
	GeminiAPIKey string
	GeminiModel  string
	// HTTPClient overrides the default client; mostly useful for tests.
	HTTPClient *http.Client
}

// New returns the provider registered under name, or nil when name is empty
// or unknown.
func New(name string, opts Options) Provider {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "deepl":
		return NewDeepLClient(opts.DeepLAPIKey, opts.httpClient())
	case "gemini":
		return NewGeminiClient(opts.GeminiAPIKey, opts.GeminiModel, opts.httpClient())
	case "":
		return nil
	default:
		log.Warn().Str("provider", name).Msg("Unknown translation provider, automatic translation disabled")
		return nil
	}
}

func (o Options) httpClient() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}

	return &http.Client{Timeout: 120 * time.Second}
}
