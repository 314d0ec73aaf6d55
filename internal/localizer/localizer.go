// Package localizer resolves the language of an HTTP request and exposes the
// matching lookup functions to handlers through the request context.
package localizer

import (
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"github.com/kossidts/lingueasy/internal/catalog"
	"github.com/kossidts/lingueasy/internal/locale"
	"github.com/kossidts/lingueasy/internal/translator"
)

// LangParam names both the query parameter and the cookie holding an
// explicit language choice.
const LangParam = "lang"

// Localizer picks a locale per request among the loaded catalogs.
type Localizer struct {
	cache    *translator.Cache
	fallback string
	skip     func(path string) bool
	metrics  *Metrics

	mu       sync.RWMutex
	registry catalog.Registry
	locales  []string // fallback first, then the registry locales
	matcher  language.Matcher
}

// Option configures a Localizer.
type Option func(*Localizer)

// WithSkip leaves requests whose URL path satisfies skip untouched.
func WithSkip(skip func(path string) bool) Option {
	return func(l *Localizer) { l.skip = skip }
}

// WithMetrics counts localized requests per locale.
func WithMetrics(m *Metrics) Option {
	return func(l *Localizer) { l.metrics = m }
}

// New returns a Localizer over reg. fallback is used when no preference of
// the client matches a loaded locale; it is normally the source language.
func New(reg catalog.Registry, cache *translator.Cache, fallback string, opts ...Option) *Localizer {
	if cache == nil {
		cache = translator.NewCache()
	}

	l := &Localizer{
		cache:    cache,
		fallback: locale.Normalize(fallback, true),
	}
	if l.fallback == "" {
		l.fallback = "en"
	}

	for _, opt := range opts {
		opt(l)
	}

	l.install(reg)

	return l
}

// Reload swaps the registry and forgets every cached Translators.
func (l *Localizer) Reload(reg catalog.Registry) {
	l.mu.Lock()
	l.install(reg)
	l.cache.Invalidate()
	l.mu.Unlock()

	log.Info().Strs("locales", reg.Locales()).Msg("Reloaded catalogs")
}

// install replaces the registry and the matcher. Callers hold l.mu or own l
// exclusively.
func (l *Localizer) install(reg catalog.Registry) {
	locales := make([]string, 0, len(reg)+1)
	locales = append(locales, l.fallback)

	for _, loc := range reg.Locales() {
		if loc != l.fallback {
			locales = append(locales, loc)
		}
	}

	tags := make([]language.Tag, len(locales))
	for i, loc := range locales {
		tags[i] = language.Make(loc)
	}

	l.registry = reg
	l.locales = locales
	l.matcher = language.NewMatcher(tags)
}

// Resolve returns the short locale for r, looking in order at the query
// parameter, the cookie and the Accept-Language header.
func (l *Localizer) Resolve(r *http.Request) string {
	preferred := make([]string, 0, 3)

	if q := r.URL.Query().Get(LangParam); q != "" {
		preferred = append(preferred, normalizeTag(q))
	}

	if c, err := r.Cookie(LangParam); err == nil && c.Value != "" {
		preferred = append(preferred, normalizeTag(c.Value))
	}

	if al := r.Header.Get("Accept-Language"); al != "" {
		preferred = append(preferred, al)
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(preferred) == 0 {
		return l.fallback
	}

	_, idx := language.MatchStrings(l.matcher, preferred...)

	return l.locales[idx]
}

// Localize returns the Localization for a short locale. The read lock is
// held while the cache is filled so a concurrent Reload cannot leave
// Translators of the previous registry behind.
func (l *Localizer) Localize(lang string) *Localization {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return &Localization{
		Translators: l.cache.Get(lang, l.registry),
		Languages:   slices.Clone(l.locales),
	}
}

// Middleware installs the request's Localization into its context.
func (l *Localizer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.skip != nil && l.skip(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		lang := l.Resolve(r)
		if l.metrics != nil {
			l.metrics.observe(lang)
		}

		ctx := WithLocalization(r.Context(), l.Localize(lang))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// normalizeTag turns "pt_BR" into the BCP 47 "pt-BR" understood by the matcher.
func normalizeTag(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "_", "-")
}
