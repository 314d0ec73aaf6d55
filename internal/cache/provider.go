package cache

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/kossidts/lingueasy/internal/catalog"
	"github.com/kossidts/lingueasy/internal/translation"
)

// ErrBlankTranslation is returned when the wrapped provider answers with
// nothing. Such answers are never remembered.
var ErrBlankTranslation = errors.New("provider returned a blank translation")

// Provider answers from the cache and only calls the wrapped provider on a
// miss, remembering its answer.
type Provider struct {
	next  translation.Provider
	cache *TranslationCache
}

// Wrap decorates p with c. A nil p stays nil so filling remains a no-op.
func Wrap(p translation.Provider, c *TranslationCache) translation.Provider {
	if p == nil {
		return nil
	}

	return &Provider{next: p, cache: c}
}

// Name implements translation.Provider.
func (p *Provider) Name() string { return p.next.Name() }

// Translate implements translation.Provider.
func (p *Provider) Translate(ctx context.Context, source, target, text string) (string, error) {
	if v, ok := p.cache.Get(ctx, source, target, text); ok {
		log.Debug().Str("target", target).Msg("Translation memory hit")
		return v, nil
	}

	out, err := p.next.Translate(ctx, source, target, text)
	if err != nil {
		return "", err
	}

	if catalog.IsBlank(out) {
		return "", ErrBlankTranslation
	}

	if err := p.cache.Set(ctx, source, target, text, out); err != nil {
		log.Warn().Err(err).Msg("Could not remember translation")
	}

	return out, nil
}
