package translation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kossidts/lingueasy/internal/catalog"
	"github.com/kossidts/lingueasy/internal/interpolation"
	"github.com/kossidts/lingueasy/internal/textutil"
)

// Defaults for Filler.
const (
	DefaultPause   = time.Second
	DefaultTimeout = 30 * time.Second
)

// errEmptyTranslation is reported when a provider answers with nothing.
var errEmptyTranslation = errors.New("provider returned an empty translation")

// Filler asks a Provider for every blank value of a catalog.
//
// Calls are made one at a time and Pause is waited between two consecutive
// calls: providers are rate limited and must not be called in parallel.
type Filler struct {
	Provider Provider
	// Pause is the delay between consecutive provider calls.
	Pause time.Duration
	// Timeout bounds a single provider call. Zero means no bound besides ctx.
	Timeout time.Duration
}

// NewFiller returns a Filler with the default pause and timeout.
func NewFiller(p Provider) *Filler {
	return &Filler{Provider: p, Pause: DefaultPause, Timeout: DefaultTimeout}
}

// FillStats summarises a Fill run.
type FillStats struct {
	Candidates int
	Translated int
	Failed     int
}

// Fill translates the blank values of c in place, in case-insensitive key
// order. A failed call is logged and leaves its value untouched. Fill only
// returns an error when ctx ends; entries translated so far are kept in c.
func (f *Filler) Fill(ctx context.Context, c catalog.Catalog, source, target string) (FillStats, error) {
	candidates := catalog.Candidates(c)
	stats := FillStats{Candidates: len(candidates)}

	if f.Provider == nil || len(candidates) == 0 {
		return stats, nil
	}

	if source == target {
		log.Info().Str("locale", target).Msg("Target is the source language, nothing to translate")
		return stats, nil
	}

	log.Info().
		Str("provider", f.Provider.Name()).
		Str("source", source).
		Str("target", target).
		Int("candidates", len(candidates)).
		Msg("Filling empty translations")

	for i, key := range candidates {
		translated, err := f.translate(ctx, source, target, key)
		if err != nil {
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}

			stats.Failed++

			log.Error().
				Err(err).
				Str("target", target).
				Str("text", textutil.Truncate(key, 40)).
				Msg("Translation failed")
		} else {
			c[key] = translated
			stats.Translated++
		}

		if i < len(candidates)-1 && f.Pause > 0 {
			if err := sleep(ctx, f.Pause); err != nil {
				return stats, err
			}
		}
	}

	log.Info().
		Str("target", target).
		Int("translated", stats.Translated).
		Int("failed", stats.Failed).
		Msg("Fill complete")

	return stats, nil
}

func (f *Filler) translate(ctx context.Context, source, target, text string) (string, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	protected, mappings := interpolation.Protect(text)

	out, err := f.Provider.Translate(ctx, source, target, protected)
	if err != nil {
		return "", fmt.Errorf("%s: %w", f.Provider.Name(), err)
	}

	if catalog.IsBlank(out) {
		return "", errEmptyTranslation
	}

	if !interpolation.Intact(out, mappings) {
		log.Warn().
			Str("target", target).
			Str("text", textutil.Truncate(text, 40)).
			Msg("Provider dropped a placeholder")
	}

	return interpolation.Restore(out, mappings), nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
