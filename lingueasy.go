// Package lingueasy wires the translation catalogs of a project into an
// HTTP server.
//
//	l, err := lingueasy.Init(ctx, "", "")
//	if err != nil {
//		return err
//	}
//	http.ListenAndServe(":8080", l.Middleware(mux))
//
// Handlers then read the lookup functions of the request language with From:
//
//	loc := lingueasy.From(r.Context())
//	fmt.Fprint(w, loc.Tf("Listening on port %2$s.", 100, port))
package lingueasy

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog/log"

	"github.com/kossidts/lingueasy/internal/catalog"
	"github.com/kossidts/lingueasy/internal/config"
	"github.com/kossidts/lingueasy/internal/localizer"
	"github.com/kossidts/lingueasy/internal/translator"
)

type (
	// Localizer resolves request languages and installs a Localization.
	Localizer = localizer.Localizer
	// Localization carries the lookup functions of one request.
	Localization = localizer.Localization
	// Translators is the Tr/Tf pair bound to a locale.
	Translators = translator.Translators
	// Option configures Init.
	Option = localizer.Option
	// Metrics counts localized requests.
	Metrics = localizer.Metrics
)

// LangParam names the query parameter and cookie read for an explicit choice.
const LangParam = localizer.LangParam

// From returns the Localization of a request context, or nil when the
// request was not localized.
func From(ctx context.Context) *Localization {
	return localizer.From(ctx)
}

// Format substitutes args into the %s, %d, %f and %N$s placeholders of s.
func Format(s string, args ...any) string {
	return translator.Format(s, args...)
}

// WithMetrics counts localized requests with m.
func WithMetrics(m *Metrics) Option {
	return localizer.WithMetrics(m)
}

// WithSkip leaves requests whose path satisfies skip untouched. It replaces
// the exclude_paths rules of the configuration.
func WithSkip(skip func(path string) bool) Option {
	return localizer.WithSkip(skip)
}

// Init loads the configuration of the project at root (the working directory
// when empty), reads every catalog of its translations directory and returns
// a Localizer honouring exclude_paths. configPath overrides the configuration
// file location. A missing translations directory yields a Localizer that
// returns every text unchanged.
func Init(ctx context.Context, root, configPath string, opts ...Option) (*Localizer, error) {
	cfg, err := config.Load(root, configPath)
	if err != nil {
		return nil, err
	}

	reg, _, err := catalog.LoadDir(ctx, cfg.TranslationsDir, cfg.TemplateName)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("dir", cfg.TranslationsDir).Msg("No translations directory, texts are served untranslated")
		reg = catalog.Registry{}
	} else if err != nil {
		return nil, fmt.Errorf("load catalogs: %w", err)
	}

	log.Info().
		Str("dir", cfg.TranslationsDir).
		Strs("locales", reg.Locales()).
		Str("fallback", cfg.SourceLang).
		Msg("Localizer ready")

	all := make([]Option, 0, len(opts)+1)
	all = append(all, localizer.WithSkip(cfg.Excluded))
	all = append(all, opts...)

	return localizer.New(reg, translator.NewCache(), cfg.SourceLang, all...), nil
}
