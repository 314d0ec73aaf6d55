package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kossidts/lingueasy/internal/cache"
	"github.com/kossidts/lingueasy/internal/catalog"
	"github.com/kossidts/lingueasy/internal/config"
	"github.com/kossidts/lingueasy/internal/locale"
	"github.com/kossidts/lingueasy/internal/translation"
)

func localizeCmd(opts *rootOptions) *cobra.Command {
	var (
		provider string
		pause    time.Duration
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "localize <lang>...",
		Short: "Create or update the catalogs of the given languages",
		Long: `Merges the JSON template into <lang>.json for every language, keeping
existing translations. With a provider, empty entries are translated one at a
time with a pause between calls.`,
		Example: "  lingueasy localize de fr_FR --provider deepl",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("provider") {
				cfg.Provider = provider
			}
			if flags.Changed("pause") {
				cfg.Pause = pause
			}
			if flags.Changed("timeout") {
				cfg.Timeout = timeout
			}

			ctx := cmd.Context()

			p, closeFn := newProvider(ctx, cfg)
			defer closeFn()

			return runLocalize(ctx, cfg, args, p)
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "Translation provider: deepl or gemini (default: none)")
	cmd.Flags().DurationVar(&pause, "pause", translation.DefaultPause, "Delay between two provider calls")
	cmd.Flags().DurationVar(&timeout, "timeout", translation.DefaultTimeout, "Timeout of a single provider call")

	return cmd
}

// newProvider builds the configured provider, backed by the translation
// memory. Without a provider it returns nil.
func newProvider(ctx context.Context, cfg *config.Config) (translation.Provider, func()) {
	p := translation.New(cfg.Provider, translation.Options{
		DeepLAPIKey:  cfg.DeepLAPIKey,
		GeminiAPIKey: cfg.GeminiAPIKey,
		GeminiModel:  cfg.GeminiModel,
	})
	if p == nil {
		return nil, func() {}
	}

	var (
		store   cache.Store
		closeFn = func() {}
	)

	if cfg.DatabaseURL != "" {
		pg, err := cache.OpenPGStore(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Warn().Err(err).Msg("Translation memory unavailable, continuing without it")
		} else {
			store = pg
			closeFn = pg.Close
		}
	}

	tc := cache.NewTranslationCache(store)
	if err := tc.Preload(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to preload translation memory")
	}

	return cache.Wrap(p, tc), closeFn
}

// runLocalize handles the `localize` command.
func runLocalize(ctx context.Context, cfg *config.Config, langs []string, provider translation.Provider) error {
	targets := make([]string, 0, len(langs))
	for _, raw := range langs {
		lang := locale.Normalize(raw, true)
		if lang == "" {
			return fmt.Errorf("invalid language %q (expected e.g. en or en_US)", raw)
		}
		targets = append(targets, lang)
	}

	tmpl, err := catalog.ReadFile(cfg.TemplatePath())
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("no translation template at %s, run \"lingueasy generate\" first: %w", cfg.TemplatePath(), err)
	}
	if err != nil {
		return err
	}

	filler := &translation.Filler{Provider: provider, Pause: cfg.Pause, Timeout: cfg.Timeout}

	for _, lang := range targets {
		if err := localizeOne(ctx, cfg, filler, tmpl, lang); err != nil {
			return err
		}
	}

	return nil
}

func localizeOne(ctx context.Context, cfg *config.Config, filler *translation.Filler, tmpl catalog.Catalog, lang string) error {
	path := cfg.CatalogPath(lang)

	existing, err := catalog.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	merged := catalog.Merge(tmpl, existing)
	added := len(merged) - len(existing)

	stats, fillErr := filler.Fill(ctx, merged, cfg.SourceLang, lang)

	// Translations obtained before an interruption are kept.
	if err := catalog.WriteFile(path, merged, catalog.FoldedOrder); err != nil {
		return err
	}

	log.Info().
		Str("lang", lang).
		Str("path", path).
		Int("entries", len(merged)).
		Int("added", added).
		Int("translated", stats.Translated).
		Int("failed", stats.Failed).
		Msg("Catalog updated")

	return fillErr
}
