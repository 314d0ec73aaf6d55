package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kossidts/lingueasy/internal/catalog"
	"github.com/kossidts/lingueasy/internal/config"
	"github.com/kossidts/lingueasy/internal/filewalker"
	"github.com/kossidts/lingueasy/internal/parser"
)

func generateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Scan the project and write the translation templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			return runGenerate(cmd.Context(), cfg)
		},
	}
}

// runGenerate handles the `generate` command.
func runGenerate(ctx context.Context, cfg *config.Config) error {
	if err := os.MkdirAll(cfg.TranslationsDir, 0o755); err != nil {
		return fmt.Errorf("create translations directory: %w", err)
	}

	log.Info().
		Str("root", cfg.Root).
		Str("translations_dir", cfg.TranslationsDir).
		Strs("exclude_dirs", cfg.ExcludeDirs).
		Strs("exclude_files", cfg.ExcludeFiles).
		Strs("includes_files", cfg.IncludeFiles).
		Msg("Generating translation templates")

	w := &filewalker.Walker{
		ExcludeDirs:  cfg.ExcludeDirs,
		ExcludeFiles: cfg.ExcludeFiles,
		IncludeFiles: cfg.IncludeFiles,
		MarkersOnly:  true,
	}

	paths, err := w.Walk(cfg.Root)
	if err != nil {
		return fmt.Errorf("discover source files: %w", err)
	}

	records, skipped := parser.NewExtractor(cfg.Root, cfg.WorkerCount).ExtractFiles(ctx, paths)
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, fe := range skipped {
		log.Error().Err(fe.Err).Str("file", fe.Path).Msg("Skipped unreadable file")
	}

	if err := catalog.WriteTemplateFile(cfg.POTPath(), records); err != nil {
		return err
	}

	tmpl := catalog.FromRecords(records)
	if err := catalog.WriteFile(cfg.TemplatePath(), tmpl, catalog.ByteOrder); err != nil {
		return err
	}

	log.Info().
		Int("files", len(paths)).
		Int("skipped", len(skipped)).
		Int("records", len(records)).
		Int("literals", len(tmpl)).
		Str("pot", cfg.POTPath()).
		Str("json", cfg.TemplatePath()).
		Msg("Templates written")

	return nil
}
