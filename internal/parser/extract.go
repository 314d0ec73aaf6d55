package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/kossidts/lingueasy/internal/worker"
)

// Extractor finds translatable literals in source files.
type Extractor struct {
	// Root is the project root; record paths are relative to it.
	Root string
	// Workers bounds concurrent file reads.
	Workers int
}

// NewExtractor creates an Extractor rooted at root.
func NewExtractor(root string, workers int) *Extractor {
	return &Extractor{Root: root, Workers: workers}
}

// Extract returns the records found in one source, in line then match order.
func (e *Extractor) Extract(src Source) []Record {
	rel := e.relative(src.Path)

	var records []Record

	for _, line := range Recombine(SplitLines(src.Content)) {
		if line.Unterminated {
			log.Warn().
				Str("file", rel).
				Int("line", line.Number).
				Msg("Unterminated backtick literal at end of file")
		}

		if !HasMarker(line.Text) {
			continue
		}

		for _, literal := range MatchLiterals(line.Text) {
			records = append(records, Record{File: rel, Line: line.Number, Literal: literal})
		}
	}

	return records
}

// ExtractSources runs Extract over every source and concatenates the results
// in input order.
func (e *Extractor) ExtractSources(sources []Source) []Record {
	var records []Record
	for _, src := range sources {
		records = append(records, e.Extract(src)...)
	}

	return records
}

// ExtractFiles reads and extracts the given files. Reads run concurrently but
// records are returned in file-list order. Files that cannot be read are
// skipped and reported in the returned slice.
func (e *Extractor) ExtractFiles(ctx context.Context, paths []string) ([]Record, []*FileError) {
	pool := worker.NewPool[string, []Record](e.Workers,
		func(ctx context.Context, path string) ([]Record, error) {
			content, err := os.ReadFile(path) // #nosec G304 -- paths come from file discovery
			if err != nil {
				return nil, fmt.Errorf("read source file: %w", err)
			}

			return e.Extract(Source{Path: path, Content: string(content)}), nil
		},
	)

	var (
		records []Record
		skipped []*FileError
	)

	for _, task := range pool.Execute(ctx, paths) {
		if task.Err != nil {
			skipped = append(skipped, &FileError{Path: task.Input, Err: task.Err})
			continue
		}

		log.Debug().Str("file", e.relative(task.Input)).Int("literals", len(task.Result)).Msg("Processed file")

		records = append(records, task.Result...)
	}

	return records, skipped
}

// relative returns path relative to the root, slash separated. Paths outside
// the root or unrelated to it are kept as given.
func (e *Extractor) relative(path string) string {
	if e.Root != "" {
		if rel, err := filepath.Rel(e.Root, path); err == nil {
			path = rel
		}
	}

	return filepath.ToSlash(path)
}
