// Package filewalker discovers the source files that may call the
// translation functions.
package filewalker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/kossidts/lingueasy/internal/parser"
)

// Walker selects files by base-name globs. A directory is skipped when its
// name matches one of ExcludeDirs. A file is kept when its name matches one
// of IncludeFiles and none of ExcludeFiles.
type Walker struct {
	ExcludeDirs  []string
	ExcludeFiles []string
	IncludeFiles []string
	// MarkersOnly drops files whose content has no translation call.
	MarkersOnly bool
}

// Walk discovers matching files under root, in lexical order. Paths are
// returned as given by the walk, rooted at root.
func (w *Walker) Walk(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	var paths []string

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}

		if d.IsDir() {
			if path != root && matchAny(w.ExcludeDirs, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !w.Selects(d.Name()) {
			return nil
		}

		if w.MarkersOnly {
			ok, err := hasMarker(path)
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("Cannot read file")
				return nil
			}
			if !ok {
				return nil
			}
		}

		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	log.Info().Int("count", len(paths)).Str("root", root).Msg("Discovered files")
	return paths, nil
}

// Selects reports whether a file with the given base name passes the
// include and exclude globs.
func (w *Walker) Selects(name string) bool {
	return matchAny(w.IncludeFiles, name) && !matchAny(w.ExcludeFiles, name)
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		ok, err := filepath.Match(p, name)
		if err != nil {
			log.Warn().Err(err).Str("pattern", p).Msg("Invalid glob pattern")
			continue
		}
		if ok {
			return true
		}
	}

	return false
}

func hasMarker(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	return parser.HasMarker(string(data)), nil
}
