package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/kossidts/lingueasy/internal/locale"
)

var (
	// ErrInvalidLocaleName is reported for catalog files whose name is not a locale.
	ErrInvalidLocaleName = errors.New("file name is not a locale")

	// ErrDuplicateLocale is reported when two files resolve to the same locale.
	ErrDuplicateLocale = errors.New("locale already loaded from another file")
)

// loadConcurrency bounds parallel catalog parsing.
const loadConcurrency = 4

// Registry holds one catalog per short locale.
type Registry map[string]Catalog

// Locales returns the registry's locales, sorted.
func (r Registry) Locales() []string {
	out := make([]string, 0, len(r))
	for k := range r {
		out = append(out, k)
	}

	sort.Strings(out)

	return out
}

// LoadResult describes what happened to one file during LoadDir.
type LoadResult struct {
	File    string
	Locale  string
	Entries int
	Err     error
}

// LoadDir scans dir for "<locale>.json" and "<locale>.po" catalogs. Files named
// after the template are ignored. A file with an invalid name or content is
// skipped and reported in the results; only failing to read dir itself is an
// error. When several files resolve to the same short locale, the first in
// directory order wins.
func LoadDir(ctx context.Context, dir, templateName string) (Registry, []LoadResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read translations directory: %w", err)
	}

	var files []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()

		ext := filepath.Ext(name)
		if ext != ".json" && ext != ".po" {
			continue
		}

		if strings.TrimSuffix(name, ext) == templateName {
			continue
		}

		files = append(files, name)
	}

	results := make([]LoadResult, len(files))
	parsed := make([]Catalog, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)

	for i, name := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i] = LoadResult{File: name}

			loc := locale.Short(strings.TrimSuffix(name, filepath.Ext(name)))
			if loc == "" {
				results[i].Err = ErrInvalidLocaleName
				return nil
			}

			results[i].Locale = loc

			c, err := loadFile(filepath.Join(dir, name))
			if err != nil {
				results[i].Err = err
				return nil
			}

			parsed[i] = c
			results[i].Entries = len(c)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	reg := Registry{}

	for i := range results {
		res := &results[i]
		if res.Err == nil {
			if _, dup := reg[res.Locale]; dup {
				res.Err = ErrDuplicateLocale
			} else {
				reg[res.Locale] = parsed[i]
			}
		}

		if res.Err != nil {
			log.Warn().Err(res.Err).Str("file", res.File).Msg("Skipping catalog file")
			continue
		}

		log.Debug().Str("file", res.File).Str("locale", res.Locale).Int("entries", res.Entries).Msg("Loaded catalog")
	}

	return reg, results, nil
}

func loadFile(path string) (Catalog, error) {
	if filepath.Ext(path) == ".po" {
		return readPO(path)
	}

	return ReadFile(path)
}

// readPO loads the singular translations of a gettext .po file. Untranslated
// entries are kept with an empty value.
//
// Multi-line entries written by WriteTemplate end every line with "\n", so
// one trailing newline is dropped from such ids, and from their values, to
// get back the literal found in the source.
func readPO(path string) (Catalog, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from a directory listing
	if err != nil {
		return nil, fmt.Errorf("read po catalog: %w", err)
	}

	po := gotext.NewPo()
	po.Parse(data)

	c := Catalog{}

	for id, tr := range po.GetDomain().GetTranslations() {
		if id == "" {
			continue
		}

		value := tr.Trs[0]
		if strings.HasSuffix(id, "\n") {
			id = strings.TrimSuffix(id, "\n")
			value = strings.TrimSuffix(value, "\n")
		}

		c[id] = value
	}

	return c, nil
}
