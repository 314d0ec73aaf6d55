package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kossidts/lingueasy/internal/parser"
)

func TestLoadDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	files := map[string]string{
		"template.json": `{"Hello": ""}`,
		"template.pot":  "msgid \"Hello\"\nmsgstr \"\"\n",
		"de.json":       `{"Hello": "Hallo"}`,
		"fr_FR.json":    `{"Hello": "Bonjour"}`,
		"es.po":         "msgid \"Hello\"\nmsgstr \"Hola\"\n\nmsgid \"Bye\"\nmsgstr \"\"\n",
		"english.json":  `{"Hello": "Hello"}`,
		"it.json":       `{broken`,
		"notes.txt":     "ignored",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	reg, results, err := LoadDir(context.Background(), dir, "template")
	require.NoError(t, err)

	assert.Equal(t, []string{"de", "es", "fr"}, reg.Locales())
	assert.Equal(t, "Hallo", reg["de"]["Hello"])
	assert.Equal(t, "Bonjour", reg["fr"]["Hello"])
	assert.Equal(t, "Hola", reg["es"]["Hello"])
	assert.Equal(t, "", reg["es"]["Bye"])

	byFile := map[string]LoadResult{}
	for _, r := range results {
		byFile[r.File] = r
	}

	assert.Len(t, results, 5)
	assert.ErrorIs(t, byFile["english.json"].Err, ErrInvalidLocaleName)
	assert.Error(t, byFile["it.json"].Err)
	assert.NoError(t, byFile["de.json"].Err)
	assert.Equal(t, 1, byFile["de.json"].Entries)
}

func TestLoadDirDuplicateLocale(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(`{"a": "first"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en_GB.json"), []byte(`{"a": "second"}`), 0o644))

	reg, results, err := LoadDir(context.Background(), dir, "template")
	require.NoError(t, err)

	assert.Equal(t, "first", reg["en"]["a"])
	require.Len(t, results, 2)
	assert.ErrorIs(t, results[1].Err, ErrDuplicateLocale)
}

func TestLoadDirMissing(t *testing.T) {
	t.Parallel()

	_, _, err := LoadDir(context.Background(), filepath.Join(t.TempDir(), "nope"), "template")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadDirMultiLinePOMatchesTemplateKeys(t *testing.T) {
	t.Parallel()

	records := []parser.Record{
		{File: "a.ejs", Line: 1, Literal: "Line one\nline two"},
		{File: "a.ejs", Line: 4, Literal: "Hello"},
	}

	po := BuildTemplate(records) + `#: a.ejs:9
msgid ""
"First\n"
"second\n"
msgstr ""
"Erste\n"
"zweite\n"
`

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "de.po"), []byte(po), 0o644))

	reg, _, err := LoadDir(context.Background(), dir, "template")
	require.NoError(t, err)

	for key := range FromRecords(records) {
		assert.Contains(t, reg["de"], key)
	}

	assert.Equal(t, "Erste\nzweite", reg["de"]["First\nsecond"])
	assert.NotContains(t, reg["de"], "Line one\nline two\n")
}
