package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kossidts/lingueasy/internal/catalog"
	"github.com/kossidts/lingueasy/internal/config"
	"github.com/kossidts/lingueasy/internal/translation"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func testProject(t *testing.T) *config.Config {
	t.Helper()

	root := t.TempDir()

	writeFile(t, root, "app.js", "const a = __(\"Hello\");\nconst b = _f('Hi %s', name);\n")
	writeFile(t, root, "views/page.ejs", "<p><%= __(`Line one\nline two`) %></p>\n<%= __(\"Hello\") %>\n")
	writeFile(t, root, "public/app.min.js", `__("minified")`)
	writeFile(t, root, "node_modules/x/index.js", `__("vendored")`)

	cfg := config.Default(root)
	cfg.Pause = 0

	return cfg
}

func TestRunGenerate(t *testing.T) {
	cfg := testProject(t)

	require.NoError(t, runGenerate(context.Background(), cfg))

	pot, err := os.ReadFile(cfg.POTPath())
	require.NoError(t, err)

	assert.Equal(t, `#: app.js:1
msgid "Hello"
msgstr ""

#: app.js:2
msgid "Hi %s"
msgstr ""

#: views/page.ejs:1
msgid ""
"Line one\n"
"line two\n"
msgstr ""

#: views/page.ejs:3
msgid "Hello"
msgstr ""

`, string(pot))

	tmpl, err := catalog.ReadFile(cfg.TemplatePath())
	require.NoError(t, err)
	assert.Equal(t, catalog.Catalog{"Hello": "", "Hi %s": "", "Line one\nline two": ""}, tmpl)
}

func TestRunGenerateMissingRoot(t *testing.T) {
	cfg := config.Default(filepath.Join(t.TempDir(), "missing"))
	cfg.TranslationsDir = filepath.Join(t.TempDir(), "languages")

	err := runGenerate(context.Background(), cfg)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

type stubProvider struct{}

func (stubProvider) Name() string { return "stub" }

func (stubProvider) Translate(_ context.Context, _, target, text string) (string, error) {
	if text == "Hello" {
		return "[" + target + "] Hello", nil
	}
	return "", errors.New("unsupported")
}

func TestRunLocalize(t *testing.T) {
	cfg := testProject(t)
	require.NoError(t, runGenerate(context.Background(), cfg))

	require.NoError(t, catalog.WriteFile(cfg.CatalogPath("de"), catalog.Catalog{
		"Hi %s":    "Hallo %s",
		"Obsolete": "Veraltet",
	}, catalog.FoldedOrder))

	require.NoError(t, runLocalize(context.Background(), cfg, []string{"de_DE", "FR"}, stubProvider{}))

	de, err := catalog.ReadFile(cfg.CatalogPath("de"))
	require.NoError(t, err)
	assert.Equal(t, catalog.Catalog{
		"Hello":              "[de] Hello",
		"Hi %s":              "Hallo %s",
		"Line one\nline two": "",
		"Obsolete":           "Veraltet",
	}, de)

	fr, err := catalog.ReadFile(cfg.CatalogPath("fr"))
	require.NoError(t, err)
	assert.Equal(t, "[fr] Hello", fr["Hello"])
	assert.Empty(t, fr["Hi %s"])
}

func TestRunLocalizeWithoutProvider(t *testing.T) {
	cfg := testProject(t)
	require.NoError(t, runGenerate(context.Background(), cfg))

	require.NoError(t, runLocalize(context.Background(), cfg, []string{"es"}, nil))

	data, err := os.ReadFile(cfg.CatalogPath("es"))
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"Hello\": \"\",\n    \"Hi %s\": \"\",\n    \"Line one\\nline two\": \"\"\n}", string(data))
}

func TestRunLocalizeErrors(t *testing.T) {
	cfg := testProject(t)

	err := runLocalize(context.Background(), cfg, []string{"de"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lingueasy generate")

	err = runLocalize(context.Background(), cfg, []string{"german"}, nil)
	assert.ErrorContains(t, err, "invalid language")
}

func TestRunStatus(t *testing.T) {
	cfg := testProject(t)
	require.NoError(t, runGenerate(context.Background(), cfg))
	require.NoError(t, runLocalize(context.Background(), cfg, []string{"de"}, stubProvider{}))

	var out bytes.Buffer
	require.NoError(t, runStatus(context.Background(), cfg, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"de", "1/3", "2", "0"}, strings.Fields(lines[1]))
}

type quotaProvider struct{ stubProvider }

func (quotaProvider) Usage(context.Context) (translation.Usage, error) {
	return translation.Usage{Used: 10, Limit: 100}, nil
}

func TestPrintUsage(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, printUsage(context.Background(), &out, quotaProvider{}))
	assert.Equal(t, "stub: 10 of 100 characters used (90 remaining)\n", out.String())

	assert.Error(t, printUsage(context.Background(), &out, nil))
	assert.ErrorContains(t, printUsage(context.Background(), &out, stubProvider{}), "does not report usage")
}

func TestGenerateCommand(t *testing.T) {
	cfg := testProject(t)

	cmd := newRootCmd()
	cmd.SetArgs([]string{"generate", "--root", cfg.Root})
	cmd.SetOut(&bytes.Buffer{})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.FileExists(t, cfg.TemplatePath())
}
