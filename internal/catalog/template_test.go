package catalog

import (
	"path/filepath"
	"testing"

	"github.com/leonelquinteros/gotext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kossidts/lingueasy/internal/parser"
)

func TestBuildTemplateSingleLine(t *testing.T) {
	t.Parallel()

	got := BuildTemplate([]parser.Record{
		{File: "views/home.ejs", Line: 2, Literal: "Welcome"},
		{File: "app.js", Line: 5, Literal: "Welcome"},
	})

	want := "#: views/home.ejs:2\nmsgid \"Welcome\"\nmsgstr \"\"\n\n" +
		"#: app.js:5\nmsgid \"Welcome\"\nmsgstr \"\"\n\n"
	assert.Equal(t, want, got)
}

func TestBuildTemplateMultiLine(t *testing.T) {
	t.Parallel()

	got := BuildTemplate([]parser.Record{
		{File: "app.js", Line: 4, Literal: "first\nsecond"},
	})

	want := "#: app.js:4\nmsgid \"\"\n\"first\\n\"\n\"second\\n\"\nmsgstr \"\"\n\n"
	assert.Equal(t, want, got)
}

func TestBuildTemplateEscapes(t *testing.T) {
	t.Parallel()

	got := BuildTemplate([]parser.Record{
		{File: "a.js", Line: 1, Literal: `say "hi"` + "\t" + `\o/`},
	})

	assert.Equal(t, "#: a.js:1\nmsgid \"say \\\"hi\\\"\\t\\\\o/\"\nmsgstr \"\"\n\n", got)
}

func TestBuildTemplateEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, BuildTemplate(nil))
}

func TestTemplateParsesAsPO(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "template.pot")
	require.NoError(t, WriteTemplateFile(path, []parser.Record{
		{File: "a.js", Line: 1, Literal: "Hello"},
		{File: "a.js", Line: 2, Literal: "Good bye"},
	}))

	po := gotext.NewPo()
	po.ParseFile(path)

	translations := po.GetDomain().GetTranslations()
	assert.Contains(t, translations, "Hello")
	assert.Contains(t, translations, "Good bye")
}
