package catalog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kossidts/lingueasy/internal/parser"
)

var poEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\t", `\t`)

// BuildTemplate renders records as a PO template, one entry per record in
// input order. Nothing is deduplicated so every entry points at its source line.
func BuildTemplate(records []parser.Record) string {
	var b strings.Builder

	// strings.Builder never fails.
	_ = WriteTemplate(&b, records)

	return b.String()
}

// WriteTemplate writes the PO template for records to w.
//
// Single line literals produce:
//
//	#: views/home.ejs:12
//	msgid "Welcome"
//	msgstr ""
//
// Literals with embedded newlines use the multi-line msgid form, each line
// terminated by an explicit "\n".
func WriteTemplate(w io.Writer, records []parser.Record) error {
	for _, r := range records {
		if _, err := fmt.Fprintf(w, "#: %s\n", r.Location()); err != nil {
			return err
		}

		lines := strings.Split(strings.ReplaceAll(r.Literal, "\r\n", "\n"), "\n")
		if len(lines) <= 1 {
			if _, err := fmt.Fprintf(w, "msgid \"%s\"\n", poEscaper.Replace(r.Literal)); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w, "msgid \"\"\n"); err != nil {
				return err
			}

			for _, line := range lines {
				if _, err := fmt.Fprintf(w, "\"%s\\n\"\n", poEscaper.Replace(line)); err != nil {
					return err
				}
			}
		}

		if _, err := io.WriteString(w, "msgstr \"\"\n\n"); err != nil {
			return err
		}
	}

	return nil
}

// WriteTemplateFile writes the PO template for records to path.
func WriteTemplateFile(path string, records []parser.Record) error {
	if err := os.WriteFile(path, []byte(BuildTemplate(records)), 0o644); err != nil {
		return fmt.Errorf("write template: %w", err)
	}

	return nil
}
