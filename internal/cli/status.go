package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kossidts/lingueasy/internal/catalog"
	"github.com/kossidts/lingueasy/internal/config"
)

func statusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report translation progress of every catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			return runStatus(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
}

// runStatus prints, per locale, how many template entries are translated,
// still missing, or obsolete.
func runStatus(ctx context.Context, cfg *config.Config, out io.Writer) error {
	tmpl, err := catalog.ReadFile(cfg.TemplatePath())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	reg, results, err := catalog.LoadDir(ctx, cfg.TranslationsDir, cfg.TemplateName)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LOCALE\tTRANSLATED\tMISSING\tOBSOLETE")

	for _, lang := range reg.Locales() {
		c := reg[lang]

		var translated, missing, obsolete int

		for k := range tmpl {
			if catalog.IsBlank(c[k]) {
				missing++
			} else {
				translated++
			}
		}

		for k := range c {
			if _, ok := tmpl[k]; !ok {
				obsolete++
			}
		}

		fmt.Fprintf(tw, "%s\t%d/%d\t%d\t%d\n", lang, translated, len(tmpl), missing, obsolete)
	}

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\terror: %v\t\t\n", r.File, r.Err)
		}
	}

	return tw.Flush()
}
