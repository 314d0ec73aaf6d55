package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kossidts/lingueasy/internal/translation"
)

func usageCmd(opts *rootOptions) *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Show the character quota of the translation provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("provider") {
				cfg.Provider = provider
			}

			p := translation.New(cfg.Provider, translation.Options{
				DeepLAPIKey:  cfg.DeepLAPIKey,
				GeminiAPIKey: cfg.GeminiAPIKey,
				GeminiModel:  cfg.GeminiModel,
			})

			return printUsage(cmd.Context(), cmd.OutOrStdout(), p)
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "Translation provider")

	return cmd
}

func printUsage(ctx context.Context, w io.Writer, p translation.Provider) error {
	if p == nil {
		return errors.New("no translation provider configured")
	}

	ur, ok := p.(translation.UsageReporter)
	if !ok {
		return fmt.Errorf("provider %s does not report usage", p.Name())
	}

	u, err := ur.Usage(ctx)
	if err != nil {
		return fmt.Errorf("query %s usage: %w", p.Name(), err)
	}

	if u.Remaining() < 0 {
		_, err = fmt.Fprintf(w, "%s: %d characters used\n", p.Name(), u.Used)
		return err
	}

	_, err = fmt.Fprintf(w, "%s: %d of %d characters used (%d remaining)\n", p.Name(), u.Used, u.Limit, u.Remaining())
	return err
}
