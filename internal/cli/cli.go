package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kossidts/lingueasy/internal/config"
)

// rootOptions are the flags shared by every command.
type rootOptions struct {
	root       string
	configPath string
	verbose    bool
}

func (o *rootOptions) load() (*config.Config, error) {
	return config.Load(o.root, o.configPath)
}

// Execute runs the CLI application.
func Execute() {
	ctx, cancel := setupContext()
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "lingueasy",
		Short: "Extract, template and translate the UI strings of a web project",
		Long: `lingueasy scans a project for __("...") and _f("...", args) calls, writes a
gettext template and a JSON template, and keeps one JSON catalog per language
in sync with it, optionally filling empty entries through a translation provider.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(opts.verbose)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.root, "root", "", "Project root (default: working directory)")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Configuration file (default: <root>/"+config.FileName+")")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(generateCmd(opts))
	rootCmd.AddCommand(localizeCmd(opts))
	rootCmd.AddCommand(usageCmd(opts))
	rootCmd.AddCommand(statusCmd(opts))

	return rootCmd
}

func setupLogging(verbose bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
	})
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
