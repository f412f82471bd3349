package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"i18n-extract/internal/config"
	"i18n-extract/internal/extractor"
	"i18n-extract/internal/pending"
	"i18n-extract/internal/rules"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "i18n-extract",
		Short:         "Find translatable text in Vue and JS/TS sources",
		Long:          "Extracts translatable text from .vue, .js, .jsx, .ts and .tsx files and aggregates finished translations into per-locale resource trees.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(pendingCmd())
	rootCmd.AddCommand(aggregateCmd())
	return rootCmd
}

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

// loadConfig reads and validates the configuration, then applies the log level.
func loadConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("Unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	return cfg, nil
}

// dispatcherFactory validates the rule settings of cfg once and returns a constructor for
// dispatchers using them. Dispatchers hold walker state, so concurrent extractions each need
// their own.
func dispatcherFactory(cfg *config.Config) (func() *extractor.Dispatcher, error) {
	q, err := rules.ByName(cfg.Rule)
	if err != nil {
		return nil, err
	}
	r, opts := rules.New(q), cfg.ExtractorOptions()
	return func() *extractor.Dispatcher {
		return extractor.NewDefault(r, opts)
	}, nil
}

func locales(cfg *config.Config) pending.Locales {
	return pending.Locales{
		All:    cfg.Locales,
		Source: cfg.SourceLocale,
		Files:  cfg.LanguageMapFile(),
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
