package main

import (
	"context"
	"embed"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/sift/pkg/i18n"
	"github.com/dmitrymomot/sift/pkg/logger"
)

//go:embed locales/*.yaml
var locales embed.FS

// app carries what the subcommands share once the root command has run.
type app struct {
	cfg        Config
	log        *slog.Logger
	translator *i18n.Translator
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "sift",
		Short: "Validate YAML and JSON documents against declarative schemas",
		Long: `sift compiles a YAML or JSON schema into a validator tree and checks
documents against it. Failures are reported with the path of the offending
value and can be localized.

Environment:
  SIFT_LOG_LEVEL    debug, info, warn or error (default info)
  SIFT_LOG_FORMAT   text or json (default text)
  SIFT_LANG         language for failure messages (default en)
  SIFT_LOCALES_DIR  directory with extra translation catalogs
  SIFT_ASYNC        validate concurrently by default`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().String("log-level", "", "log level, overrides SIFT_LOG_LEVEL")
	cmd.PersistentFlags().String("log-format", "", "log format, overrides SIFT_LOG_FORMAT")

	cmd.AddCommand(
		newCheckCmd(a),
		newOpenAPICmd(a),
		newVersionCmd(),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.LogFormat = v
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	format, err := logger.ParseFormat(cfg.LogFormat)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithService("sift"),
		logger.WithContextValue("document", documentKey{}),
	)
	return nil
}

// loadTranslator reads the embedded catalogs, or the catalogs in
// SIFT_LOCALES_DIR when it is set.
func (a *app) loadTranslator(ctx context.Context) (*i18n.Translator, error) {
	if a.translator != nil {
		return a.translator, nil
	}

	var adapter i18n.TranslationAdapter = i18n.NewFSAdapter(locales, "locales")
	if a.cfg.LocalesDir != "" {
		adapter = i18n.NewFSAdapter(os.DirFS(a.cfg.LocalesDir), ".")
	}

	tr, err := i18n.NewTranslator(ctx, adapter,
		i18n.WithLogger(a.log),
		i18n.WithMissingTranslationsLogging(a.log.Enabled(ctx, slog.LevelDebug)),
	)
	if err != nil {
		return nil, err
	}
	a.translator = tr
	return tr, nil
}

type documentKey struct{}

func withDocument(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, documentKey{}, name)
}

// readFile reads name, or standard input for "-".
func readFile(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(name)
}
