package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/zostay/go-email-cleanse/internal/config"
	"github.com/zostay/go-email-cleanse/message/header/encoding"
	"github.com/zostay/go-email-cleanse/message/header/field"
)

var (
	configFile string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
	dec    *field.WordDecoder
)

var rootCmd = &cobra.Command{
	Use:               "email-cleanse",
	Short:             "Decodes email headers and messages into clean unicode",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
}

// Execute runs the command line.
func Execute() error {
	return rootCmd.Execute()
}

// setup loads the configuration and builds the logger and decoder shared by
// the subcommands.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	if configFile != "" {
		cfg, err = config.LoadFromFile(configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	dec = &field.WordDecoder{
		CharsetDecoder: encoding.CharsetDecoder,
		Detector:       &encoding.Detector{MinConfidence: cfg.Decode.MinConfidence},
	}

	logger.Debug("configured",
		"log-level", cfg.Logging.Level,
		"min-confidence", cfg.Decode.MinConfidence)

	return nil
}
