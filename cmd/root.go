package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"facscope/internal/config"
	"facscope/internal/logging"
)

var (
	// Global flags
	configPath string
	verbose    bool
	logFormat  string

	cfg    *config.Config
	logger = zerolog.Nop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "facscope",
	Short: "Scrape faculty profile pages and map them to subject expertise",
	Long: `facscope renders faculty profile pages in a headless browser, extracts the
content of the requested tab panels, normalizes it and matches it against a
catalog of subjects. Results are written as CSV, with optional JSON, Markdown,
SQLite and PDF reports.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		format, err := logging.ParseFormat(logFormat)
		if err != nil {
			return err
		}
		logger = logging.Setup(cmd.ErrOrStderr(), format, verbose)

		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if cfg.Path != "" {
			logger.Debug().Str("path", cfg.Path).Msg("loaded config file")
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/facscope/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format: console or json")
}
