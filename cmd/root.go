package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fanzhongxing/jcc-web/apiclient"
	"github.com/fanzhongxing/jcc-web/config"
	"github.com/fanzhongxing/jcc-web/filter"
	"github.com/fanzhongxing/jcc-web/resource"
)

var (
	cfgFile   string
	cfg       *config.Config
	logger    zerolog.Logger
	apiClient *apiclient.Client
	filters   *filter.Manager
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "jcc",
	Short: "Browse jcc lineups, news and seasons from the terminal",
	Long: `jcc talks to the jcc backend API and renders its paginated
collections (lineups, news, seasons) in the terminal. Lineups can be
narrowed further with local filter expressions.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

// initializeApp loads the configuration and builds the shared client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	apiClient, err = apiclient.New(apiclient.Config{
		BaseURL:   cfg.API.URL,
		BasePath:  cfg.API.BasePath,
		Timeout:   cfg.API.Timeout,
		Retries:   cfg.API.Retries,
		UserAgent: userAgent(),
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	logger.Debug().
		Str("url", cfg.API.URL).
		Str("base_path", cfg.API.BasePath).
		Strs("presets", filters.ListFilters()).
		Msg("Initialized")

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Colour only when stderr is a terminal
	tty := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// hookOptions returns the options shared by every resource hook
func hookOptions() []resource.Option {
	return []resource.Option{
		resource.WithLogger(logger),
		resource.WithCache(cfg.Cache.Size, cfg.Cache.TTL),
	}
}
