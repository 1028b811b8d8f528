package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/whatbetter/whatapi/internal/client"
	"github.com/whatbetter/whatapi/internal/config"
	"github.com/whatbetter/whatapi/internal/metrics"
)

var (
	cfg    *config.Config
	logger zerolog.Logger

	trackerURL string
	username   string
	password   string
	rateLimit  string
)

var rootCmd = &cobra.Command{
	Use:   "whatapi",
	Short: "Command line client for gazelle music trackers",
	Long: `whatapi logs into a gazelle based private tracker, runs one operation and
logs out again. Settings come from config.yaml or APP_* environment variables;
the flags below override them.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initializeApp,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&trackerURL, "tracker", "", "tracker base URL (overrides tracker_url)")
	rootCmd.PersistentFlags().StringVarP(&username, "username", "u", "", "tracker username (overrides username)")
	rootCmd.PersistentFlags().StringVarP(&password, "password", "p", "", "tracker password (overrides password)")
	rootCmd.PersistentFlags().StringVar(&rateLimit, "rate-limit", "", "minimum interval between requests, e.g. 2s")

	rootCmd.AddCommand(artistCmd)
	rootCmd.AddCommand(snatchedCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "whatapi %s (built %s)\n", version, buildTime)
	},
}

// execute runs the selected command and reports a failure to Sentry when configured.
func execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		l := config.GetLogger()
		l.Error().Err(err).Msg("Command failed")
		if cfg != nil && cfg.Sentry.DSN != "" {
			sentry.CaptureException(err)
		}
	}
	if cfg != nil && cfg.Sentry.DSN != "" {
		sentry.Flush(2 * time.Second)
	}
	return err
}

func initializeApp(cmd *cobra.Command, _ []string) error {
	loaded := *config.GetConfig()
	cfg = &loaded
	logger = config.GetLogger()

	if trackerURL != "" {
		cfg.TrackerURL = trackerURL
	}
	if username != "" {
		cfg.Username = username
	}
	if password != "" {
		cfg.Password = password
	}
	if rateLimit != "" {
		cfg.RateLimit = rateLimit
	}
	if cfg.TrackerURL == "" {
		return errors.New("tracker url is required: set tracker_url, APP_TRACKER_URL or --tracker")
	}

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			Release:     "whatapi@" + version,
		}); err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Sentry, continuing without error reporting")
		}
	}

	logger.Info().
		Str("tracker_url", cfg.TrackerURL).
		Str("username", cfg.Username).
		Str("rate_limit", cfg.RateLimit).
		Str("cache_provider", cfg.Cache.Provider).
		Bool("metrics_enabled", cfg.Metrics.Enabled).
		Msg("Application started with configuration")

	return nil
}

// withSession logs in, runs fn and always logs out, even when fn fails.
func withSession(ctx context.Context, fn func(ctx context.Context, c client.Client) error) error {
	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Metrics.Address, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("Failed to serve metrics")
			}
		}()
		defer func() {
			if err := metricsServer.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown metrics server")
			}
		}()
	}

	c, err := client.NewClient(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close client")
		}
	}()

	if err := c.Login(ctx); err != nil {
		return err
	}
	defer func() {
		// Log out even when the command was interrupted.
		logoutCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()
		_ = c.Logout(logoutCtx)
	}()

	return fn(ctx, c)
}
