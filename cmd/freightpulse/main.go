package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/freightpulse/freightpulse/internal/analysis"
	v1 "github.com/freightpulse/freightpulse/internal/api/v1"
	"github.com/freightpulse/freightpulse/internal/app"
	corecfg "github.com/freightpulse/freightpulse/internal/core/config"
	"github.com/freightpulse/freightpulse/internal/core/storage/postgres"
	"github.com/freightpulse/freightpulse/internal/logging"
	"github.com/freightpulse/freightpulse/internal/migrations"
	"github.com/freightpulse/freightpulse/internal/server"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	rootCmd := &cobra.Command{
		Use:           "freightpulse",
		Short:         "Freight price movement analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the YAML config file (defaults and FREIGHTPULSE_* env vars apply without one)")

	rootCmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newAnalyzeCmd(),
		newInvalidateCacheCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the config and returns a context carrying the process logger.
func setup(cmd *cobra.Command) (context.Context, *corecfg.Config, error) {
	cfg, err := corecfg.Load(cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.New(cfg.Logging)
	zerolog.DefaultContextLogger = &logger
	return logger.WithContext(cmd.Context()), cfg, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			logger := zerolog.Ctx(ctx)

			a, err := app.Build(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.Close(); err != nil {
					logger.Error().Err(err).Msg("[App] Shutdown finished with errors")
				}
			}()

			srv := server.New(server.Options{
				Addr:          net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
				Mode:          cfg.Server.Mode,
				MaxBodySizeMB: cfg.Server.MaxBodySizeMB,
				Logger:        *logger,
				Checks:        a.Checks,
			})
			a.Engine.RegisterRoutes(srv.Engine)

			warmupDone := make(chan struct{})
			if a.Warmup != nil {
				go func() {
					defer close(warmupDone)
					if err := a.Warmup.Start(ctx); err != nil {
						logger.Error().Err(err).Msg("[Warmup] Scheduler stopped with error")
					}
				}()
			} else {
				close(warmupDone)
			}
			// Stores close only after the warmup scheduler has returned.
			defer func() { <-warmupDone }()

			// Run blocks until the signal context is cancelled.
			if err := srv.Run(ctx); err != nil {
				return fmt.Errorf("server stopped with error: %w", err)
			}
			logger.Info().Msg("[App] Shutdown complete")
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	var down bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply (or roll back) the Postgres schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			if cfg.Database.Type != "postgres" {
				return fmt.Errorf("database.type %q has no schema to migrate", cfg.Database.Type)
			}

			db, err := postgres.Open(ctx, cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
			if err != nil {
				return err
			}
			defer db.Close()

			if down {
				return migrations.Down(ctx, db)
			}
			return migrations.RunMigrations(ctx, db, true)
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "Roll back every migration")
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	var (
		periodID string
		filters  v1.Filters
		format   string
		noCache  bool
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run one price movement analysis and print it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			outputFormat, err := v1.ParseOutputFormat(format)
			if err != nil {
				return err
			}

			a, err := app.Build(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			result, hit, err := a.Engine.Analyze(ctx, analysis.AnalyzeRequest{
				TimePeriodID: periodID,
				Filters:      filters,
				OutputFormat: outputFormat,
				UseCache:     !noCache,
			})
			if err != nil {
				return err
			}
			if err := render(cmd.OutOrStdout(), result, hit); err != nil {
				return err
			}
			if result.Status == v1.StatusFailed {
				return fmt.Errorf("analysis %s failed: %s", result.ID, result.ErrorMessage)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&periodID, "period", "", "Time period id")
	cmd.Flags().StringSliceVar(&filters.OriginIDs, "origin", nil, "Origin ids to include")
	cmd.Flags().StringSliceVar(&filters.DestinationIDs, "destination", nil, "Destination ids to include")
	cmd.Flags().StringSliceVar(&filters.CarrierIDs, "carrier", nil, "Carrier ids to include")
	cmd.Flags().StringSliceVar(&filters.TransportModes, "mode", nil, "Transport modes to include")
	cmd.Flags().StringVar(&filters.CurrencyCode, "currency", "", "Currency to report in (defaults to the data's)")
	cmd.Flags().StringVarP(&format, "format", "o", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the cached result and recompute")
	_ = cmd.MarkFlagRequired("period")
	return cmd
}

func newInvalidateCacheCmd() *cobra.Command {
	var analysisID string
	cmd := &cobra.Command{
		Use:   "invalidate-cache",
		Short: "Drop one cached analysis, or all of them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cfg, err := setup(cmd)
			if err != nil {
				return err
			}

			a, err := app.Build(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.Engine.InvalidateCache(ctx, analysisID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "invalidated %d cache entries\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&analysisID, "id", "", "Analysis id whose cache entry to drop (all entries when empty)")
	return cmd
}
