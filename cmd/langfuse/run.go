package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/xingyaoww/langfuse/pkg/config"
	"github.com/xingyaoww/langfuse/pkg/server"
	"github.com/xingyaoww/langfuse/pkg/store"
	"github.com/xingyaoww/langfuse/pkg/store/retention"
	"github.com/xingyaoww/langfuse/pkg/telemetry/logging"
	"github.com/xingyaoww/langfuse/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	storePath     string
	dryRun        bool
	noWatch       bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the trace query server",
	Long: `Start the trace query server with the specified configuration.

The server listens on the configured address and serves session trace
queries, routing every query through the advisory engine before it
reaches the store.

Examples:
  # Start with default config
  langfuse run

  # Start with custom config
  langfuse run --config /etc/langfuse/config.yaml

  # Override listen address
  langfuse run --listen 0.0.0.0:8080

  # Validate config without starting the server
  langfuse run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&runFlags.storePath, "store", "", "override trace store path")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
	runCmd.Flags().BoolVar(&runFlags.noWatch, "no-watch", false, "disable config file watching")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, fromFile, err := loadConfiguration(cmd)
	if err != nil {
		return err
	}

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if runFlags.storePath != "" {
		cfg.Store.Path = runFlags.storePath
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	logger, err := logging.New(logging.Config{
		Level:      cfg.Telemetry.Logging.Level,
		Format:     cfg.Telemetry.Logging.Format,
		FilePath:   cfg.Telemetry.Logging.FilePath,
		MaxSizeMB:  cfg.Telemetry.Logging.MaxSizeMB,
		MaxBackups: cfg.Telemetry.Logging.MaxBackups,
		MaxAgeDays: cfg.Telemetry.Logging.MaxAgeDays,
		Compress:   cfg.Telemetry.Logging.Compress,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logger.Shutdown()
	slog.SetDefault(logger.Slog())

	fmt.Printf("Langfuse trace query service v%s\n", Version)
	if fromFile {
		fmt.Printf("Loading configuration from: %s\n", cfgFile)
	} else {
		fmt.Println("No configuration file found, using defaults")
	}
	fmt.Println("✓ Configuration loaded")

	// Trace store
	storage, err := store.NewSQLiteStorage(&store.SQLiteConfig{
		Path:         cfg.Store.Path,
		MaxOpenConns: cfg.Store.MaxOpenConns,
		MaxIdleConns: cfg.Store.MaxIdleConns,
		WALMode:      cfg.Store.WALMode,
		BusyTimeout:  cfg.Store.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to open trace store: %w", err)
	}
	defer storage.Close()
	fmt.Printf("✓ Trace store opened (%s)\n", cfg.Store.Path)

	// Metrics
	registry := prometheus.NewRegistry()
	qm := metrics.NewQueryMetrics(&cfg.Telemetry.Metrics, registry)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Printf("✓ Metrics enabled (%s)\n", cfg.Telemetry.Metrics.Path)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Retention
	if cfg.Retention.Days > 0 && cfg.Retention.Schedule != "" {
		pruner := retention.NewPruner(storage, &retention.Config{
			RetentionDays: cfg.Retention.Days,
			PruneSchedule: cfg.Retention.Schedule,
		})
		scheduler := retention.NewScheduler(pruner)
		if err := scheduler.Start(ctx); err != nil {
			return fmt.Errorf("failed to start retention scheduler: %w", err)
		}
		defer scheduler.Stop()
		fmt.Printf("✓ Retention scheduler started (%d days, %q)\n",
			cfg.Retention.Days, cfg.Retention.Schedule)
	}

	srv := server.NewServer(cfg, storage, logger, qm, registry)

	// Config watching: only the query section is hot-reloadable; everything
	// else requires a restart.
	if fromFile && !runFlags.noWatch {
		watcher := config.NewWatcher(cfgFile, logger.Slog())
		go func() {
			err := watcher.Watch(ctx, func() error {
				reloaded, err := config.LoadConfigWithEnvOverrides(cfgFile)
				if err != nil {
					return err
				}
				srv.UpdateQueryConfig(reloaded.Query)
				return nil
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("config watcher stopped", "error", err)
			}
		}()
		fmt.Println("✓ Config watcher started")
	}

	fmt.Println()
	fmt.Printf("✓ Server listening on %s\n", cfg.Server.ListenAddress)
	fmt.Printf("✓ Health endpoint: http://%s/health\n", cfg.Server.ListenAddress)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Printf("✓ Metrics endpoint: http://%s%s\n", cfg.Server.ListenAddress, cfg.Telemetry.Metrics.Path)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	return srv.Start(ctx)
}

// loadConfiguration loads the config file named by the --config flag. A
// missing file is only an error when the flag was set explicitly; otherwise
// the built-in defaults apply.
func loadConfiguration(cmd *cobra.Command) (*config.Config, bool, error) {
	if _, err := os.Stat(cfgFile); err != nil {
		if os.IsNotExist(err) && !cmd.Flags().Changed("config") {
			return config.NewDefaultConfig(), false, nil
		}
		return nil, false, fmt.Errorf("failed to read config file %q: %w", cfgFile, err)
	}

	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}
