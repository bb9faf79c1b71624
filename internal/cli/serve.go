package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/campaignhq/maestro/internal/config"
	"github.com/campaignhq/maestro/internal/httpapi"
	"github.com/campaignhq/maestro/internal/logger"
	"github.com/campaignhq/maestro/internal/metrics"
	"github.com/campaignhq/maestro/pkg/completion"
	"github.com/campaignhq/maestro/pkg/team"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Maestro orchestration server",
	Long: `Run the HTTP server exposing sessions, agents, tasks, and routing.
All state lives in memory for the lifetime of the process.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader(cfgFile).Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	appLogger, err := logger.New(logger.Config{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Console: true,
		Pretty:  cfg.Logging.Pretty,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer appLogger.Close()
	zl := appLogger.GetZerolog()

	profile, err := cfg.ActiveProfile()
	if err != nil {
		return err
	}

	factory := &completion.Factory{}
	gateway, err := factory.NewGateway(profile.Provider, profile.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create completion gateway: %w", err)
	}
	zl.Info().
		Str("provider", gateway.Provider()).
		Str("model", cfg.Models.Default).
		Msg("Completion gateway ready")

	appMetrics := metrics.NewMetrics()

	service, err := team.NewService(team.ServiceConfig{
		Gateway: gateway,
		Model:   cfg.Models.Default,
		Logger:  zl,
		Metrics: appMetrics,
	})
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	server, err := httpapi.NewServer(httpapi.Config{
		Host:    cfg.Server.Host,
		Port:    cfg.Server.Port,
		Service: service,
		Metrics: appMetrics,
		Logger:  zl,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// Watch the config file so log level changes apply without restart
	watchPath := cfgFile
	if watchPath == "" {
		watchPath, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}
	if _, statErr := os.Stat(watchPath); statErr == nil {
		watcher, err := config.NewWatcher(watchPath, func(next *config.Config) {
			if err := logger.SetLevel(next.Logging.Level); err != nil {
				zl.Warn().Err(err).Msg("Ignoring invalid log level from reloaded config")
			}
		})
		if err != nil {
			return fmt.Errorf("failed to create config watcher: %w", err)
		}
		if err := watcher.Start(); err != nil {
			return fmt.Errorf("failed to start config watcher: %w", err)
		}
		defer watcher.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		zl.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
