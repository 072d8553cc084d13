package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/stockscope/stockscope/internal/analysis"
	"github.com/stockscope/stockscope/internal/api"
	"github.com/stockscope/stockscope/internal/api/job"
	"github.com/stockscope/stockscope/internal/config"
	"github.com/stockscope/stockscope/internal/insight"
	"github.com/stockscope/stockscope/internal/llm/factory"
	"github.com/stockscope/stockscope/internal/logger"
	"github.com/stockscope/stockscope/internal/market"
	"github.com/stockscope/stockscope/internal/metrics"
	"github.com/stockscope/stockscope/internal/storage/archive"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analysis API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// loadConfig resolves the effective configuration, falling back to defaults
// when no config file was given on the command line.
func loadConfig(log *zap.Logger) (*config.Config, error) {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}
	log.Warn("no config file specified, using defaults")
	return config.Defaults(), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	source, err := market.New(cfg.Market)
	if err != nil {
		return fmt.Errorf("creating market source: %w", err)
	}

	store, err := archive.New(cfg.Archive)
	if err != nil {
		return fmt.Errorf("creating report archive: %w", err)
	}

	deps := api.Dependencies{
		Source:  analysis.New(source, logger.Named(log, "analysis")),
		Jobs:    job.NewStore(cfg.Server.MaxJobs, time.Duration(cfg.Server.JobTTLHours)*time.Hour),
		Archive: store,
	}

	if cfg.Insight.Enabled {
		provider, err := factory.New(cfg.LLM)
		if err != nil {
			return fmt.Errorf("creating LLM provider: %w", err)
		}
		deps.Analyst = insight.NewAnalyst(provider, nil, insight.Config{
			MaxTokens:   cfg.Insight.MaxTokens,
			Temperature: cfg.Insight.Temperature,
		}, logger.Named(log, "insight"))
		log.Info("analyst commentary enabled", zap.String("provider", cfg.LLM.Provider))
	}

	if cfg.Metrics.Enabled {
		deps.Metrics = metrics.NewRegistry()
	}

	log.Info("starting analysis API server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("market_source", source.Name()),
	)

	server, err := api.NewServer(api.Config{
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		MetricsPath: cfg.Metrics.Path,
	}, deps, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Error("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down analysis API server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
