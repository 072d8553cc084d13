package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/stockscope/stockscope/internal/logger"
	"github.com/stockscope/stockscope/internal/web"
	"go.uber.org/zap"
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the browser viewer",
	Long: `Start the viewer frontend, a small web server that looks up stocks
through the analysis API and renders the results as HTML pages.`,
	RunE: runWeb,
}

func init() {
	rootCmd.AddCommand(webCmd)
}

func runWeb(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	log.Info("starting viewer",
		zap.String("host", cfg.Web.Host),
		zap.Int("port", cfg.Web.Port),
		zap.String("api", cfg.Web.APIBaseURL),
	)

	server, err := web.NewServer(web.Config{
		Host:          cfg.Web.Host,
		Port:          cfg.Web.Port,
		APIBaseURL:    cfg.Web.APIBaseURL,
		TemplatesDir:  cfg.Web.TemplatesDir,
		LookupTimeout: cfg.Web.LookupTimeout,
	}, log)
	if err != nil {
		return fmt.Errorf("creating viewer: %w", err)
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Error("viewer error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down viewer")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
