package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/api"
	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/beasiswa"
	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/clock/system"
	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/notify"
	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/scheduler"
	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scheduler control service",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.NewProvider(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("init storage provider: %w", err)
	}
	defer st.Close()

	var notifier beasiswa.Notifier = notify.NewTelegram(notify.Config{
		BotToken: cfg.Telegram.BotToken,
		ChatID:   cfg.Telegram.ChatID,
	}, logger)

	clk := system.Clock{}
	runner := scheduler.NewSubprocessRunner(cfgFile, logger)
	controller := scheduler.New(st, notifier, runner, clk, scheduler.Config{
		FireHour:     cfg.Schedule.FireHour,
		MaxAttempts:  cfg.Schedule.MaxAttempts,
		TickInterval: time.Duration(cfg.Schedule.TickSeconds) * time.Second,
	}, logger)

	go controller.Run(ctx)

	server := api.NewServer(controller, st, clk, logger)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("control service listening", zap.Int("port", cfg.Server.Port))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	logger.Info("control service stopped")
	return nil
}
