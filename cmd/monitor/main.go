package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/infrawatch/internal/alert"
	"github.com/hamed0406/infrawatch/internal/bot"
	"github.com/hamed0406/infrawatch/internal/config"
	"github.com/hamed0406/infrawatch/internal/httpapi"
	"github.com/hamed0406/infrawatch/internal/logging"
	"github.com/hamed0406/infrawatch/internal/metrics"
	"github.com/hamed0406/infrawatch/internal/notify"
	"github.com/hamed0406/infrawatch/internal/probe"
	"github.com/hamed0406/infrawatch/internal/scheduler"
	"github.com/hamed0406/infrawatch/internal/status"
)

func main() {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	targets, err := config.LoadTargets(cfg.TargetsFile)
	if err != nil {
		logger.Fatal("targets_load_error", zap.Error(err))
	}
	if err := metrics.Register(); err != nil {
		logger.Fatal("metrics_register_error", zap.Error(err))
	}

	store := status.NewStore(targets)
	telegram := notify.NewTelegram(cfg.BotToken, cfg.ChatID)
	var notifier notify.Notifier = telegram
	if slack := notify.NewSlack(cfg.SlackWebhook); slack != nil {
		notifier = notify.Multi{telegram, slack}
	}

	runner := scheduler.NewRunner(
		logger, store, probe.NewMux(), notifier,
		cfg.CheckInterval, cfg.ProbeTimeout, cfg.Concurrency,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("monitor_started",
		zap.Int("targets", len(targets)),
		zap.Duration("interval", cfg.CheckInterval),
		zap.Bool("run_once", cfg.RunOnce),
	)

	if cfg.RunOnce {
		runner.RunOnce(ctx)
		if _, down := store.Counts(); down > 0 {
			if err := notifier.Send(ctx, alert.StatusReport(store.Snapshot(), time.Now())); err != nil {
				logger.Warn("report_send_failed", zap.Error(err))
			}
		}
		logger.Info("single_check_done")
		return
	}

	if err := telegram.Send(ctx, alert.Startup(len(targets), cfg.CheckInterval)); err != nil {
		logger.Warn("startup_announce_failed", zap.Error(err))
	}

	listener := bot.NewListener(logger, telegram, store, cfg.RetryInterval)
	go listener.Run(ctx)

	api := httpapi.NewServer(logger, store)
	go func() {
		logger.Info("api_listen", zap.String("addr", cfg.Addr))
		if err := http.ListenAndServe(cfg.Addr, api.Router()); err != nil {
			logger.Error("api_error", zap.Error(err))
		}
	}()

	runner.Run(ctx)
}
