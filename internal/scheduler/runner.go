package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/infrawatch/internal/alert"
	"github.com/hamed0406/infrawatch/internal/domain"
	"github.com/hamed0406/infrawatch/internal/metrics"
	"github.com/hamed0406/infrawatch/internal/notify"
	"github.com/hamed0406/infrawatch/internal/probe"
	"github.com/hamed0406/infrawatch/internal/status"
)

// Runner drives the poll loop: every interval it fans out one probe per
// target, feeds each result through the transition detector and pushes an
// alert for every flip. A cycle joins all probes before the next tick; an
// overrunning cycle simply delays the next one, there is no catch-up burst.
type Runner struct {
	Logger      *zap.Logger
	Store       *status.Store
	Checker     probe.Checker
	Notifier    notify.Notifier
	Interval    time.Duration
	Timeout     time.Duration
	Concurrency int
}

func NewRunner(
	logger *zap.Logger,
	store *status.Store,
	checker probe.Checker,
	notifier notify.Notifier,
	interval time.Duration,
	timeout time.Duration,
	concurrency int,
) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Runner{
		Logger:      logger,
		Store:       store,
		Checker:     checker,
		Notifier:    notifier,
		Interval:    interval,
		Timeout:     timeout,
		Concurrency: concurrency,
	}
}

// Run does an immediate pass, then one pass per tick until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	t := time.NewTicker(r.Interval)
	defer t.Stop()

	r.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			r.Logger.Info("runner_stopped")
			return
		case <-t.C:
			r.RunOnce(ctx)
		}
	}
}

// RunOnce executes a single poll cycle over every registered target.
func (r *Runner) RunOnce(ctx context.Context) {
	targets := r.Store.Targets()
	if len(targets) == 0 {
		return
	}

	start := time.Now()
	sem := make(chan struct{}, r.Concurrency)
	var wg sync.WaitGroup

	for _, tgt := range targets {
		t := tgt
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() { <-sem }()
			defer wg.Done()
			r.checkOne(ctx, t)
		}()
	}

	wg.Wait()
	r.Logger.Info("cycle_done",
		zap.Int("targets", len(targets)),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func (r *Runner) checkOne(ctx context.Context, t domain.Target) {
	cctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	out := r.Checker.Check(cctx, t)
	metrics.ObserveProbe(t, out)

	tr := r.Store.Apply(t, out)
	if tr == nil {
		r.Logger.Debug("target_checked",
			zap.String("target", t.ID()),
			zap.Bool("up", out.Up),
			zap.Duration("latency", out.Latency),
			zap.String("error", out.Err),
		)
		return
	}

	metrics.ObserveTransition(*tr)
	if tr.To == domain.StatusDown {
		r.Logger.Warn("target_down",
			zap.String("target", t.ID()),
			zap.String("error", out.Err),
		)
	} else {
		r.Logger.Info("target_recovered",
			zap.String("target", t.ID()),
			zap.Duration("downtime", tr.Downtime),
			zap.Duration("latency", out.Latency),
		)
	}

	// Delivery is best-effort: the transition is already recorded, so a
	// failed send is never retried and never rolls the record back.
	if err := r.Notifier.Send(ctx, alert.Render(*tr)); err != nil {
		metrics.ObserveNotifyFailure()
		r.Logger.Warn("notify_failed",
			zap.String("target", t.ID()),
			zap.Error(err),
		)
	}
}
