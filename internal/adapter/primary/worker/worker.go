package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ruudy-sib/demobridge/internal/port/primary"
)

// Worker refreshes the manager mapping at a fixed interval so webhook
// deliveries rarely pay for a rebuild. It stops when the context is cancelled.
type Worker struct {
	refresher primary.ManagerRefresher
	interval  time.Duration
	logger    *zap.Logger
}

// NewWorker creates a Worker that refreshes at the given interval.
func NewWorker(
	refresher primary.ManagerRefresher,
	interval time.Duration,
	logger *zap.Logger,
) *Worker {
	return &Worker{
		refresher: refresher,
		interval:  interval,
		logger:    logger.Named("manager-refresh-worker"),
	}
}

// Run refreshes once immediately, then on every tick. It blocks until the
// context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("worker started",
		zap.Duration("interval", w.interval),
	)

	w.refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker shutting down")
			return ctx.Err()
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *Worker) refresh(ctx context.Context) {
	if err := w.refresher.Refresh(ctx); err != nil {
		// Keep running; the next tick or a lookup miss retries.
		w.logger.Error("refreshing manager mapping failed", zap.Error(err))
	}
}
