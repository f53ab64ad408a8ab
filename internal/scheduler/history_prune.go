package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/nitron/internal/logger"
)

// HistoryTrimmer is the part of the history feature the pruner drives.
type HistoryTrimmer interface {
	PruneBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// HistoryPruner periodically drops history older than the retention window.
type HistoryPruner struct {
	history   HistoryTrimmer
	logger    logger.Logger
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
	stopCh    chan struct{}
}

// NewHistoryPruner creates a new pruner. A retention <= 0 keeps history forever.
func NewHistoryPruner(
	history HistoryTrimmer,
	log logger.Logger,
	interval time.Duration,
	retention time.Duration,
) *HistoryPruner {
	return &HistoryPruner{
		history:   history,
		logger:    log.With(logger.String("job", "history_prune")),
		interval:  interval,
		retention: retention,
		now:       time.Now,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the periodic pruning process
func (hp *HistoryPruner) Start(ctx context.Context) error {
	if hp.retention <= 0 {
		hp.logger.Info("history retention disabled, pruner not started")
		return nil
	}

	// Run immediately on start
	if _, err := hp.Prune(ctx); err != nil {
		hp.logger.Warn("initial history prune failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(hp.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := hp.Prune(ctx); err != nil {
					hp.logger.Error("history prune failed",
						logger.Error(err))
				}
			case <-hp.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the pruner
func (hp *HistoryPruner) Stop() {
	close(hp.stopCh)
}

// Prune removes visits older than now minus the retention window.
func (hp *HistoryPruner) Prune(ctx context.Context) (int, error) {
	if hp.retention <= 0 {
		return 0, nil
	}

	cutoff := hp.now().Add(-hp.retention)
	removed, err := hp.history.PruneBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		hp.logger.Info("history pruned",
			logger.Int("removed", removed),
			logger.Time("cutoff", cutoff))
	} else {
		hp.logger.Debug("no history to prune")
	}
	return removed, nil
}
