package feature

import (
	"context"
	"strings"
	"time"

	"github.com/MrSnakeDoc/nitron/internal/domain"
	"github.com/MrSnakeDoc/nitron/internal/logger"
)

const HistoryName = "History Manager"

// History is the browsing history feature. Unlike bookmarks, rejected writes
// are dropped without an error.
type History struct {
	Toggle
	store domain.RecordStore
}

func NewHistory(store domain.RecordStore, log logger.Logger) *History {
	h := &History{store: store}
	h.init(HistoryName, log)
	return h
}

// AddToHistory records a visit. Disabled state and blank URLs are no-ops.
func (h *History) AddToHistory(ctx context.Context, url string) error {
	if !h.Enabled() {
		h.log.Debug("history write skipped while disabled")
		return nil
	}
	if strings.TrimSpace(url) == "" {
		h.log.Debug("history write skipped for empty url")
		return nil
	}

	if err := h.store.AddHistory(ctx, url); err != nil {
		return err
	}
	h.log.Debug("added to history", logger.String("url", url))
	return nil
}

func (h *History) GetHistory(ctx context.Context) ([]string, error) {
	if !h.Enabled() {
		return []string{}, nil
	}
	return h.store.GetHistory(ctx)
}

// ListHistory is GetHistory with visit times.
func (h *History) ListHistory(ctx context.Context) ([]domain.HistoryEntry, error) {
	if !h.Enabled() {
		return []domain.HistoryEntry{}, nil
	}
	return h.store.ListHistory(ctx)
}

func (h *History) GetHistoryByDay(ctx context.Context) (domain.HistoryByDay, error) {
	if !h.Enabled() {
		return domain.HistoryByDay{}, nil
	}
	return h.store.GetHistoryByDay(ctx)
}

func (h *History) DeleteHistoryEntry(ctx context.Context, url string) error {
	if !h.Enabled() {
		h.log.Debug("delete ignored while disabled", logger.String("url", url))
		return nil
	}
	if err := h.store.DeleteHistory(ctx, url); err != nil {
		return err
	}
	h.log.Info("history entry deleted", logger.String("url", url))
	return nil
}

// ClearAllHistory lists the current history and deletes it entry by entry.
// Visits recorded concurrently may survive.
func (h *History) ClearAllHistory(ctx context.Context) error {
	if !h.Enabled() {
		h.log.Debug("clear ignored while disabled")
		return nil
	}

	urls, err := h.store.GetHistory(ctx)
	if err != nil {
		return err
	}
	for _, url := range urls {
		if err := h.store.DeleteHistory(ctx, url); err != nil {
			return err
		}
	}
	h.log.Info("history cleared", logger.Int("removed", len(urls)))
	return nil
}

func (h *History) GetHistoryCount(ctx context.Context) (int, error) {
	urls, err := h.GetHistory(ctx)
	if err != nil {
		return 0, err
	}
	return len(urls), nil
}

// GetMostRecentURL returns the newest visit. ok is false when there is none.
func (h *History) GetMostRecentURL(ctx context.Context) (url string, ok bool, err error) {
	urls, err := h.GetHistory(ctx)
	if err != nil || len(urls) == 0 {
		return "", false, err
	}
	return urls[0], true, nil
}

// PruneBefore drops visits older than cutoff. It is a no-op while disabled.
func (h *History) PruneBefore(ctx context.Context, cutoff time.Time) (int, error) {
	if !h.Enabled() {
		return 0, nil
	}
	n, err := h.store.PruneHistory(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		h.log.Info("history pruned", logger.Int("removed", n), logger.Time("before", cutoff))
	}
	return n, nil
}
