package domain

import (
	"context"
	"time"
)

// RecordStore is the persistence capability behind the bookmark and history
// features. Implementations own the backing connection; every method is a
// round-trip to the store and failures surface as *StoreError.
type RecordStore interface {
	AddBookmark(ctx context.Context, url string) error
	// GetBookmarks lists bookmark URLs newest first.
	GetBookmarks(ctx context.Context) ([]string, error)
	// DeleteBookmark removes one bookmark with exactly this URL, if any.
	DeleteBookmark(ctx context.Context, url string) error

	AddHistory(ctx context.Context, url string) error
	// GetHistory lists visited URLs newest first.
	GetHistory(ctx context.Context) ([]string, error)
	// ListHistory is GetHistory with timestamps.
	ListHistory(ctx context.Context) ([]HistoryEntry, error)
	GetHistoryByDay(ctx context.Context) (HistoryByDay, error)
	// DeleteHistory removes one history entry with exactly this URL, if any.
	DeleteHistory(ctx context.Context, url string) error
	// PruneHistory removes entries visited strictly before the cutoff and
	// reports how many were removed.
	PruneHistory(ctx context.Context, before time.Time) (int, error)

	Ping(ctx context.Context) error
	Close() error
}
