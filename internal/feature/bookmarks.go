package feature

import (
	"context"
	"strings"

	"github.com/MrSnakeDoc/nitron/internal/domain"
	"github.com/MrSnakeDoc/nitron/internal/logger"
)

const BookmarksName = "Bookmark Manager"

// Bookmarks is the bookmark feature. Rejected writes are reported to the
// caller as *domain.InvalidURLError.
type Bookmarks struct {
	Toggle
	store domain.RecordStore
}

func NewBookmarks(store domain.RecordStore, log logger.Logger) *Bookmarks {
	b := &Bookmarks{store: store}
	b.init(BookmarksName, log)
	return b
}

// AddBookmark validates url and stores it verbatim.
func (b *Bookmarks) AddBookmark(ctx context.Context, url string) error {
	if !b.Enabled() {
		return &domain.InvalidURLError{URL: url, Reason: BookmarksName + " is disabled"}
	}
	if strings.TrimSpace(url) == "" {
		return &domain.InvalidURLError{URL: url, Reason: "URL cannot be empty"}
	}
	if !hasWebScheme(url) {
		return &domain.InvalidURLError{URL: url, Reason: "URL must start with http:// or https://"}
	}

	if err := b.store.AddBookmark(ctx, url); err != nil {
		return err
	}
	b.log.Info("bookmark added", logger.String("url", url))
	return nil
}

// GetBookmarks lists bookmarks newest first, or nothing while disabled.
func (b *Bookmarks) GetBookmarks(ctx context.Context) ([]string, error) {
	if !b.Enabled() {
		return []string{}, nil
	}
	return b.store.GetBookmarks(ctx)
}

// DeleteBookmark removes one bookmark with this URL. Missing URLs are not an error.
func (b *Bookmarks) DeleteBookmark(ctx context.Context, url string) error {
	if !b.Enabled() {
		b.log.Debug("delete ignored while disabled", logger.String("url", url))
		return nil
	}
	if err := b.store.DeleteBookmark(ctx, url); err != nil {
		return err
	}
	b.log.Info("bookmark deleted", logger.String("url", url))
	return nil
}

func (b *Bookmarks) GetBookmarkCount(ctx context.Context) (int, error) {
	urls, err := b.GetBookmarks(ctx)
	if err != nil {
		return 0, err
	}
	return len(urls), nil
}

func hasWebScheme(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}
