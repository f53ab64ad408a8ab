package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/nitron/internal/domain"
	"github.com/MrSnakeDoc/nitron/internal/logger"
	"github.com/MrSnakeDoc/nitron/internal/sources/homepage"
)

// BookmarkSink is the part of the bookmark feature the importer writes to.
type BookmarkSink interface {
	GetBookmarks(ctx context.Context) ([]string, error)
	AddBookmark(ctx context.Context, url string) error
}

// ImportResult summarizes one import run.
type ImportResult struct {
	Found   int `json:"found"`
	Added   int `json:"added"`
	Skipped int `json:"skipped"` // already bookmarked
	Invalid int `json:"invalid"` // rejected by the bookmark feature
}

// BookmarkImporter periodically imports Homepage bookmarks.yaml into the
// bookmark feature. Links already bookmarked are left alone; nothing is
// ever removed.
type BookmarkImporter struct {
	loader        *homepage.Loader
	sink          BookmarkSink
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewBookmarkImporter creates a new bookmark importer. manualTrigger may be
// nil when imports only run on the interval.
func NewBookmarkImporter(
	bookmarkFile string,
	sink BookmarkSink,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *BookmarkImporter {
	return &BookmarkImporter{
		loader:        homepage.NewLoader(bookmarkFile),
		sink:          sink,
		logger:        log.With(logger.String("job", "bookmark_import")),
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start imports once, then keeps importing on the interval and on manual
// triggers until Stop is called or ctx is done.
func (bi *BookmarkImporter) Start(ctx context.Context) error {
	// Import immediately on start
	if _, err := bi.Import(ctx); err != nil {
		return fmt.Errorf("initial bookmark import failed: %w", err)
	}

	ticker := time.NewTicker(bi.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				bi.run(ctx)
			case <-bi.manualTrigger:
				bi.logger.Info("manual bookmark import triggered")
				bi.run(ctx)
			case <-bi.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the importer
func (bi *BookmarkImporter) Stop() {
	close(bi.stopCh)
}

func (bi *BookmarkImporter) run(ctx context.Context) {
	if _, err := bi.Import(ctx); err != nil {
		bi.logger.Error("failed to import bookmarks", logger.Error(err))
	}
}

// Import loads the bookmarks file and adds every link not yet bookmarked.
// Links the bookmark feature rejects are counted and skipped; store failures
// abort the run.
func (bi *BookmarkImporter) Import(ctx context.Context) (ImportResult, error) {
	var result ImportResult

	config, err := bi.loader.Load()
	if err != nil {
		return result, err
	}
	links := homepage.MapLinks(config)
	result.Found = len(links)

	existing, err := bi.sink.GetBookmarks(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, url := range existing {
		have[url] = true
	}

	for _, link := range links {
		if have[link.Href] {
			result.Skipped++
			continue
		}

		err := bi.sink.AddBookmark(ctx, link.Href)
		switch {
		case err == nil:
			have[link.Href] = true
			result.Added++
		case errors.Is(err, domain.ErrInvalidURL):
			result.Invalid++
			bi.logger.Warn("skipping bookmark",
				logger.String("category", link.Category),
				logger.String("name", link.Name),
				logger.Error(err))
		default:
			return result, fmt.Errorf("failed to add bookmark %s: %w", link.Href, err)
		}
	}

	bi.logger.Info("bookmarks imported",
		logger.String("file", bi.loader.Path()),
		logger.Int("found", result.Found),
		logger.Int("added", result.Added),
		logger.Int("skipped", result.Skipped),
		logger.Int("invalid", result.Invalid))

	return result, nil
}
