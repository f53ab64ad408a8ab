// Package sqlite provides an embedded record store for bookmarks and history.
//
// The database holds two independent tables, bookmarks and history, each with
// an index on url for lookups and deletes. Tables are created on Open; there
// is no versioned migration.
//
// # Usage
//
//	store, err := sqlite.Open("nitron.db", sqlite.Options{})
//	urls, err := store.GetBookmarks(ctx)
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/MrSnakeDoc/nitron/internal/domain"
)

// bookmarkRow maps a bookmark to the bookmarks table.
type bookmarkRow struct {
	ID      uint      `gorm:"primaryKey"`
	URL     string    `gorm:"not null;index:idx_bookmarks_url"`
	AddedAt time.Time `gorm:"not null;index:idx_bookmarks_added_at"`
}

func (bookmarkRow) TableName() string { return "bookmarks" }

// historyRow maps a visit to the history table.
type historyRow struct {
	ID        uint      `gorm:"primaryKey"`
	URL       string    `gorm:"not null;index:idx_history_url"`
	VisitedAt time.Time `gorm:"not null;index:idx_history_visited_at"`
}

func (historyRow) TableName() string { return "history" }

// Options tunes a Store. Zero values pick sensible defaults.
type Options struct {
	// Location is the zone used for day labels (default time.Local).
	Location *time.Location
	// Now stamps new records (default time.Now).
	Now func() time.Time
}

// Store implements domain.RecordStore on SQLite through gorm.
type Store struct {
	mu  sync.Mutex
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

var _ domain.RecordStore = (*Store)(nil)

// Open opens (or creates) the database at path and ensures both tables exist.
func Open(path string, opts Options) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, domain.Unavailable("open sqlite database", err)
	}

	if err := db.AutoMigrate(&bookmarkRow{}, &historyRow{}); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return New(db, opts), nil
}

// New wraps an already-open gorm handle. Tables must exist.
func New(db *gorm.DB, opts Options) *Store {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{db: db, loc: opts.Location, now: opts.Now}
}

// stamp returns the store clock in UTC so stored timestamps compare in order.
func (s *Store) stamp() time.Time {
	return s.now().UTC()
}

// AddBookmark inserts a bookmark stamped with the current time.
func (s *Store) AddBookmark(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := bookmarkRow{URL: url, AddedAt: s.stamp()}
	return domain.Unavailable("add bookmark", s.db.WithContext(ctx).Create(&row).Error)
}

// GetBookmarks returns bookmark URLs, most recently added first.
func (s *Store) GetBookmarks(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows []bookmarkRow
	err := s.db.WithContext(ctx).
		Order("added_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, domain.Unavailable("list bookmarks", err)
	}

	urls := make([]string, 0, len(rows))
	for _, r := range rows {
		urls = append(urls, r.URL)
	}
	return urls, nil
}

// DeleteBookmark removes the oldest bookmark with this exact URL.
func (s *Store) DeleteBookmark(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var row bookmarkRow
	err := s.db.WithContext(ctx).Where("url = ?", url).Order("id ASC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return domain.Unavailable("delete bookmark", err)
	}
	return domain.Unavailable("delete bookmark", s.db.WithContext(ctx).Delete(&row).Error)
}

// AddHistory records a visit stamped with the current time.
func (s *Store) AddHistory(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := historyRow{URL: url, VisitedAt: s.stamp()}
	return domain.Unavailable("add history", s.db.WithContext(ctx).Create(&row).Error)
}

// ListHistory returns all visits, most recent first.
func (s *Store) ListHistory(ctx context.Context) ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows []historyRow
	err := s.db.WithContext(ctx).
		Order("visited_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, domain.Unavailable("list history", err)
	}

	entries := make([]domain.HistoryEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, domain.HistoryEntry{URL: r.URL, VisitedAt: r.VisitedAt})
	}
	return entries, nil
}

// GetHistory returns visited URLs, most recent first.
func (s *Store) GetHistory(ctx context.Context) ([]string, error) {
	entries, err := s.ListHistory(ctx)
	if err != nil {
		return nil, err
	}
	return domain.HistoryURLs(entries), nil
}

// GetHistoryByDay groups visits by calendar day in the store's zone.
func (s *Store) GetHistoryByDay(ctx context.Context) (domain.HistoryByDay, error) {
	entries, err := s.ListHistory(ctx)
	if err != nil {
		return nil, err
	}
	return domain.GroupByDay(entries, s.loc), nil
}

// DeleteHistory removes the oldest visit with this exact URL.
func (s *Store) DeleteHistory(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var row historyRow
	err := s.db.WithContext(ctx).Where("url = ?", url).Order("id ASC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return domain.Unavailable("delete history", err)
	}
	return domain.Unavailable("delete history", s.db.WithContext(ctx).Delete(&row).Error)
}

// PruneHistory removes visits older than before.
func (s *Store) PruneHistory(ctx context.Context, before time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := s.db.WithContext(ctx).Where("visited_at < ?", before.UTC()).Delete(&historyRow{})
	if result.Error != nil {
		return 0, domain.Unavailable("prune history", result.Error)
	}
	return int(result.RowsAffected), nil
}

// Ping checks the underlying connection.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlDB, err := s.db.DB()
	if err != nil {
		return domain.Unavailable("ping sqlite", err)
	}
	return domain.Unavailable("ping sqlite", sqlDB.PingContext(ctx))
}

// Close releases the database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
