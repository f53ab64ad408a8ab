package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/MrSnakeDoc/nitron/internal/domain"
)

var errClosed = errors.New("memory store closed")

// record is one stored row; seq orders rows that share a timestamp
type record struct {
	seq uint64
	url string
	at  time.Time
}

// Store keeps bookmarks and history in process memory.
// It backs the "memory" store mode and stands in for Redis in tests.
type Store struct {
	mu        sync.RWMutex
	bookmarks []record // insertion order
	history   []record // insertion order
	seq       uint64
	loc       *time.Location
	now       func() time.Time
	closed    bool
}

var _ domain.RecordStore = (*Store)(nil)

// New creates an empty memory store. A nil loc means time.Local and a nil
// now means time.Now.
func New(loc *time.Location, now func() time.Time) *Store {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Store{loc: loc, now: now}
}

func (s *Store) AddBookmark(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen("add bookmark"); err != nil {
		return err
	}
	s.bookmarks = s.insert(s.bookmarks, url)
	return nil
}

func (s *Store) GetBookmarks(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen("list bookmarks"); err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(s.bookmarks))
	for _, r := range newestFirst(s.bookmarks) {
		urls = append(urls, r.url)
	}
	return urls, nil
}

func (s *Store) DeleteBookmark(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen("delete bookmark"); err != nil {
		return err
	}
	s.bookmarks = deleteFirst(s.bookmarks, url)
	return nil
}

func (s *Store) AddHistory(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen("add history"); err != nil {
		return err
	}
	s.history = s.insert(s.history, url)
	return nil
}

func (s *Store) ListHistory(_ context.Context) ([]domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen("list history"); err != nil {
		return nil, err
	}
	entries := make([]domain.HistoryEntry, 0, len(s.history))
	for _, r := range newestFirst(s.history) {
		entries = append(entries, domain.HistoryEntry{URL: r.url, VisitedAt: r.at})
	}
	return entries, nil
}

func (s *Store) GetHistory(ctx context.Context) ([]string, error) {
	entries, err := s.ListHistory(ctx)
	if err != nil {
		return nil, err
	}
	return domain.HistoryURLs(entries), nil
}

func (s *Store) GetHistoryByDay(ctx context.Context) (domain.HistoryByDay, error) {
	entries, err := s.ListHistory(ctx)
	if err != nil {
		return nil, err
	}
	return domain.GroupByDay(entries, s.loc), nil
}

func (s *Store) DeleteHistory(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen("delete history"); err != nil {
		return err
	}
	s.history = deleteFirst(s.history, url)
	return nil
}

func (s *Store) PruneHistory(_ context.Context, before time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen("prune history"); err != nil {
		return 0, err
	}
	kept := s.history[:0]
	removed := 0
	for _, r := range s.history {
		if r.at.Before(before) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	s.history = kept
	return removed, nil
}

func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.checkOpen("ping")
}

// Close marks the store closed; later calls fail with ErrStoreUnavailable.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

func (s *Store) insert(rows []record, url string) []record {
	s.seq++
	return append(rows, record{seq: s.seq, url: url, at: s.now()})
}

func (s *Store) checkOpen(op string) error {
	if s.closed {
		return domain.Unavailable(op, errClosed)
	}
	return nil
}

// newestFirst orders rows by timestamp, newest first
func newestFirst(rows []record) []record {
	out := make([]record, len(rows))
	for i, r := range rows {
		out[len(rows)-1-i] = r
	}
	// Stable: rows sharing a timestamp stay in reverse insertion order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].at.After(out[j].at)
	})
	return out
}

// deleteFirst drops the oldest row with url
func deleteFirst(rows []record, url string) []record {
	for i, r := range rows {
		if r.url == url {
			return append(rows[:i:i], rows[i+1:]...)
		}
	}
	return rows
}
