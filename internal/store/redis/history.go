package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/nitron/internal/domain"
)

// AddHistory records a visit stamped with the current time
func (s *Store) AddHistory(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := domain.HistoryEntry{URL: url, VisitedAt: s.now()}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}

	return domain.Unavailable("add history", s.insert(ctx, History, url, entry.VisitedAt, data))
}

// ListHistory returns all history entries, most recent first
func (s *Store) ListHistory(ctx context.Context) ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.listHistory(ctx)
}

func (s *Store) listHistory(ctx context.Context) ([]domain.HistoryEntry, error) {
	raw, err := s.list(ctx, History)
	if err != nil {
		return nil, domain.Unavailable("list history", err)
	}
	return decodeHistory(raw)
}

// GetHistory returns visited URLs, most recent first
func (s *Store) GetHistory(ctx context.Context) ([]string, error) {
	entries, err := s.ListHistory(ctx)
	if err != nil {
		return nil, err
	}
	return domain.HistoryURLs(entries), nil
}

// GetHistoryByDay groups history by calendar day in the store's zone
func (s *Store) GetHistoryByDay(ctx context.Context) (domain.HistoryByDay, error) {
	entries, err := s.ListHistory(ctx)
	if err != nil {
		return nil, err
	}
	return domain.GroupByDay(entries, s.loc), nil
}

// DeleteHistory removes one history entry with this exact URL
func (s *Store) DeleteHistory(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.Unavailable("delete history", s.deleteFirst(ctx, History, url))
}

// PruneHistory removes every entry visited before the cutoff
func (s *Store) PruneHistory(ctx context.Context, before time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.idsBefore(ctx, History, before)
	if err != nil {
		return 0, domain.Unavailable("prune history", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, RecordKey(History, id))
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return 0, domain.Unavailable("prune history", err)
	}

	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			pipe.Del(ctx, RecordKey(History, id))
			pipe.ZRem(ctx, TimelineKey(History), id)

			raw, ok := vals[i].(string)
			if !ok {
				continue
			}
			var entry domain.HistoryEntry
			if err := json.Unmarshal([]byte(raw), &entry); err != nil {
				continue
			}
			pipe.ZRem(ctx, URLIndexKey(History, entry.URL), id)
		}
		return nil
	})
	if err != nil {
		return 0, domain.Unavailable("prune history", err)
	}

	return len(ids), nil
}

func decodeHistory(raw []string) ([]domain.HistoryEntry, error) {
	entries := make([]domain.HistoryEntry, 0, len(raw))
	for _, r := range raw {
		var entry domain.HistoryEntry
		if err := json.Unmarshal([]byte(r), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
