package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MrSnakeDoc/nitron/internal/domain"
)

// AddBookmark stores a new bookmark stamped with the current time
func (s *Store) AddBookmark(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookmark := domain.Bookmark{URL: url, AddedAt: s.now()}
	data, err := json.Marshal(bookmark)
	if err != nil {
		return fmt.Errorf("failed to marshal bookmark: %w", err)
	}

	return domain.Unavailable("add bookmark", s.insert(ctx, Bookmarks, url, bookmark.AddedAt, data))
}

// GetBookmarks returns bookmark URLs, most recently added first
func (s *Store) GetBookmarks(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.list(ctx, Bookmarks)
	if err != nil {
		return nil, domain.Unavailable("list bookmarks", err)
	}

	urls := make([]string, 0, len(raw))
	for _, r := range raw {
		var bookmark domain.Bookmark
		if err := json.Unmarshal([]byte(r), &bookmark); err != nil {
			return nil, fmt.Errorf("failed to unmarshal bookmark: %w", err)
		}
		urls = append(urls, bookmark.URL)
	}
	return urls, nil
}

// DeleteBookmark removes one bookmark with this exact URL
func (s *Store) DeleteBookmark(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.Unavailable("delete bookmark", s.deleteFirst(ctx, Bookmarks, url))
}
