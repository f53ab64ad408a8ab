package domain

import "time"

// Bookmark is a saved URL.
//
// Bookmarks are append-only records: they are created on save, removed by
// exact URL match, and never mutated in place. Two bookmarks may share a URL.
type Bookmark struct {
	// URL is the saved address, stored exactly as given.
	// Example: https://go.dev/doc/
	URL string `json:"url"`

	// AddedAt is stamped by the store at insert time.
	AddedAt time.Time `json:"added_at"`
}
