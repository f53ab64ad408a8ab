package redis

import "fmt"

// Collection names a record kind. Each collection owns its own keyspace.
type Collection string

const (
	Bookmarks Collection = "bookmarks"
	History   Collection = "history"
)

const (
	// KeyPrefix namespaces every key written by the store
	KeyPrefix = "nitron:"
)

// RecordKey returns the key holding one JSON-encoded record
func RecordKey(c Collection, id string) string {
	return KeyPrefix + string(c) + ":record:" + id
}

// TimelineKey returns the sorted set of record IDs scored by timestamp (ms)
func TimelineKey(c Collection) string {
	return KeyPrefix + string(c) + ":timeline"
}

// URLIndexKey returns the sorted set of record IDs sharing a URL, scored by
// insertion sequence. It speeds up delete-by-URL and enforces nothing.
func URLIndexKey(c Collection, url string) string {
	return KeyPrefix + string(c) + ":url:" + url
}

// SeqKey returns the counter used to mint record IDs
func SeqKey(c Collection) string {
	return KeyPrefix + string(c) + ":seq"
}

// formatID zero-pads seq so lexicographic order of IDs matches insertion
// order. Redis orders equal timeline scores by member.
func formatID(seq int64) string {
	return fmt.Sprintf("%020d", seq)
}
