package domain

import "time"

// DayLabelLayout renders a calendar day as "Monday, January 2, 2006".
const DayLabelLayout = "Monday, January 2, 2006"

// HistoryEntry is a single navigation event.
//
// Every visit produces a new entry, so the same URL appears once per visit.
type HistoryEntry struct {
	// URL is the visited address.
	URL string `json:"url"`

	// VisitedAt is stamped by the store at insert time.
	VisitedAt time.Time `json:"visited_at"`
}

// DayBucket holds the URLs visited on one calendar day, most recent first.
type DayBucket struct {
	Label string   `json:"day"`
	URLs  []string `json:"urls"`
}

// HistoryByDay is an ordered day-label -> URLs mapping. Buckets appear in the
// order their label was first seen while walking history newest to oldest.
type HistoryByDay []DayBucket

// Get returns the URLs recorded under label.
func (h HistoryByDay) Get(label string) ([]string, bool) {
	for _, b := range h {
		if b.Label == label {
			return b.URLs, true
		}
	}
	return nil, false
}

// Labels returns the day labels in mapping order.
func (h HistoryByDay) Labels() []string {
	labels := make([]string, 0, len(h))
	for _, b := range h {
		labels = append(labels, b.Label)
	}
	return labels
}

// DayLabel formats t as a day label in loc. A nil loc means time.Local.
func DayLabel(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DayLabelLayout)
}

// GroupByDay buckets entries by calendar day in a single pass. entries must
// already be sorted newest first; entries with an empty URL or a zero
// timestamp are skipped.
func GroupByDay(entries []HistoryEntry, loc *time.Location) HistoryByDay {
	out := HistoryByDay{}
	index := make(map[string]int)

	for _, e := range entries {
		if e.URL == "" || e.VisitedAt.IsZero() {
			continue
		}
		label := DayLabel(e.VisitedAt, loc)
		i, ok := index[label]
		if !ok {
			i = len(out)
			index[label] = i
			out = append(out, DayBucket{Label: label})
		}
		out[i].URLs = append(out[i].URLs, e.URL)
	}

	return out
}

// HistoryURLs projects entries onto their URLs, preserving order.
func HistoryURLs(entries []HistoryEntry) []string {
	urls := make([]string, 0, len(entries))
	for _, e := range entries {
		urls = append(urls, e.URL)
	}
	return urls
}
