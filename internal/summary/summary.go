// Package summary builds the per-day browsing report: how many distinct
// sites were visited, how long the session has run and which sites were
// visited most.
package summary

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/MrSnakeDoc/nitron/internal/domain"
)

// TopN is how many sites the report ranks.
const TopN = 3

// DaySource supplies history grouped by day.
type DaySource interface {
	GetHistoryByDay(ctx context.Context) (domain.HistoryByDay, error)
}

// SiteVisits is a site and its visit count for the day.
type SiteVisits struct {
	Site   string `json:"site"`
	Visits int    `json:"visits"`
}

// Report is the summary of one day.
type Report struct {
	Date         string        `json:"date"`
	SitesVisited int           `json:"sites_visited"`
	BrowsingTime time.Duration `json:"browsing_time_ns"`
	TopSites     []SiteVisits  `json:"top_sites"`
}

// Build summarizes the day containing now, in loc. Browsing time is measured
// from sessionStart.
func Build(ctx context.Context, src DaySource, sessionStart, now time.Time, loc *time.Location) (Report, error) {
	byDay, err := src.GetHistoryByDay(ctx)
	if err != nil {
		return Report{}, err
	}

	label := domain.DayLabel(now, loc)
	urls, _ := byDay.Get(label)

	visits := make(map[string]int)
	for _, u := range urls {
		visits[Site(u)]++
	}

	elapsed := now.Sub(sessionStart)
	if elapsed < 0 {
		elapsed = 0
	}

	return Report{
		Date:         label,
		SitesVisited: len(visits),
		BrowsingTime: elapsed,
		TopSites:     topSites(visits, TopN),
	}, nil
}

// Site returns the host of rawURL, or the text between the scheme and the
// first slash when it does not parse as an absolute URL.
func Site(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		return u.Host
	}
	s := strings.TrimPrefix(strings.TrimPrefix(rawURL, "http://"), "https://")
	if i := strings.IndexByte(s, '/'); i > 0 {
		s = s[:i]
	}
	return s
}

// topSites ranks by visits, breaking ties by site name.
func topSites(visits map[string]int, n int) []SiteVisits {
	ranked := make([]SiteVisits, 0, len(visits))
	for site, count := range visits {
		ranked = append(ranked, SiteVisits{Site: site, Visits: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Visits != ranked[j].Visits {
			return ranked[i].Visits > ranked[j].Visits
		}
		return ranked[i].Site < ranked[j].Site
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// String renders the plain-text report.
func (r Report) String() string {
	var b strings.Builder
	b.WriteString("=== Day Summary ===\n")
	fmt.Fprintf(&b, "Date: %s\n", r.Date)
	fmt.Fprintf(&b, "Sites Visited: %d\n", r.SitesVisited)

	hours := int(r.BrowsingTime / time.Hour)
	minutes := int((r.BrowsingTime % time.Hour) / time.Minute)
	fmt.Fprintf(&b, "Browsing Time: %dh %dm\n", hours, minutes)

	b.WriteString("Top Sites:\n")
	if len(r.TopSites) == 0 {
		b.WriteString("No browsing history yet\n")
	}
	for i, s := range r.TopSites {
		fmt.Fprintf(&b, "%d. %s (%d visits)\n", i+1, s.Site, s.Visits)
	}
	return b.String()
}
