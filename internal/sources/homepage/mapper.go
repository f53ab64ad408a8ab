package homepage

import (
	"sort"
	"strings"
)

// Link is one bookmark found in bookmarks.yaml.
type Link struct {
	Category string
	Name     string // abbr when set, otherwise the bookmark name
	Href     string
}

// MapLinks flattens config into links. Categories keep file order; bookmarks
// inside a category are sorted by name since YAML mappings are unordered.
// Entries without href and repeated hrefs are dropped.
func MapLinks(config BookmarksConfig) []Link {
	links := make([]Link, 0)
	seen := make(map[string]bool)

	for _, category := range config {
		for _, categoryName := range sortedKeys(category) {
			for _, bookmarkMap := range category[categoryName] {
				for _, bookmarkName := range sortedKeys(bookmarkMap) {
					entryList := bookmarkMap[bookmarkName]
					// Each bookmark has a list with a single entry
					if len(entryList) == 0 {
						continue
					}
					entry := entryList[0]

					href := strings.TrimSpace(entry.Href)
					if href == "" || seen[href] {
						continue
					}
					seen[href] = true

					name := entry.Abbr
					if name == "" {
						name = bookmarkName
					}

					links = append(links, Link{Category: categoryName, Name: name, Href: href})
				}
			}
		}
	}

	return links
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
