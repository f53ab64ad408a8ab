package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Store   string `long:"store" description:"Record store backend (overrides NITRON_STORE)" choice:"redis" choice:"sqlite" choice:"memory"`
	Version bool   `long:"version" description:"Show version and exit"`
}

type urlArg struct {
	URL string `positional-arg-name:"url" required:"yes"`
}

// BookmarkAddCommand bookmarks a URL.
type BookmarkAddCommand struct {
	Args urlArg `positional-args:"yes"`
	rt   *runtime
}

// BookmarkListCommand lists bookmarks newest first.
type BookmarkListCommand struct{ rt *runtime }

// BookmarkDeleteCommand removes one bookmark with the URL.
type BookmarkDeleteCommand struct {
	Args urlArg `positional-args:"yes"`
	rt   *runtime
}

// BookmarkCountCommand prints the number of bookmarks.
type BookmarkCountCommand struct{ rt *runtime }

// HistoryAddCommand records a visit.
type HistoryAddCommand struct {
	Args urlArg `positional-args:"yes"`
	rt   *runtime
}

// HistoryListCommand lists visits newest first.
type HistoryListCommand struct {
	ByDay bool `long:"by-day" description:"Group visits by calendar day"`
	rt    *runtime
}

// HistoryDeleteCommand removes one visit with the URL.
type HistoryDeleteCommand struct {
	Args urlArg `positional-args:"yes"`
	rt   *runtime
}

// HistoryClearCommand removes every visit.
type HistoryClearCommand struct{ rt *runtime }

// HistoryCountCommand prints the number of visits.
type HistoryCountCommand struct{ rt *runtime }

// HistoryRecentCommand prints the most recent visit.
type HistoryRecentCommand struct{ rt *runtime }

// SummaryCommand prints today's browsing summary.
type SummaryCommand struct{ rt *runtime }

// ImportCommand imports a Homepage bookmarks.yaml.
type ImportCommand struct {
	File string `long:"file" description:"Path to Homepage bookmarks.yaml (defaults to NITRON_BOOKMARK_IMPORT_FILE)"`
	rt   *runtime
}
