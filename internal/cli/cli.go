// Package cli implements nitronctl, a command-line client that works on the
// record store directly through the bookmark and history features.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	goflags "github.com/jessevdk/go-flags"

	"github.com/MrSnakeDoc/nitron/internal/app"
	"github.com/MrSnakeDoc/nitron/internal/config"
	"github.com/MrSnakeDoc/nitron/internal/domain"
	"github.com/MrSnakeDoc/nitron/internal/logger"
)

// Opener opens the record store for one command. backend is empty unless
// --store was given.
type Opener func(ctx context.Context, backend string) (domain.RecordStore, *config.Config, error)

// runtime is shared by every command of one invocation.
type runtime struct {
	globals *GlobalFlags
	version string
	out     io.Writer
	open    Opener
	log     logger.Logger
	now     func() time.Time
}

// Options customizes RunWithOptions. Zero values use stdout, the configured
// store and a silent logger.
type Options struct {
	Out  io.Writer
	Open Opener
	Log  logger.Logger
	Now  func() time.Time
}

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	BookmarkAdd    *BookmarkAddCommand
	BookmarkList   *BookmarkListCommand
	BookmarkDelete *BookmarkDeleteCommand
	BookmarkCount  *BookmarkCountCommand
	HistoryAdd     *HistoryAddCommand
	HistoryList    *HistoryListCommand
	HistoryDelete  *HistoryDeleteCommand
	HistoryClear   *HistoryClearCommand
	HistoryCount   *HistoryCountCommand
	HistoryRecent  *HistoryRecentCommand
	Summary        *SummaryCommand
	Import         *ImportCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(rt *runtime) (*goflags.Parser, *commands, error) {
	parser := goflags.NewParser(rt.globals, goflags.HelpFlag|goflags.PassDoubleDash)
	parser.Name = "nitronctl"
	parser.LongDescription = "Manage Nitron bookmarks and browsing history from the command line."

	cmds := &commands{
		BookmarkAdd:    &BookmarkAddCommand{rt: rt},
		BookmarkList:   &BookmarkListCommand{rt: rt},
		BookmarkDelete: &BookmarkDeleteCommand{rt: rt},
		BookmarkCount:  &BookmarkCountCommand{rt: rt},
		HistoryAdd:     &HistoryAddCommand{rt: rt},
		HistoryList:    &HistoryListCommand{rt: rt},
		HistoryDelete:  &HistoryDeleteCommand{rt: rt},
		HistoryClear:   &HistoryClearCommand{rt: rt},
		HistoryCount:   &HistoryCountCommand{rt: rt},
		HistoryRecent:  &HistoryRecentCommand{rt: rt},
		Summary:        &SummaryCommand{rt: rt},
		Import:         &ImportCommand{rt: rt},
	}

	bookmark, err := parser.AddCommand("bookmark", "Manage bookmarks", "Add, list, delete and count bookmarks.", &struct{}{})
	if err != nil {
		return nil, nil, err
	}
	history, err := parser.AddCommand("history", "Manage browsing history", "Record, list, delete and clear browsing history.", &struct{}{})
	if err != nil {
		return nil, nil, err
	}

	subs := []struct {
		parent *goflags.Command
		name   string
		short  string
		data   interface{}
	}{
		{bookmark, "add", "Bookmark a http(s) URL", cmds.BookmarkAdd},
		{bookmark, "list", "List bookmarks, newest first", cmds.BookmarkList},
		{bookmark, "delete", "Delete one bookmark with this URL", cmds.BookmarkDelete},
		{bookmark, "count", "Count bookmarks", cmds.BookmarkCount},
		{history, "add", "Record a visit", cmds.HistoryAdd},
		{history, "list", "List visits, newest first", cmds.HistoryList},
		{history, "delete", "Delete one visit with this URL", cmds.HistoryDelete},
		{history, "clear", "Delete all visits", cmds.HistoryClear},
		{history, "count", "Count visits", cmds.HistoryCount},
		{history, "recent", "Show the most recent visit", cmds.HistoryRecent},
	}
	for _, s := range subs {
		if _, err := s.parent.AddCommand(s.name, s.short, s.short+".", s.data); err != nil {
			return nil, nil, err
		}
	}

	if _, err := parser.AddCommand("summary", "Show today's browsing summary", "Show sites visited today, browsing time and top sites.", cmds.Summary); err != nil {
		return nil, nil, err
	}
	if _, err := parser.AddCommand("import", "Import Homepage bookmarks", "Import bookmarks from a Homepage bookmarks.yaml file.", cmds.Import); err != nil {
		return nil, nil, err
	}

	return parser, cmds, nil
}

// Run is the main entry point for nitronctl using os.Args.
func Run(version string) error {
	return RunWithOptions(version, os.Args[1:], Options{})
}

// RunWithOptions parses args and executes the matched subcommand.
func RunWithOptions(version string, args []string, opts Options) error {
	rt := &runtime{
		globals: &GlobalFlags{},
		version: version,
		out:     opts.Out,
		open:    opts.Open,
		log:     opts.Log,
		now:     opts.Now,
	}
	if rt.out == nil {
		rt.out = os.Stdout
	}
	if rt.open == nil {
		rt.open = openConfigured
	}
	if rt.log == nil {
		rt.log = logger.NewNop()
	}
	if rt.now == nil {
		rt.now = time.Now
	}

	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	for _, arg := range args {
		if arg == "--version" {
			_, err := fmt.Fprintf(rt.out, "nitronctl %s\n", version)
			return err
		}
		if arg == "--" {
			break
		}
	}

	parser, _, err := buildParser(rt)
	if err != nil {
		return err
	}

	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *goflags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == goflags.ErrHelp {
			_, _ = fmt.Fprintln(rt.out, flagsErr.Message)
			return nil
		}
		return err
	}
	return nil
}

// openConfigured opens the store described by the NITRON_* environment.
func openConfigured(ctx context.Context, backend string) (domain.RecordStore, *config.Config, error) {
	if backend != "" {
		if err := os.Setenv("NITRON_STORE", backend); err != nil {
			return nil, nil, err
		}
	}
	cfg := config.Load()
	// Commands are short-lived; do not wait long for an absent Redis.
	if cfg.RedisConnectTimeout > 5*time.Second {
		cfg.RedisConnectTimeout = 5 * time.Second
	}
	store, err := app.OpenStore(ctx, cfg, logger.NewNop())
	if err != nil {
		return nil, nil, err
	}
	return store, cfg, nil
}

// withStore opens the store, runs fn and closes the store.
func (rt *runtime) withStore(fn func(ctx context.Context, store domain.RecordStore, cfg *config.Config) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, cfg, err := rt.open(ctx, rt.globals.Store)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() { _ = store.Close() }()

	return fn(ctx, store, cfg)
}

// emit writes v as indented JSON when --json is set, otherwise calls human.
func (rt *runtime) emit(v interface{}, human func(w io.Writer) error) error {
	if rt.globals.JSON {
		enc := json.NewEncoder(rt.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return human(rt.out)
}

func printLines(w io.Writer, lines []string, empty string) error {
	if len(lines) == 0 {
		_, err := fmt.Fprintln(w, empty)
		return err
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
