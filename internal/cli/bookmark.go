package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/MrSnakeDoc/nitron/internal/config"
	"github.com/MrSnakeDoc/nitron/internal/domain"
	"github.com/MrSnakeDoc/nitron/internal/feature"
)

func (rt *runtime) withBookmarks(fn func(ctx context.Context, b *feature.Bookmarks) error) error {
	return rt.withStore(func(ctx context.Context, store domain.RecordStore, _ *config.Config) error {
		return fn(ctx, feature.NewBookmarks(store, rt.log))
	})
}

// Execute implements the go-flags Commander interface for BookmarkAddCommand.
func (c *BookmarkAddCommand) Execute(args []string) error {
	return c.rt.withBookmarks(func(ctx context.Context, b *feature.Bookmarks) error {
		if err := b.AddBookmark(ctx, c.Args.URL); err != nil {
			return err
		}
		return c.rt.emit(map[string]string{"added": c.Args.URL}, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "Bookmarked %s\n", c.Args.URL)
			return err
		})
	})
}

// Execute implements the go-flags Commander interface for BookmarkListCommand.
func (c *BookmarkListCommand) Execute(args []string) error {
	return c.rt.withBookmarks(func(ctx context.Context, b *feature.Bookmarks) error {
		urls, err := b.GetBookmarks(ctx)
		if err != nil {
			return err
		}
		return c.rt.emit(urls, func(w io.Writer) error {
			return printLines(w, urls, "No bookmarks")
		})
	})
}

// Execute implements the go-flags Commander interface for BookmarkDeleteCommand.
func (c *BookmarkDeleteCommand) Execute(args []string) error {
	return c.rt.withBookmarks(func(ctx context.Context, b *feature.Bookmarks) error {
		if err := b.DeleteBookmark(ctx, c.Args.URL); err != nil {
			return err
		}
		return c.rt.emit(map[string]string{"deleted": c.Args.URL}, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "Deleted bookmark %s\n", c.Args.URL)
			return err
		})
	})
}

// Execute implements the go-flags Commander interface for BookmarkCountCommand.
func (c *BookmarkCountCommand) Execute(args []string) error {
	return c.rt.withBookmarks(func(ctx context.Context, b *feature.Bookmarks) error {
		n, err := b.GetBookmarkCount(ctx)
		if err != nil {
			return err
		}
		return c.rt.emit(map[string]int{"count": n}, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, n)
			return err
		})
	})
}
