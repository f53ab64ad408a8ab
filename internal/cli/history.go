package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/MrSnakeDoc/nitron/internal/config"
	"github.com/MrSnakeDoc/nitron/internal/domain"
	"github.com/MrSnakeDoc/nitron/internal/feature"
)

func (rt *runtime) withHistory(fn func(ctx context.Context, h *feature.History) error) error {
	return rt.withStore(func(ctx context.Context, store domain.RecordStore, _ *config.Config) error {
		return fn(ctx, feature.NewHistory(store, rt.log))
	})
}

// Execute implements the go-flags Commander interface for HistoryAddCommand.
func (c *HistoryAddCommand) Execute(args []string) error {
	return c.rt.withHistory(func(ctx context.Context, h *feature.History) error {
		if err := h.AddToHistory(ctx, c.Args.URL); err != nil {
			return err
		}
		return c.rt.emit(map[string]string{"visited": c.Args.URL}, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "Recorded visit to %s\n", c.Args.URL)
			return err
		})
	})
}

// Execute implements the go-flags Commander interface for HistoryListCommand.
func (c *HistoryListCommand) Execute(args []string) error {
	return c.rt.withHistory(func(ctx context.Context, h *feature.History) error {
		if c.ByDay {
			byDay, err := h.GetHistoryByDay(ctx)
			if err != nil {
				return err
			}
			return c.rt.emit(byDay, func(w io.Writer) error {
				if len(byDay) == 0 {
					_, err := fmt.Fprintln(w, "No history")
					return err
				}
				for _, bucket := range byDay {
					if _, err := fmt.Fprintf(w, "%s\n", bucket.Label); err != nil {
						return err
					}
					for _, u := range bucket.URLs {
						if _, err := fmt.Fprintf(w, "  %s\n", u); err != nil {
							return err
						}
					}
				}
				return nil
			})
		}

		urls, err := h.GetHistory(ctx)
		if err != nil {
			return err
		}
		return c.rt.emit(urls, func(w io.Writer) error {
			return printLines(w, urls, "No history")
		})
	})
}

// Execute implements the go-flags Commander interface for HistoryDeleteCommand.
func (c *HistoryDeleteCommand) Execute(args []string) error {
	return c.rt.withHistory(func(ctx context.Context, h *feature.History) error {
		if err := h.DeleteHistoryEntry(ctx, c.Args.URL); err != nil {
			return err
		}
		return c.rt.emit(map[string]string{"deleted": c.Args.URL}, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "Deleted visit to %s\n", c.Args.URL)
			return err
		})
	})
}

// Execute implements the go-flags Commander interface for HistoryClearCommand.
func (c *HistoryClearCommand) Execute(args []string) error {
	return c.rt.withHistory(func(ctx context.Context, h *feature.History) error {
		if err := h.ClearAllHistory(ctx); err != nil {
			return err
		}
		return c.rt.emit(map[string]bool{"cleared": true}, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, "History cleared")
			return err
		})
	})
}

// Execute implements the go-flags Commander interface for HistoryCountCommand.
func (c *HistoryCountCommand) Execute(args []string) error {
	return c.rt.withHistory(func(ctx context.Context, h *feature.History) error {
		n, err := h.GetHistoryCount(ctx)
		if err != nil {
			return err
		}
		return c.rt.emit(map[string]int{"count": n}, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, n)
			return err
		})
	})
}

// Execute implements the go-flags Commander interface for HistoryRecentCommand.
func (c *HistoryRecentCommand) Execute(args []string) error {
	return c.rt.withHistory(func(ctx context.Context, h *feature.History) error {
		url, ok, err := h.GetMostRecentURL(ctx)
		if err != nil {
			return err
		}
		out := map[string]interface{}{"url": nil}
		if ok {
			out["url"] = url
		}
		return c.rt.emit(out, func(w io.Writer) error {
			if !ok {
				_, err := fmt.Fprintln(w, "No history")
				return err
			}
			_, err := fmt.Fprintln(w, url)
			return err
		})
	})
}
