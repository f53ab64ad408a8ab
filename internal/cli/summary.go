package cli

import (
	"context"
	"io"

	"github.com/MrSnakeDoc/nitron/internal/config"
	"github.com/MrSnakeDoc/nitron/internal/domain"
	"github.com/MrSnakeDoc/nitron/internal/feature"
	"github.com/MrSnakeDoc/nitron/internal/summary"
)

// Execute implements the go-flags Commander interface for SummaryCommand.
// Without a running session, browsing time counts from the first visit today.
func (c *SummaryCommand) Execute(args []string) error {
	return c.rt.withStore(func(ctx context.Context, store domain.RecordStore, cfg *config.Config) error {
		history := feature.NewHistory(store, c.rt.log)
		now := c.rt.now()

		entries, err := history.ListHistory(ctx)
		if err != nil {
			return err
		}
		start := now
		today := domain.DayLabel(now, cfg.Location)
		for _, e := range entries {
			if domain.DayLabel(e.VisitedAt, cfg.Location) == today && e.VisitedAt.Before(start) {
				start = e.VisitedAt
			}
		}

		report, err := summary.Build(ctx, history, start, now, cfg.Location)
		if err != nil {
			return err
		}
		return c.rt.emit(report, func(w io.Writer) error {
			_, err := io.WriteString(w, report.String())
			return err
		})
	})
}
