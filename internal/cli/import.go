package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/MrSnakeDoc/nitron/internal/config"
	"github.com/MrSnakeDoc/nitron/internal/domain"
	"github.com/MrSnakeDoc/nitron/internal/feature"
	"github.com/MrSnakeDoc/nitron/internal/scheduler"
)

// Execute implements the go-flags Commander interface for ImportCommand.
func (c *ImportCommand) Execute(args []string) error {
	return c.rt.withStore(func(ctx context.Context, store domain.RecordStore, cfg *config.Config) error {
		file := c.File
		if file == "" {
			file = cfg.BookmarkImportFile
		}
		if file == "" {
			return errors.New("--file is required when NITRON_BOOKMARK_IMPORT_FILE is not set")
		}

		bookmarks := feature.NewBookmarks(store, c.rt.log)
		importer := scheduler.NewBookmarkImporter(file, bookmarks, c.rt.log, time.Hour, nil)

		result, err := importer.Import(ctx)
		if err != nil {
			return err
		}
		return c.rt.emit(result, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "Imported %d of %d bookmarks (%d already present, %d invalid)\n",
				result.Added, result.Found, result.Skipped, result.Invalid)
			return err
		})
	})
}
