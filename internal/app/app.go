package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/nitron/internal/config"
	"github.com/MrSnakeDoc/nitron/internal/domain"
	"github.com/MrSnakeDoc/nitron/internal/feature"
	"github.com/MrSnakeDoc/nitron/internal/httpserver"
	"github.com/MrSnakeDoc/nitron/internal/httpserver/deps"
	"github.com/MrSnakeDoc/nitron/internal/logger"
	"github.com/MrSnakeDoc/nitron/internal/scheduler"
	"github.com/MrSnakeDoc/nitron/internal/version"
)

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	server   *httpserver.Server
	store    domain.RecordStore
	importer *scheduler.BookmarkImporter
	pruner   *scheduler.HistoryPruner
}

// New loads the configuration, opens the record store and wires the
// features, background jobs and HTTP server. The store must be reachable.
func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	store, err := OpenStore(context.Background(), cfg, loggerClient)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
	}
	loggerClient.Info("record store ready", logger.String("backend", cfg.Store))

	bookmarks := feature.NewBookmarks(store, loggerClient)
	history := feature.NewHistory(store, loggerClient)
	bookmarks.Initialize()
	history.Initialize()

	// Initialize bookmark importer (if import file is configured)
	var importer *scheduler.BookmarkImporter
	var importTrigger chan struct{}
	if cfg.BookmarkImportFile != "" {
		loggerClient.Info("bookmark import file configured, initializing importer",
			logger.String("file", cfg.BookmarkImportFile))
		importTrigger = make(chan struct{}, 1)
		importer = scheduler.NewBookmarkImporter(
			cfg.BookmarkImportFile,
			bookmarks,
			loggerClient,
			cfg.ImportInterval,
			importTrigger,
		)
	} else {
		loggerClient.Info("bookmark import file not configured, import disabled")
	}

	pruner := scheduler.NewHistoryPruner(
		history,
		loggerClient,
		cfg.PruneInterval,
		cfg.HistoryRetention,
	)

	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		Location:      cfg.Location,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		StoreBackend:  cfg.Store,
		Store:         store,
		Bookmarks:     bookmarks,
		History:       history,
		ImportFile:    cfg.BookmarkImportFile,
		ImportTrigger: importTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:      cfg,
		logger:   loggerClient,
		server:   server,
		store:    store,
		importer: importer,
		pruner:   pruner,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Nitron v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Nitron %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer a.closeStore()

	// Start bookmark importer (if enabled)
	if a.importer != nil {
		if err := a.importer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start bookmark importer: %w", err)
		}
		a.logger.Info("bookmark importer started",
			logger.Duration("interval", a.cfg.ImportInterval))
	}

	if err := a.pruner.Start(ctx); err != nil {
		return fmt.Errorf("failed to start history pruner: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.importer != nil {
		a.importer.Stop()
	}
	a.pruner.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("✅ Nitron stopped cleanly")
	return nil
}

func (a *App) closeStore() {
	if err := a.store.Close(); err != nil {
		a.logger.Warnf("failed to close %s store: %v", a.cfg.Store, err)
		return
	}
	a.logger.Info("✅ Record store closed cleanly", logger.String("backend", a.cfg.Store))
}
