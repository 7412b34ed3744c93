package app

import (
	"context"

	"github.com/matheus3301/huddle/internal/bus"
	"github.com/matheus3301/huddle/internal/chat"
	"github.com/matheus3301/huddle/internal/config"
	"github.com/matheus3301/huddle/internal/lock"
	"github.com/matheus3301/huddle/internal/logging"
	"github.com/matheus3301/huddle/internal/persist"
	"github.com/matheus3301/huddle/internal/profile"
	"github.com/matheus3301/huddle/internal/remote"
	"github.com/matheus3301/huddle/internal/report"
	"github.com/matheus3301/huddle/internal/tui"
	"github.com/matheus3301/huddle/internal/upload"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Params holds the resolved profile configuration passed to the fx module.
type Params struct {
	ProfileName string
}

// Module returns the fx module for the application, composing all
// providers and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("app",
		fx.Supply(p),
		fx.Provide(
			provideLogger,
			provideBus,
			provideConfig,
			provideLock,
			provideDB,
			provideStore,
			provideRemote,
			provideUploader,
			provideSubmitter,
			provideApp,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideLogger(p Params) (*zap.Logger, error) {
	if err := profile.EnsureDir(p.ProfileName); err != nil {
		return nil, err
	}
	return logging.New(profile.LogPath(p.ProfileName), p.ProfileName)
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideConfig() *config.Config {
	cfg, err := config.Load(profile.ConfigPath())
	if err != nil {
		// Missing or unreadable config falls back to defaults; the
		// app is usable without one.
		return &config.Config{DisplayName: config.DefaultDisplayName}
	}
	return cfg
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	logger.Info("acquiring profile lock", zap.String("profile", p.ProfileName))
	l, err := lock.Acquire(profile.Dir(p.ProfileName))
	if err != nil {
		return nil, err
	}
	logger.Info("profile lock acquired")
	return l, nil
}

func provideDB(p Params, logger *zap.Logger) (*persist.DB, error) {
	dbPath := profile.DBPath(p.ProfileName)
	db, err := persist.Open(dbPath)
	if err != nil {
		return nil, err
	}
	result, err := db.Migrate()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if result.Changed {
		logger.Info("migrations applied", zap.Uint("version", result.Version))
	} else {
		logger.Info("migrations up to date", zap.Uint("version", result.Version))
	}
	logger.Info("blob store initialized", zap.String("path", dbPath))
	return db, nil
}

func provideStore(db *persist.DB, b *bus.Bus, cfg *config.Config, logger *zap.Logger) *chat.Store {
	return chat.New(db, b, logger, cfg.DisplayName)
}

func provideRemote() remote.Client {
	return remote.NewStub()
}

func provideUploader() upload.Uploader {
	return upload.NewPlaceholder()
}

func provideSubmitter(store *chat.Store, client remote.Client, b *bus.Bus, logger *zap.Logger) *report.Submitter {
	return report.NewSubmitter(store, client, b, logger)
}

func provideApp(p Params, store *chat.Store, b *bus.Bus, uploader upload.Uploader, logger *zap.Logger) *tui.App {
	return tui.New(store, b, uploader, logger, p.ProfileName)
}

func registerLifecycle(lc fx.Lifecycle, shutdowner fx.Shutdowner, ui *tui.App, store *chat.Store, submitter *report.Submitter, lk *lock.Lock, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			store.Hydrate()
			submitter.Start(context.Background())

			// The UI owns the terminal; run it off the fx goroutine
			// and shut the app down when it exits.
			go func() {
				if err := ui.Run(); err != nil {
					logger.Error("ui loop error", zap.Error(err))
				}
				_ = shutdowner.Shutdown()
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			ui.Stop()
			submitter.Stop()
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("app stopped")
			_ = logger.Sync()
			return nil
		},
	})
}
