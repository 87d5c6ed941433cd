package cmd

import (
	"context"
	"fmt"

	"ingress-identity/core/auth"
	"ingress-identity/core/config"
	"ingress-identity/core/database"
	"ingress-identity/core/logger"
	"ingress-identity/core/settings"
	"ingress-identity/core/spreadsheet"
	"ingress-identity/core/storage"
	"ingress-identity/feature/identity"
	"ingress-identity/feature/identity/sources"
	"ingress-identity/feature/integrity"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime is the wired dependency graph shared by every command.
type runtime struct {
	cfg       *config.Config
	logger    *zap.Logger
	storage   storage.Client
	db        *gorm.DB
	settings  *settings.Cached
	root      *sources.RootSource
	identity  *identity.Service
	integrity *integrity.Service
}

// bootstrap loads configuration and wires storage, database, settings and the
// player tree. Storage and database are optional: failures are logged and the
// subsystem stays disabled. With load set the manifests are read before returning.
func bootstrap(ctx context.Context, load bool) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	rt := &runtime{cfg: cfg, logger: logg}

	var store settings.Store = settings.NewMemoryStore()
	if cfg.Database.Enabled {
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else if gs, err := settings.NewGormStore(conn); err != nil {
			logg.Warn("Settings table unavailable", zap.Error(err))
		} else {
			rt.db = conn
			store = gs
			logg.Info("Connected to settings database", zap.String("driver", cfg.Database.Driver))
		}
	}
	rt.settings = settings.NewCached(store, cfg.Identity.SettingsCacheTTL())

	authClient := auth.NewClient(cfg.Auth)
	if !authClient.IsAuthorized(ctx) {
		logg.Warn("No spreadsheet token configured, only public sheets are readable")
	}

	var fetcher spreadsheet.Fetcher = spreadsheet.NewHTTPFetcher(authClient, "")
	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Warn("Optional storage client failed", zap.Error(err))
		} else {
			if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
				logg.Warn("Snapshot bucket unavailable", zap.Error(err))
			}
			rt.storage = client
			fetcher = spreadsheet.NewMirroredFetcher(fetcher, client, cfg.Storage.Bucket, logg)
		}
	}

	rt.root = sources.NewRootSource(
		spreadsheet.NewAccessor(fetcher, logg),
		sources.WithLogger(logg),
		sources.WithDefaultRefresh(cfg.Identity.DefaultRefresh()),
	)
	rt.identity = identity.NewService(rt.root, rt.settings, cfg.Identity.ManifestKeys(), logg)
	rt.integrity = integrity.NewService(rt.storage, cfg.Storage.Bucket, cfg.Storage.Region, rt.db, rt.root, logg)

	if load {
		logg.Info("Loading manifests")
		if err := rt.identity.Load(ctx); err != nil {
			return nil, err
		}
	}
	return rt, nil
}

func (rt *runtime) close() {
	_ = rt.logger.Sync()
}
