package cmd

import (
	"context"
	"time"

	"bundle-manager/core/config"
	"bundle-manager/core/database"
	"bundle-manager/core/storage"
	"bundle-manager/feature/bundle"
	"bundle-manager/feature/session"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// openSessions connects the session store. A failed connection is not fatal:
// the configured static shop token still works without it.
func openSessions(cfg *config.Config, l *zap.Logger) *session.Repository {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		l.Warn("Session database unavailable, using static shop token only", zap.Error(err))
		return nil
	}
	repo := session.NewRepository(db)
	if err := repo.Migrate(); err != nil {
		l.Warn("Session table migration failed", zap.Error(err))
	}
	l.Info("Connected to session database", zap.String("driver", cfg.Database.Driver))
	return repo
}

// openArchive returns nil when the report archive is disabled.
func openArchive(ctx context.Context, cfg *config.Config, l *zap.Logger) (*bundle.Archive, error) {
	if !cfg.Storage.Enabled {
		return nil, nil
	}
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
		return nil, err
	}
	l.Info("Report archive enabled", zap.String("bucket", cfg.Storage.Bucket))
	return bundle.NewArchive(client, cfg.Storage.Bucket, l), nil
}

// newClientProvider wires per-shop GraphQL clients from the session store and
// the configured static token.
func newClientProvider(cfg *config.Config, l *zap.Logger) *session.ClientProvider {
	var finder session.Finder
	if repo := openSessions(cfg, l); repo != nil {
		finder = repo
	}
	return session.NewClientProvider(finder, cfg.Shop, l)
}

// newBundleService wires the bundle service from configuration.
func newBundleService(ctx context.Context, cfg *config.Config, clients bundle.ClientFactory, l *zap.Logger) (*bundle.Service, error) {
	opts, err := cfg.Discount.Options()
	if err != nil {
		return nil, errors.Wrap(err, "invalid discount configuration")
	}

	archive, err := openArchive(ctx, cfg, l)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open report archive")
	}

	return bundle.NewService(clients, archive, l, opts...), nil
}
