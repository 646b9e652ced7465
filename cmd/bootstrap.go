package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"animal-search-admin/core/config"
	"animal-search-admin/core/database"
	"animal-search-admin/core/firebase"
	"animal-search-admin/core/logger"
	"animal-search-admin/core/server"
	"animal-search-admin/core/storage"
	"animal-search-admin/feature/integrity"
	"animal-search-admin/feature/moderation"
	"animal-search-admin/feature/moderation/store"
	"animal-search-admin/feature/moderation/store/fsstore"
	"animal-search-admin/feature/moderation/store/memory"
	"animal-search-admin/feature/moderation/store/sqlstore"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// records is a store that can also be seeded from a fixture.
type records interface {
	store.RecordStore
	store.Seeder
}

// app bundles the dependencies shared by the server and the CLI commands.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	records records
	client  storage.Client // nil when object storage is disabled
	db      *gorm.DB       // nil unless the sql backend is selected
	closers []func() error
}

// bootstrap loads configuration, the logger, the record store and the optional object storage.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a := &app{cfg: cfg, logger: logg}
	if err := a.openRecords(ctx); err != nil {
		return nil, err
	}

	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		a.client = client
	} else {
		logg.Debug("Object storage disabled, images pass through and the audit journal is off")
	}

	return a, nil
}

func (a *app) openRecords(ctx context.Context) error {
	if !a.cfg.Server.IsValidBackend() {
		return fmt.Errorf("unsupported record store backend: %q", a.cfg.Server.Backend)
	}
	a.logger = a.logger.With(zap.String("backend", a.cfg.Server.Backend))

	switch a.cfg.Server.Backend {
	case server.BackendSQL:
		db, err := database.Connect(a.cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		s := sqlstore.New(db, a.logger)
		if err := s.Migrate(); err != nil {
			return fmt.Errorf("failed to migrate record store: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, sqlDB.Close)
		}
		a.db = db
		a.records = s
	case server.BackendMemory:
		a.records = memory.New()
	default:
		client, err := firebase.Connect(ctx, a.cfg.Firestore)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, client.Close)
		a.records = fsstore.New(client, a.cfg.Firestore, a.logger)
	}
	return nil
}

// seedFrom loads a fixture file into the record store.
func (a *app) seedFrom(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer f.Close()

	fixture, err := store.ReadFixture(f)
	if err != nil {
		return 0, err
	}
	return store.Seed(ctx, a.records, fixture)
}

func (a *app) moderationDeps() moderation.Deps {
	return moderation.Deps{
		Store:      a.records,
		Client:     a.client,
		Bucket:     a.cfg.Storage.Bucket,
		PresignTTL: time.Duration(a.cfg.Storage.PresignTTLSeconds) * time.Second,
		Logger:     a.logger,
	}
}

func (a *app) moderationService() *moderation.Service {
	return moderation.NewServiceFromConfig(a.cfg.Moderation, a.moderationDeps())
}

func (a *app) integrityOptions() integrity.Options {
	return integrity.Options{
		Client:      a.client,
		Bucket:      a.cfg.Storage.Bucket,
		Folders:     []string{a.cfg.Moderation.AuditPrefix, a.cfg.Moderation.ImagePrefix},
		Records:     a.records,
		DB:          a.db,
		Concurrency: a.cfg.Moderation.LookupConcurrency,
		Logger:      a.logger,
	}
}

// Close releases the store connections and flushes the logger.
func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn("Failed to close connection", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
