package moderation

import (
	"time"

	"animal-search-admin/core/storage"
	"animal-search-admin/feature/moderation/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// Deps are the collaborators of the moderation feature.
// Client may be nil when object storage is disabled.
type Deps struct {
	Store      store.RecordStore
	Client     storage.Client
	Bucket     string
	PresignTTL time.Duration
	Logger     *zap.Logger
}

// NewFeature wires the loader, engine, journal and service of the feature.
func NewFeature(cfg Config, deps Deps) *Feature {
	svc := NewServiceFromConfig(cfg, deps)
	return &Feature{service: svc, handler: NewHandler(svc, deps.Logger)}
}

// NewServiceFromConfig builds the moderation service. The CLI uses it directly.
func NewServiceFromConfig(cfg Config, deps Deps) *Service {
	images := NewImageResolver(deps.Client, deps.Bucket, cfg.ImagePrefix, deps.PresignTTL, cfg.PlaceholderImage, deps.Logger)
	loader := NewQueueLoader(deps.Store, images, cfg.LookupConcurrency, deps.Logger)
	engine := NewEngine(deps.Store, deps.Logger)
	journal := NewJournal(deps.Client, deps.Bucket, cfg.AuditPrefix)
	return NewService(loader, engine, journal, deps.Logger)
}

// Service returns the feature's service.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "moderation"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
