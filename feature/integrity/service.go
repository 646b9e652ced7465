package integrity

import (
	"context"
	"errors"

	"animal-search-admin/core/storage"
	"animal-search-admin/feature/integrity/checks"
	"animal-search-admin/feature/moderation/store"
	"animal-search-admin/feature/moderation/store/sqlstore"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrSkipped is returned by checks whose backing resource is not configured.
var ErrSkipped = errors.New("check skipped: not configured")

// Service handles integrity checks.
type Service struct {
	client      storage.Client
	bucket      string
	folders     []string
	records     store.RecordStore
	db          *gorm.DB
	concurrency int
	logger      *zap.Logger
}

// Options configures the integrity service. Client and DB may be nil.
type Options struct {
	Client      storage.Client
	Bucket      string
	Folders     []string
	Records     store.RecordStore
	DB          *gorm.DB
	Concurrency int
	Logger      *zap.Logger
}

// NewService creates a new integrity service.
func NewService(opts Options) *Service {
	return &Service{
		client:      opts.Client,
		bucket:      opts.Bucket,
		folders:     opts.Folders,
		records:     opts.Records,
		db:          opts.DB,
		concurrency: opts.Concurrency,
		logger:      opts.Logger,
	}
}

// CheckReferences reports pending requests whose ActiveRecord is gone.
func (s *Service) CheckReferences(ctx context.Context) (*checks.ReferenceReport, error) {
	if s.records == nil {
		return nil, ErrSkipped
	}
	return checks.CheckReferences(ctx, s.records, s.concurrency)
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, ErrSkipped
	}
	return checks.CheckStructure(ctx, s.client, s.bucket, s.folders)
}

// FixStructure creates the bucket and the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	if s.client == nil {
		return ErrSkipped
	}
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckSchema compares the SQL backend with the store models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	if s.db == nil {
		return nil, ErrSkipped
	}
	return checks.CheckSchema(s.db, sqlstore.Models()...)
}
