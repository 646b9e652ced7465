package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"animal-search-admin/feature/moderation/models"
	"animal-search-admin/feature/moderation/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is a RecordStore backed by a SQL database through GORM.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

var (
	_ store.RecordStore = (*Store)(nil)
	_ store.Seeder      = (*Store)(nil)
)

// New creates a SQL store. Call Migrate once before use.
func New(db *gorm.DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Migrate creates or updates the moderation tables.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate moderation tables: %w", err)
	}
	return nil
}

func (s *Store) ListMatchRequests(ctx context.Context) ([]models.MatchRequest, error) {
	var rows []MatchRequestRow
	if err := s.db.WithContext(ctx).Order("data_envio DESC, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list match requests: %w", err)
	}

	out := make([]models.MatchRequest, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (s *Store) ListDuplicateRequests(ctx context.Context) ([]models.DuplicateRequest, error) {
	var rows []DuplicateRequestRow
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list duplicate requests: %w", err)
	}

	out := make([]models.DuplicateRequest, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (s *Store) GetActiveRecord(ctx context.Context, id string) (*models.ActiveRecord, error) {
	var row ActiveRecordRow
	if err := s.first(ctx, &row, id); err != nil {
		return nil, err
	}
	return &models.ActiveRecord{ID: row.ID, Fields: row.Data}, nil
}

func (s *Store) GetMatchRequest(ctx context.Context, id string) (*models.MatchRequest, error) {
	var row MatchRequestRow
	if err := s.first(ctx, &row, id); err != nil {
		return nil, err
	}
	req := row.toModel()
	return &req, nil
}

func (s *Store) GetDuplicateRequest(ctx context.Context, id string) (*models.DuplicateRequest, error) {
	var row DuplicateRequestRow
	if err := s.first(ctx, &row, id); err != nil {
		return nil, err
	}
	req := row.toModel()
	return &req, nil
}

// CreateActiveRecord inserts with ON CONFLICT DO NOTHING; zero affected rows
// means the record was already there.
func (s *Store) CreateActiveRecord(ctx context.Context, id string, fields map[string]any) (bool, error) {
	row := ActiveRecordRow{ID: id, Data: fields}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return false, fmt.Errorf("failed to create active record %s: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) DeleteActiveRecord(ctx context.Context, id string) error {
	return s.delete(ctx, &ActiveRecordRow{}, id)
}

func (s *Store) DeleteMatchRequest(ctx context.Context, id string) error {
	return s.delete(ctx, &MatchRequestRow{}, id)
}

func (s *Store) DeleteDuplicateRequest(ctx context.Context, id string) error {
	return s.delete(ctx, &DuplicateRequestRow{}, id)
}

func (s *Store) PutActiveRecord(ctx context.Context, rec models.ActiveRecord) error {
	return s.upsert(ctx, &ActiveRecordRow{ID: rec.ID, Data: rec.Fields}, "data")
}

func (s *Store) PutMatchRequest(ctx context.Context, req models.MatchRequest) error {
	return s.upsert(ctx, &MatchRequestRow{
		ID:              req.ID,
		AnimalID:        req.AnimalID,
		ImagemURLAntiga: req.OldImageURL,
		ImagemURLNova:   req.NewImageURL,
		Condicao:        req.Condition,
		DataEnvio:       req.SubmittedAt,
	}, "animal_id", "imagem_url_antiga", "imagem_url_nova", "condicao", "data_envio")
}

func (s *Store) PutDuplicateRequest(ctx context.Context, req models.DuplicateRequest) error {
	return s.upsert(ctx, &DuplicateRequestRow{ID: req.ID, ExistingID: req.ExistingID, NewData: req.NewData},
		"existing_id", "new_data")
}

func (s *Store) first(ctx context.Context, dest any, id string) error {
	err := s.db.WithContext(ctx).Where("id = ?", id).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", id, err)
	}
	return nil
}

func (s *Store) delete(ctx context.Context, model any, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", id, res.Error)
	}
	s.logger.Debug("Row deleted", zap.String("id", id), zap.Int64("affected", res.RowsAffected))
	return nil
}

// upsert inserts row or updates cols of the existing row with the same id.
// created_at is never in cols, so a re-seeded row keeps its queue position.
func (s *Store) upsert(ctx context.Context, row any, cols ...string) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(cols),
	}).Create(row).Error
	if err != nil {
		return fmt.Errorf("failed to save row: %w", err)
	}
	return nil
}

func (r MatchRequestRow) toModel() models.MatchRequest {
	return models.MatchRequest{
		ID:          r.ID,
		AnimalID:    r.AnimalID,
		OldImageURL: r.ImagemURLAntiga,
		NewImageURL: r.ImagemURLNova,
		Condition:   r.Condicao,
		SubmittedAt: r.DataEnvio,
	}
}

func (r DuplicateRequestRow) toModel() models.DuplicateRequest {
	return models.DuplicateRequest{ID: r.ID, ExistingID: r.ExistingID, NewData: r.NewData}
}
