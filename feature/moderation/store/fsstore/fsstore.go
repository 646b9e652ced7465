package fsstore

import (
	"context"
	"errors"
	"fmt"

	"animal-search-admin/core/firebase"
	"animal-search-admin/core/utils"
	"animal-search-admin/feature/moderation/models"
	"animal-search-admin/feature/moderation/store"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Store is a RecordStore backed by Cloud Firestore.
type Store struct {
	client     *firestore.Client
	active     string
	matches    string
	duplicates string
	logger     *zap.Logger
}

var (
	_ store.RecordStore = (*Store)(nil)
	_ store.Seeder      = (*Store)(nil)
)

// New creates a Firestore store using the collection names of cfg.
func New(client *firestore.Client, cfg firebase.Config, logger *zap.Logger) *Store {
	return &Store{
		client:     client,
		active:     cfg.ActiveCollection,
		matches:    cfg.MatchCollection,
		duplicates: cfg.DuplicateCollection,
		logger:     logger,
	}
}

func (s *Store) ListMatchRequests(ctx context.Context) ([]models.MatchRequest, error) {
	docs, err := s.client.Collection(s.matches).
		OrderBy(models.FieldSubmittedAt, firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.matches, err)
	}

	out := make([]models.MatchRequest, 0, len(docs))
	for _, d := range docs {
		out = append(out, decodeMatch(d.Ref.ID, d.Data()))
	}
	return out, nil
}

func (s *Store) ListDuplicateRequests(ctx context.Context) ([]models.DuplicateRequest, error) {
	docs, err := s.client.Collection(s.duplicates).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.duplicates, err)
	}

	out := make([]models.DuplicateRequest, 0, len(docs))
	for _, d := range docs {
		out = append(out, decodeDuplicate(d.Ref.ID, d.Data()))
	}
	return out, nil
}

func (s *Store) GetActiveRecord(ctx context.Context, id string) (*models.ActiveRecord, error) {
	data, err := s.get(ctx, s.active, id)
	if err != nil {
		return nil, err
	}
	return &models.ActiveRecord{ID: id, Fields: data}, nil
}

func (s *Store) GetMatchRequest(ctx context.Context, id string) (*models.MatchRequest, error) {
	data, err := s.get(ctx, s.matches, id)
	if err != nil {
		return nil, err
	}
	req := decodeMatch(id, data)
	return &req, nil
}

func (s *Store) GetDuplicateRequest(ctx context.Context, id string) (*models.DuplicateRequest, error) {
	data, err := s.get(ctx, s.duplicates, id)
	if err != nil {
		return nil, err
	}
	req := decodeDuplicate(id, data)
	return &req, nil
}

// CreateActiveRecord uses a Create precondition; AlreadyExists means a
// previous attempt already wrote the record.
func (s *Store) CreateActiveRecord(ctx context.Context, id string, fields map[string]any) (bool, error) {
	_, err := s.client.Collection(s.active).Doc(id).Create(ctx, fields)
	if status.Code(err) == codes.AlreadyExists {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to create %s/%s: %w", s.active, id, err)
	}
	return true, nil
}

func (s *Store) DeleteActiveRecord(ctx context.Context, id string) error {
	return s.delete(ctx, s.active, id)
}

func (s *Store) DeleteMatchRequest(ctx context.Context, id string) error {
	return s.delete(ctx, s.matches, id)
}

func (s *Store) DeleteDuplicateRequest(ctx context.Context, id string) error {
	return s.delete(ctx, s.duplicates, id)
}

func (s *Store) PutActiveRecord(ctx context.Context, rec models.ActiveRecord) error {
	return s.set(ctx, s.active, rec.ID, rec.Fields)
}

func (s *Store) PutMatchRequest(ctx context.Context, req models.MatchRequest) error {
	return s.set(ctx, s.matches, req.ID, encodeMatch(req))
}

func (s *Store) PutDuplicateRequest(ctx context.Context, req models.DuplicateRequest) error {
	return s.set(ctx, s.duplicates, req.ID, encodeDuplicate(req))
}

func (s *Store) get(ctx context.Context, collection, id string) (map[string]any, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("%s/%s: %w", collection, id, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return snap.Data(), nil
}

// delete has no Exists precondition, so a missing document is not an error.
func (s *Store) delete(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	s.logger.Debug("Document deleted", zap.String("collection", collection), zap.String("id", id))
	return nil
}

func (s *Store) set(ctx context.Context, collection, id string, data map[string]any) error {
	if id == "" {
		return errors.New("document id is required")
	}
	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, data); err != nil {
		return fmt.Errorf("failed to set %s/%s: %w", collection, id, err)
	}
	return nil
}

func decodeMatch(id string, data map[string]any) models.MatchRequest {
	cond := utils.StringField(data, models.FieldCondition)
	if cond == "" {
		cond = utils.StringField(data, models.FieldLegacyCondition)
	}
	return models.MatchRequest{
		ID:          id,
		AnimalID:    utils.StringField(data, models.FieldAnimalID),
		OldImageURL: utils.StringField(data, models.FieldOldImageURL),
		NewImageURL: utils.StringField(data, models.FieldNewImageURL),
		Condition:   cond,
		SubmittedAt: utils.ToTime(data[models.FieldSubmittedAt]),
	}
}

func decodeDuplicate(id string, data map[string]any) models.DuplicateRequest {
	newData, _ := data[models.FieldNewData].(map[string]any)
	return models.DuplicateRequest{
		ID:         id,
		ExistingID: utils.StringField(data, models.FieldExistingID),
		NewData:    newData,
	}
}

func encodeMatch(req models.MatchRequest) map[string]any {
	data := map[string]any{
		models.FieldAnimalID:    req.AnimalID,
		models.FieldOldImageURL: req.OldImageURL,
		models.FieldNewImageURL: req.NewImageURL,
		models.FieldSubmittedAt: req.SubmittedAt,
	}
	if req.Condition != "" {
		data[models.FieldCondition] = req.Condition
	}
	return data
}

func encodeDuplicate(req models.DuplicateRequest) map[string]any {
	return map[string]any{
		models.FieldExistingID: req.ExistingID,
		models.FieldNewData:    req.NewData,
	}
}
