package sqlstore

import "time"

// ActiveRecordRow is the active_records table.
type ActiveRecordRow struct {
	ID        string         `gorm:"column:id;primaryKey;size:64"`
	Data      map[string]any `gorm:"column:data;type:text;serializer:json"`
	CreatedAt time.Time      `gorm:"column:created_at"`
}

func (ActiveRecordRow) TableName() string { return "active_records" }

// MatchRequestRow is the match_requests table.
type MatchRequestRow struct {
	ID              string    `gorm:"column:id;primaryKey;size:64"`
	AnimalID        string    `gorm:"column:animal_id;size:64;index"`
	ImagemURLAntiga string    `gorm:"column:imagem_url_antiga;size:1024"`
	ImagemURLNova   string    `gorm:"column:imagem_url_nova;size:1024"`
	Condicao        string    `gorm:"column:condicao;size:255"`
	DataEnvio       time.Time `gorm:"column:data_envio;index"`
}

func (MatchRequestRow) TableName() string { return "match_requests" }

// DuplicateRequestRow is the duplicate_requests table.
type DuplicateRequestRow struct {
	ID         string         `gorm:"column:id;primaryKey;size:64"`
	ExistingID string         `gorm:"column:existing_id;size:64;index"`
	NewData    map[string]any `gorm:"column:new_data;type:text;serializer:json"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
}

func (DuplicateRequestRow) TableName() string { return "duplicate_requests" }

// Models returns every table model, in migration order.
func Models() []any {
	return []any{&ActiveRecordRow{}, &MatchRequestRow{}, &DuplicateRequestRow{}}
}
