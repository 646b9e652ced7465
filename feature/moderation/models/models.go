package models

import (
	"fmt"
	"strings"
	"time"
)

// Wire field names shared with the mobile client and the hosted store.
const (
	FieldImageURL        = "imagem_url"
	FieldType            = "tipo"
	FieldColor           = "cor"
	FieldCondition       = "condicao"
	FieldAnimalID        = "animal_id"
	FieldOldImageURL     = "imagem_url_antiga"
	FieldNewImageURL     = "imagem_url_nova"
	FieldLegacyCondition = "animal_condicao"
	FieldSubmittedAt     = "data_envio"
	FieldExistingID      = "existingId"
	FieldNewData         = "newData"
)

// QueueType identifies a pending review queue.
type QueueType string

const (
	// QueueMatches holds "possible same animal" requests.
	QueueMatches QueueType = "matches"
	// QueueDuplicates holds "possible duplicate registration" requests.
	QueueDuplicates QueueType = "duplicates"
)

// ParseQueueType validates a queue name.
func ParseQueueType(s string) (QueueType, error) {
	switch q := QueueType(strings.ToLower(strings.TrimSpace(s))); q {
	case QueueMatches, QueueDuplicates:
		return q, nil
	default:
		return "", fmt.Errorf("unknown queue %q (want %s or %s)", s, QueueMatches, QueueDuplicates)
	}
}

// Decision is the operator verdict on a pending request.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// ParseDecision validates a decision string.
func ParseDecision(s string) (Decision, error) {
	switch d := Decision(strings.ToLower(strings.TrimSpace(s))); d {
	case DecisionAccept, DecisionReject:
		return d, nil
	default:
		return "", fmt.Errorf("unknown decision %q (want %s or %s)", s, DecisionAccept, DecisionReject)
	}
}

// ActiveRecord is a listed lost or found animal.
type ActiveRecord struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// ImageURL returns the record's image reference, if any.
func (r ActiveRecord) ImageURL() string {
	s, _ := r.Fields[FieldImageURL].(string)
	return s
}

// MatchRequest claims that a found animal is an existing ActiveRecord.
type MatchRequest struct {
	ID          string    `json:"id"`
	AnimalID    string    `json:"animal_id"`
	OldImageURL string    `json:"imagem_url_antiga"`
	NewImageURL string    `json:"imagem_url_nova"`
	Condition   string    `json:"condicao,omitempty"`
	SubmittedAt time.Time `json:"data_envio"`
}

// DuplicateRequest claims that a new submission duplicates an existing ActiveRecord.
type DuplicateRequest struct {
	ID         string         `json:"id"`
	ExistingID string         `json:"existingId"`
	NewData    map[string]any `json:"newData"`
}

// PendingItem is the renderable comparison record of one queue entry.
type PendingItem struct {
	ID       string    `json:"id"`
	Queue    QueueType `json:"queue"`
	AnimalID string    `json:"animal_id"`
	// OldImage is the image of the existing ActiveRecord.
	OldImage string `json:"old_image"`
	// NewImage is the image of the new submission.
	NewImage    string         `json:"new_image"`
	Condition   string         `json:"condition,omitempty"`
	SubmittedAt *time.Time     `json:"submitted_at,omitempty"`
	NewData     map[string]any `json:"new_data,omitempty"`
	// ReferenceMissing is set when the referenced ActiveRecord no longer exists.
	ReferenceMissing bool `json:"reference_missing"`
}

// Outcome reports what a resolution did.
type Outcome struct {
	RequestID string    `json:"request_id"`
	Queue     QueueType `json:"queue"`
	Decision  Decision  `json:"decision"`
	// Steps lists the committed steps in order.
	Steps []string `json:"steps"`
	// Planned is the number of steps of the sequence.
	Planned int `json:"planned"`
	// LastCompleted is the index of the last committed step, -1 when none.
	LastCompleted int `json:"last_completed"`
	// RecordCreated is set once a duplicate accept has inserted the new record.
	RecordCreated   bool   `json:"record_created"`
	CreatedRecordID string `json:"created_record_id,omitempty"`
	// AlreadyResolved is set when the request was no longer pending.
	AlreadyResolved bool     `json:"already_resolved"`
	Warnings        []string `json:"warnings,omitempty"`
}

// Resolved reports whether the request has left the pending queue.
func (o Outcome) Resolved() bool {
	return o.AlreadyResolved || (o.Planned > 0 && o.LastCompleted == o.Planned-1)
}
