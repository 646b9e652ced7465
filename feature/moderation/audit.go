package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"animal-search-admin/core/storage"
	"animal-search-admin/feature/moderation/models"

	"github.com/minio/minio-go/v7"
)

const auditDayLayout = "2006-01-02"

// AuditEntry is one resolved decision in the journal.
type AuditEntry struct {
	RequestID  string           `json:"request_id"`
	Queue      models.QueueType `json:"queue"`
	Decision   models.Decision  `json:"decision"`
	Outcome    models.Outcome   `json:"outcome"`
	RayID      string           `json:"ray_id,omitempty"`
	ResolvedAt time.Time        `json:"resolved_at"`
}

// Journal writes resolved decisions to object storage.
type Journal struct {
	client storage.Client
	bucket string
	prefix string
	now    func() time.Time
}

// NewJournal creates a journal. A nil client disables it.
func NewJournal(client storage.Client, bucket, prefix string) *Journal {
	return &Journal{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		now:    time.Now,
	}
}

// Enabled reports whether entries are persisted.
func (j *Journal) Enabled() bool {
	return j != nil && j.client != nil
}

// AuditKey returns the object key of a journal entry.
func AuditKey(prefix string, queue models.QueueType, at time.Time, requestID string) string {
	return path.Join(prefix, string(queue), at.UTC().Format(auditDayLayout), requestID+".json")
}

// Record writes the entry for a resolved outcome.
func (j *Journal) Record(ctx context.Context, o models.Outcome, rayID string) error {
	if !j.Enabled() {
		return nil
	}

	entry := AuditEntry{
		RequestID:  o.RequestID,
		Queue:      o.Queue,
		Decision:   o.Decision,
		Outcome:    o,
		RayID:      rayID,
		ResolvedAt: j.now().UTC(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode audit entry: %w", err)
	}

	key := AuditKey(j.prefix, o.Queue, entry.ResolvedAt, o.RequestID)
	_, err = j.client.PutObject(ctx, j.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to write audit entry %s: %w", key, err)
	}
	return nil
}

// List returns the entries of one queue and day, oldest first.
func (j *Journal) List(ctx context.Context, queue models.QueueType, day time.Time) ([]AuditEntry, error) {
	if !j.Enabled() {
		return nil, fmt.Errorf("audit journal is disabled (storage.enabled=false)")
	}

	prefix := path.Join(j.prefix, string(queue), day.UTC().Format(auditDayLayout)) + "/"
	entries := make([]AuditEntry, 0)
	for obj := range j.client.ListObjects(ctx, j.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list audit entries: %w", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}

		entry, err := j.read(ctx, obj.Key)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(a, b int) bool {
		return entries[a].ResolvedAt.Before(entries[b].ResolvedAt)
	})
	return entries, nil
}

func (j *Journal) read(ctx context.Context, key string) (AuditEntry, error) {
	var entry AuditEntry
	obj, err := j.client.GetObject(ctx, j.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return entry, fmt.Errorf("failed to read audit entry %s: %w", key, err)
	}
	defer obj.Close()

	if err := json.NewDecoder(obj).Decode(&entry); err != nil {
		return entry, fmt.Errorf("failed to decode audit entry %s: %w", key, err)
	}
	return entry, nil
}
