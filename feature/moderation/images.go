package moderation

import (
	"context"
	"path"
	"strings"
	"time"

	"animal-search-admin/core/storage"

	"go.uber.org/zap"
)

// ImageResolver turns stored image references into URLs an operator can open.
type ImageResolver struct {
	client      storage.Client
	bucket      string
	prefix      string
	ttl         time.Duration
	placeholder string
	logger      *zap.Logger
}

// NewImageResolver creates a resolver. A nil client leaves object keys untouched.
func NewImageResolver(client storage.Client, bucket, prefix string, ttl time.Duration, placeholder string, logger *zap.Logger) *ImageResolver {
	return &ImageResolver{
		client:      client,
		bucket:      bucket,
		prefix:      strings.Trim(prefix, "/"),
		ttl:         ttl,
		placeholder: placeholder,
		logger:      logger,
	}
}

// Placeholder returns the image shown for missing records.
func (r *ImageResolver) Placeholder() string {
	return r.placeholder
}

// Resolve returns a displayable URL for ref.
// Absolute URLs pass through, object keys are presigned and empty references
// become the placeholder. A bare file name is looked up under the image prefix.
func (r *ImageResolver) Resolve(ctx context.Context, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return r.placeholder
	}
	if strings.Contains(ref, "://") || strings.HasPrefix(ref, "data:") || r.client == nil {
		return ref
	}

	key := ObjectKey(r.prefix, ref)
	u, err := r.client.PresignedGetObject(ctx, r.bucket, key, r.ttl, nil)
	if err != nil {
		r.logger.Warn("Failed to presign image", zap.String("key", key), zap.Error(err))
		return r.placeholder
	}
	return u.String()
}

// ObjectKey maps an image reference to its object key.
func ObjectKey(prefix, ref string) string {
	ref = strings.TrimPrefix(ref, "/")
	if strings.Contains(ref, "/") || prefix == "" {
		return ref
	}
	return path.Join(prefix, ref)
}
