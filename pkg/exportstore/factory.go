package exportstore

import (
	"context"
	"fmt"

	"github.com/cartesiosson/ai-act-project-sub003/pkg/config"
)

// Backend selects the export storage implementation.
type Backend string

const (
	BackendLocal Backend = "local"
	BackendS3    Backend = "s3"
	BackendGCS   Backend = "gcs"
)

// New creates a report store from configuration.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch Backend(cfg.ExportBackend) {
	case BackendLocal:
		return NewLocalStore(cfg.ExportPath)
	case BackendS3:
		if cfg.ExportBucket == "" {
			return nil, fmt.Errorf("EXPORT_BUCKET is required for s3 export")
		}
		return NewS3Store(ctx, S3Config{Bucket: cfg.ExportBucket})
	case BackendGCS:
		if cfg.ExportBucket == "" {
			return nil, fmt.Errorf("EXPORT_BUCKET is required for gcs export")
		}
		return newGCS(ctx, cfg.ExportBucket)
	default:
		return nil, fmt.Errorf("unsupported export backend: %s", cfg.ExportBackend)
	}
}
