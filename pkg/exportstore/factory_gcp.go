//go:build gcp

package exportstore

import "context"

func newGCS(ctx context.Context, bucket string) (Store, error) {
	return NewGCSStore(ctx, GCSConfig{Bucket: bucket})
}
