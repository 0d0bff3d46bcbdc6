//go:build !gcp

package exportstore

import (
	"context"
	"fmt"
)

func newGCS(ctx context.Context, bucket string) (Store, error) {
	return nil, fmt.Errorf("GCS export is not enabled in this build (use -tags gcp)")
}
