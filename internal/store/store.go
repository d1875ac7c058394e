// Package store implements the object-fetch stage: retrieving one encrypted
// object body and its sidecar metadata from remote object storage.
package store

import (
	"context"

	"github.com/archivebot/decrypt-s3-object/internal/errors"
)

// ObjectStore defines the narrow interface the decrypt pipeline needs from
// remote object storage.
type ObjectStore interface {
	// Fetch retrieves the raw object body and its attached metadata map.
	Fetch(ctx context.Context, bucket, key string) (body []byte, metadata map[string]string, err error)
}

// Fetch error definitions.
//
// NotFound and AccessDenied are terminal from the CLI's perspective;
// Unavailable is the only transient kind. The pipeline never retries either
// way, it only classifies.
var (
	// ErrObjectNotFound indicates the bucket or object key does not exist.
	ErrObjectNotFound = errors.Wrap(errors.ErrNotFound, "object not found")

	// ErrStoreAccessDenied indicates the caller may not read the object.
	ErrStoreAccessDenied = errors.Wrap(errors.ErrAccessDenied, "object store access denied")

	// ErrStoreUnavailable indicates the object store could not be reached
	// or failed for a reason other than the two above.
	ErrStoreUnavailable = errors.Wrap(errors.ErrUnavailable, "object store unavailable")
)
