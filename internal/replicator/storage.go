package replicator

import (
	"context"
)

// StorageProviderType identifies an object store backend
type StorageProviderType string

const (
	StorageProviderS3    StorageProviderType = "s3"
	StorageProviderAzure StorageProviderType = "azure"
	StorageProviderGCS   StorageProviderType = "gcs"
)

// CopyRequest describes one server-side copy of an object into the backup
// bucket. The object keeps its key in the destination.
type CopyRequest struct {
	SourceBucket      string
	ObjectKey         string
	DestinationBucket string
}

// CopyResult carries the provider's confirmation of a completed copy
type CopyResult struct {
	// ETag is the content-integrity tag reported by the provider
	ETag string
	// Encryption names the encryption mode applied at rest on the destination
	Encryption string
}

// ObjectStore abstracts the server-side copy operation for different
// storage backends. Implementations perform a single copy call with no
// internal retry; retry policy belongs to the invoking platform.
type ObjectStore interface {
	Copy(ctx context.Context, req CopyRequest) (*CopyResult, error)
	HealthCheck(ctx context.Context) error
	Provider() StorageProviderType
}
