package replicator

import (
	"context"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSObjectStore implements ObjectStore for Google Cloud Storage
type GCSObjectStore struct {
	client *storage.Client
	bucket string
}

// NewGCSObjectStore creates a new GCSObjectStore instance
func NewGCSObjectStore(ctx context.Context, config *Config) (*GCSObjectStore, error) {
	if config == nil {
		return nil, NewConfigurationError("GCS storage configuration is required", nil)
	}

	var client *storage.Client
	var err error

	if config.GCSCredentialsPath != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(config.GCSCredentialsPath))
	} else {
		// Use default credentials (e.g., from environment or metadata server)
		client, err = storage.NewClient(ctx)
	}
	if err != nil {
		return nil, NewStorageError("failed to create GCS client", err)
	}

	return &GCSObjectStore{
		client: client,
		bucket: config.BackupBucket,
	}, nil
}

// Copy performs a server-side copy between buckets. GCS encrypts all
// objects at rest with Google-managed keys, so no explicit encryption
// request is needed.
func (gcs *GCSObjectStore) Copy(ctx context.Context, req CopyRequest) (*CopyResult, error) {
	if req.SourceBucket == "" || req.ObjectKey == "" || req.DestinationBucket == "" {
		return nil, NewStorageError("copy request requires source bucket, object key, and destination bucket", nil)
	}

	src := gcs.client.Bucket(req.SourceBucket).Object(req.ObjectKey)
	dst := gcs.client.Bucket(req.DestinationBucket).Object(req.ObjectKey)

	attrs, err := dst.CopierFrom(src).Run(ctx)
	if err != nil {
		return nil, NewStorageError(
			"failed to copy gs://"+req.SourceBucket+"/"+req.ObjectKey+
				" to gs://"+req.DestinationBucket+"/"+req.ObjectKey,
			err,
		)
	}

	return &CopyResult{
		ETag:       attrs.Etag,
		Encryption: "Google-managed (at rest)",
	}, nil
}

// HealthCheck verifies that the backup bucket is accessible
func (gcs *GCSObjectStore) HealthCheck(ctx context.Context) error {
	if _, err := gcs.client.Bucket(gcs.bucket).Attrs(ctx); err != nil {
		return NewStorageError("GCS object store health check failed: backup bucket not accessible", err)
	}
	return nil
}

// Provider returns the backend type
func (gcs *GCSObjectStore) Provider() StorageProviderType {
	return StorageProviderGCS
}

// Close releases the underlying client connections
func (gcs *GCSObjectStore) Close() error {
	return gcs.client.Close()
}
