package replicator

import (
	"context"
	"fmt"
	"net/url"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// S3ObjectStore implements ObjectStore for Amazon S3
type S3ObjectStore struct {
	client s3iface.S3API
	bucket string
}

// NewS3ObjectStore creates a new S3ObjectStore instance using the default
// credential chain. A custom endpoint enables S3-compatible stores such as
// MinIO.
func NewS3ObjectStore(config *Config) (*S3ObjectStore, error) {
	if config == nil {
		return nil, NewConfigurationError("S3 storage configuration is required", nil)
	}

	awsConfig := &aws.Config{
		Region: aws.String(config.Region),
	}
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, NewStorageError("failed to create AWS session", err)
	}

	return &S3ObjectStore{
		client: s3.New(sess),
		bucket: config.BackupBucket,
	}, nil
}

// NewS3ObjectStoreWithClient creates an S3ObjectStore around an existing
// client, letting tests substitute a fake
func NewS3ObjectStoreWithClient(client s3iface.S3API, bucket string) *S3ObjectStore {
	return &S3ObjectStore{
		client: client,
		bucket: bucket,
	}
}

// Copy performs a single server-side copy into the destination bucket,
// requesting AES256 server-side encryption at rest
func (s3s *S3ObjectStore) Copy(ctx context.Context, req CopyRequest) (*CopyResult, error) {
	if req.SourceBucket == "" || req.ObjectKey == "" || req.DestinationBucket == "" {
		return nil, NewStorageError("copy request requires source bucket, object key, and destination bucket", nil)
	}

	// CopySource must be URL-encoded per the S3 API
	copySource := url.QueryEscape(req.SourceBucket + "/" + req.ObjectKey)

	output, err := s3s.client.CopyObjectWithContext(ctx, &s3.CopyObjectInput{
		CopySource:           aws.String(copySource),
		Bucket:               aws.String(req.DestinationBucket),
		Key:                  aws.String(req.ObjectKey),
		ServerSideEncryption: aws.String(s3.ServerSideEncryptionAes256),
	})
	if err != nil {
		return nil, NewStorageError(
			fmt.Sprintf("failed to copy s3://%s/%s to s3://%s/%s",
				req.SourceBucket, req.ObjectKey, req.DestinationBucket, req.ObjectKey),
			err,
		)
	}

	result := &CopyResult{
		Encryption: s3.ServerSideEncryptionAes256,
	}
	if output.CopyObjectResult != nil && output.CopyObjectResult.ETag != nil {
		result.ETag = *output.CopyObjectResult.ETag
	}

	return result, nil
}

// HealthCheck verifies that the backup bucket is accessible
func (s3s *S3ObjectStore) HealthCheck(ctx context.Context) error {
	_, err := s3s.client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s3s.bucket),
	})
	if err != nil {
		return NewStorageError("S3 object store health check failed: backup bucket not accessible", err)
	}
	return nil
}

// Provider returns the backend type
func (s3s *S3ObjectStore) Provider() StorageProviderType {
	return StorageProviderS3
}
