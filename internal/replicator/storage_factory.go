package replicator

import (
	"context"
	"fmt"
)

// NewObjectStore creates the object store selected by the configuration.
// The S3 provider is the default.
func NewObjectStore(ctx context.Context, config *Config) (ObjectStore, error) {
	if config == nil {
		return nil, NewConfigurationError("storage configuration is required", nil)
	}

	switch config.Provider {
	case StorageProviderS3, "":
		return NewS3ObjectStore(config)

	case StorageProviderAzure:
		return NewAzureObjectStore(config)

	case StorageProviderGCS:
		return NewGCSObjectStore(ctx, config)

	default:
		return nil, NewConfigurationError(fmt.Sprintf("unsupported storage provider: %s", config.Provider), nil)
	}
}

// SupportedProviders returns the object store backends the factory can create
func SupportedProviders() []StorageProviderType {
	return []StorageProviderType{
		StorageProviderS3,
		StorageProviderAzure,
		StorageProviderGCS,
	}
}
