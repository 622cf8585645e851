package replicator

import (
	"github.com/spf13/viper"
)

// Config holds the per-invocation configuration resolved from the execution
// environment. BackupBucket and TopicARN are required; everything else has a
// working default.
type Config struct {
	// BackupBucket is the destination bucket objects are replicated into (BACKUP_BUCKET)
	BackupBucket string
	// TopicARN identifies the notification channel (SNS_TOPIC_ARN)
	TopicARN string
	// Region is the region the storage and notification clients operate in (AWS_REGION)
	Region string
	// Provider selects the object store backend (BACKUP_STORAGE_PROVIDER, default s3)
	Provider StorageProviderType
	// Endpoint overrides the storage endpoint for S3-compatible stores such as MinIO (S3_ENDPOINT)
	Endpoint string
	// GCSCredentialsPath points at a service-account credentials file (GCS_CREDENTIALS_FILE)
	GCSCredentialsPath string
	// AzureAccountName and AzureAccountKey authenticate the Azure provider
	// (AZURE_STORAGE_ACCOUNT, AZURE_STORAGE_KEY)
	AzureAccountName string
	AzureAccountKey  string
}

// environment variable bindings, keyed by viper config key
var configBindings = map[string]string{
	"backup_bucket":           "BACKUP_BUCKET",
	"sns_topic_arn":           "SNS_TOPIC_ARN",
	"aws_region":              "AWS_REGION",
	"backup_storage_provider": "BACKUP_STORAGE_PROVIDER",
	"s3_endpoint":             "S3_ENDPOINT",
	"gcs_credentials_file":    "GCS_CREDENTIALS_FILE",
	"azure_storage_account":   "AZURE_STORAGE_ACCOUNT",
	"azure_storage_key":       "AZURE_STORAGE_KEY",
}

// LoadConfig resolves configuration from the environment. Missing required
// values are not an error here: validation is the handler's first step so a
// configuration failure is classified and reported like any other outcome.
func LoadConfig() *Config {
	v := viper.New()
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("backup_storage_provider", string(StorageProviderS3))

	for key, env := range configBindings {
		// BindEnv only errors on an empty key
		_ = v.BindEnv(key, env)
	}

	return &Config{
		BackupBucket:       v.GetString("backup_bucket"),
		TopicARN:           v.GetString("sns_topic_arn"),
		Region:             v.GetString("aws_region"),
		Provider:           StorageProviderType(v.GetString("backup_storage_provider")),
		Endpoint:           v.GetString("s3_endpoint"),
		GCSCredentialsPath: v.GetString("gcs_credentials_file"),
		AzureAccountName:   v.GetString("azure_storage_account"),
		AzureAccountKey:    v.GetString("azure_storage_key"),
	}
}

// Validate checks that the required configuration values are present.
// The error message names the missing environment variable so the operator
// knows exactly what to fix.
func (c *Config) Validate() error {
	if c == nil {
		return NewConfigurationError("configuration is required", nil)
	}
	if c.BackupBucket == "" {
		return NewConfigurationError("BACKUP_BUCKET environment variable not set", nil)
	}
	if c.TopicARN == "" {
		return NewConfigurationError("SNS_TOPIC_ARN environment variable not set", nil)
	}
	return nil
}
