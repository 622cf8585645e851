package replicator

import (
	"context"
	"testing"
)

func TestNewObjectStoreDispatch(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		wantErr  bool
		wantKind ErrorKind
	}{
		{
			name:   "s3 provider",
			config: &Config{Provider: StorageProviderS3, BackupBucket: "dst", Region: "us-east-1"},
		},
		{
			name:   "empty provider defaults to s3",
			config: &Config{BackupBucket: "dst", Region: "us-east-1"},
		},
		{
			name: "azure provider",
			config: &Config{
				Provider:         StorageProviderAzure,
				BackupBucket:     "backups",
				AzureAccountName: "testaccount",
				// base64 of "test-account-key"
				AzureAccountKey: "dGVzdC1hY2NvdW50LWtleQ==",
			},
		},
		{
			name:     "azure provider missing account",
			config:   &Config{Provider: StorageProviderAzure, BackupBucket: "backups"},
			wantErr:  true,
			wantKind: ErrorKindConfiguration,
		},
		{
			name:     "unsupported provider",
			config:   &Config{Provider: "ftp", BackupBucket: "dst"},
			wantErr:  true,
			wantKind: ErrorKindConfiguration,
		},
		{
			name:     "nil config",
			config:   nil,
			wantErr:  true,
			wantKind: ErrorKindConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewObjectStore(context.Background(), tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewObjectStore() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if got := KindOf(err); got != tt.wantKind {
					t.Errorf("KindOf() = %q, want %q", got, tt.wantKind)
				}
				return
			}
			if store == nil {
				t.Fatal("NewObjectStore() returned nil store without error")
			}
			wantProvider := tt.config.Provider
			if wantProvider == "" {
				wantProvider = StorageProviderS3
			}
			if store.Provider() != wantProvider {
				t.Errorf("Provider() = %q, want %q", store.Provider(), wantProvider)
			}
		})
	}
}

func TestSupportedProviders(t *testing.T) {
	providers := SupportedProviders()
	if len(providers) != 3 {
		t.Fatalf("SupportedProviders() returned %d providers, want 3", len(providers))
	}

	seen := make(map[StorageProviderType]bool)
	for _, p := range providers {
		seen[p] = true
	}
	for _, want := range []StorageProviderType{StorageProviderS3, StorageProviderAzure, StorageProviderGCS} {
		if !seen[want] {
			t.Errorf("SupportedProviders() missing %q", want)
		}
	}
}
