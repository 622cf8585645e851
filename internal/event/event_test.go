package event

import (
	"errors"
	"testing"
)

func validEventJSON() []byte {
	return []byte(`{
		"Records": [
			{
				"eventSource": "aws:s3",
				"eventName": "ObjectCreated:Put",
				"awsRegion": "us-east-1",
				"eventTime": "2024-01-01T00:00:00Z",
				"s3": {
					"bucket": {"name": "src"},
					"object": {"key": "a.txt", "size": 2048}
				}
			}
		]
	}`)
}

func TestParseValidEvent(t *testing.T) {
	rec, err := Parse(validEventJSON())
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	if rec.SourceBucket != "src" {
		t.Errorf("SourceBucket = %q, want %q", rec.SourceBucket, "src")
	}
	if rec.ObjectKey != "a.txt" {
		t.Errorf("ObjectKey = %q, want %q", rec.ObjectKey, "a.txt")
	}
	if rec.SizeBytes != 2048 {
		t.Errorf("SizeBytes = %d, want %d", rec.SizeBytes, 2048)
	}
	if rec.EventTime != "2024-01-01T00:00:00Z" {
		t.Errorf("EventTime = %q, want %q", rec.EventTime, "2024-01-01T00:00:00Z")
	}
}

func TestParseMissingFields(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantPath string
	}{
		{
			name:     "empty records",
			payload:  `{"Records": []}`,
			wantPath: "Records[0]",
		},
		{
			name:     "no records field",
			payload:  `{}`,
			wantPath: "Records[0]",
		},
		{
			name:     "missing s3 block",
			payload:  `{"Records": [{"eventTime": "2024-01-01T00:00:00Z"}]}`,
			wantPath: "Records[0].s3",
		},
		{
			name:     "missing bucket name",
			payload:  `{"Records": [{"eventTime": "2024-01-01T00:00:00Z", "s3": {"bucket": {}, "object": {"key": "a.txt", "size": 1}}}]}`,
			wantPath: "Records[0].s3.bucket.name",
		},
		{
			name:     "missing object key",
			payload:  `{"Records": [{"eventTime": "2024-01-01T00:00:00Z", "s3": {"bucket": {"name": "src"}, "object": {"size": 1}}}]}`,
			wantPath: "Records[0].s3.object.key",
		},
		{
			name:     "missing object size",
			payload:  `{"Records": [{"eventTime": "2024-01-01T00:00:00Z", "s3": {"bucket": {"name": "src"}, "object": {"key": "a.txt"}}}]}`,
			wantPath: "Records[0].s3.object.size",
		},
		{
			name:     "negative object size",
			payload:  `{"Records": [{"eventTime": "2024-01-01T00:00:00Z", "s3": {"bucket": {"name": "src"}, "object": {"key": "a.txt", "size": -1}}}]}`,
			wantPath: "Records[0].s3.object.size",
		},
		{
			name:     "missing event time",
			payload:  `{"Records": [{"s3": {"bucket": {"name": "src"}, "object": {"key": "a.txt", "size": 1}}}]}`,
			wantPath: "Records[0].eventTime",
		},
		{
			name:     "invalid json",
			payload:  `{not json`,
			wantPath: "Records",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.payload))
			if err == nil {
				t.Fatal("Parse() expected error, got nil")
			}

			var fieldErr *FieldError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("Parse() error = %T, want *FieldError", err)
			}
			if fieldErr.Path != tt.wantPath {
				t.Errorf("FieldError.Path = %q, want %q", fieldErr.Path, tt.wantPath)
			}
		})
	}
}

func TestFieldErrorMessageNamesPath(t *testing.T) {
	err := &FieldError{Path: "Records[0].s3.object.key"}
	want := "invalid event structure - missing required field: Records[0].s3.object.key"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestFirstRecordNilEvent(t *testing.T) {
	if _, err := FirstRecord(nil); err == nil {
		t.Error("FirstRecord(nil) expected error, got nil")
	}
}
