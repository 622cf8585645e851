// Package event defines the storage-event records that trigger a backup
// replication and the parsing logic that extracts the object details from
// the raw notification payload.
package event

import (
	"encoding/json"
	"fmt"
)

// Event is the raw storage notification as delivered by the triggering
// platform. Only the fields read by the handler are modeled.
type Event struct {
	Records []Record `json:"Records"`
}

// Record is a single storage-event record
type Record struct {
	EventSource string  `json:"eventSource,omitempty"`
	EventName   string  `json:"eventName,omitempty"`
	AwsRegion   string  `json:"awsRegion,omitempty"`
	EventTime   *string `json:"eventTime"`
	S3          *S3Data `json:"s3"`
}

// S3Data carries the bucket and object details of a record
type S3Data struct {
	Bucket *BucketData `json:"bucket"`
	Object *ObjectData `json:"object"`
}

// BucketData identifies the bucket the event originated from
type BucketData struct {
	Name *string `json:"name"`
}

// ObjectData identifies the object the event describes
type ObjectData struct {
	Key  *string `json:"key"`
	Size *int64  `json:"size"`
}

// ObjectRecord is the validated, flattened view of the first event record.
// All fields are guaranteed present after a successful Parse.
type ObjectRecord struct {
	SourceBucket string
	ObjectKey    string
	SizeBytes    int64
	EventTime    string
}

// FieldError reports a required field missing from the event payload
type FieldError struct {
	Path  string
	Cause error
}

// Error implements the error interface
func (e *FieldError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid event structure - missing required field: %s (caused by: %v)", e.Path, e.Cause)
	}
	return fmt.Sprintf("invalid event structure - missing required field: %s", e.Path)
}

// Unwrap returns the underlying cause error
func (e *FieldError) Unwrap() error {
	return e.Cause
}

// Parse decodes a raw event payload and extracts the first record.
// A missing nested field is reported as a FieldError naming the full
// path, so callers can surface exactly what the trigger failed to supply.
func Parse(data []byte) (*ObjectRecord, error) {
	var evt Event
	if err := json.Unmarshal(data, &evt); err != nil {
		return nil, &FieldError{Path: "Records", Cause: err}
	}
	return FirstRecord(&evt)
}

// FirstRecord validates the first record of an already-decoded event
func FirstRecord(evt *Event) (*ObjectRecord, error) {
	if evt == nil || len(evt.Records) == 0 {
		return nil, &FieldError{Path: "Records[0]"}
	}

	rec := evt.Records[0]

	if rec.S3 == nil {
		return nil, &FieldError{Path: "Records[0].s3"}
	}
	if rec.S3.Bucket == nil || rec.S3.Bucket.Name == nil || *rec.S3.Bucket.Name == "" {
		return nil, &FieldError{Path: "Records[0].s3.bucket.name"}
	}
	if rec.S3.Object == nil {
		return nil, &FieldError{Path: "Records[0].s3.object"}
	}
	if rec.S3.Object.Key == nil || *rec.S3.Object.Key == "" {
		return nil, &FieldError{Path: "Records[0].s3.object.key"}
	}
	if rec.S3.Object.Size == nil {
		return nil, &FieldError{Path: "Records[0].s3.object.size"}
	}
	if *rec.S3.Object.Size < 0 {
		return nil, &FieldError{Path: "Records[0].s3.object.size", Cause: fmt.Errorf("size must be non-negative, got %d", *rec.S3.Object.Size)}
	}
	if rec.EventTime == nil || *rec.EventTime == "" {
		return nil, &FieldError{Path: "Records[0].eventTime"}
	}

	return &ObjectRecord{
		SourceBucket: *rec.S3.Bucket.Name,
		ObjectKey:    *rec.S3.Object.Key,
		SizeBytes:    *rec.S3.Object.Size,
		EventTime:    *rec.EventTime,
	}, nil
}
