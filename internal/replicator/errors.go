package replicator

import (
	"errors"
	"fmt"
)

// ReplicationError represents errors that occur during a backup replication
type ReplicationError struct {
	Kind    ErrorKind              `json:"kind"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *ReplicationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause error
func (e *ReplicationError) Unwrap() error {
	return e.Cause
}

// ErrorKind represents the closed set of replication failure classifications
type ErrorKind string

const (
	// ErrorKindConfiguration marks a missing or invalid required configuration
	// value. Never retryable without operator action.
	ErrorKindConfiguration ErrorKind = "CONFIGURATION_ERROR"
	// ErrorKindMalformedEvent marks an unexpected trigger payload shape.
	// Never retryable without an upstream fix.
	ErrorKindMalformedEvent ErrorKind = "MALFORMED_EVENT"
	// ErrorKindStorage marks a failed copy or notify call, and is the fallback
	// for any otherwise-unclassified error. May be transient.
	ErrorKindStorage ErrorKind = "STORAGE_OPERATION_ERROR"
)

// NewReplicationError creates a new ReplicationError
func NewReplicationError(kind ErrorKind, message string, cause error) *ReplicationError {
	return &ReplicationError{
		Kind:    kind,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// WithContext adds context information to the error
func (e *ReplicationError) WithContext(key string, value interface{}) *ReplicationError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Common error constructors

func NewConfigurationError(message string, cause error) *ReplicationError {
	return NewReplicationError(ErrorKindConfiguration, message, cause)
}

func NewMalformedEventError(message string, cause error) *ReplicationError {
	return NewReplicationError(ErrorKindMalformedEvent, message, cause)
}

func NewStorageError(message string, cause error) *ReplicationError {
	return NewReplicationError(ErrorKindStorage, message, cause)
}

// KindOf returns the classification of an error. Errors that are not
// ReplicationErrors fall back to ErrorKindStorage, the generic bucket for
// unexpected runtime failures.
func KindOf(err error) ErrorKind {
	var repErr *ReplicationError
	if errors.As(err, &repErr) {
		return repErr.Kind
	}
	return ErrorKindStorage
}

// IsRetryable determines if an error may succeed on a platform-level retry
func IsRetryable(err error) bool {
	return KindOf(err) == ErrorKindStorage
}

// IsPermanent determines if an error requires operator or upstream action
func IsPermanent(err error) bool {
	switch KindOf(err) {
	case ErrorKindConfiguration, ErrorKindMalformedEvent:
		return true
	default:
		return false
	}
}
