package replicator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/google/uuid"

	"s3-backup-replicator/internal/event"
	"s3-backup-replicator/internal/logging"
)

// PartialContext carries whichever invocation details were resolved before
// a failure, so failure notifications can report them. Fields start at
// their sentinel values and are filled in as each stage completes.
type PartialContext struct {
	ObjectKey    string
	SourceBucket string
	BackupBucket string
}

// newPartialContext returns a context with every field at its sentinel
func newPartialContext() PartialContext {
	return PartialContext{
		ObjectKey:    SentinelUnknown,
		SourceBucket: SentinelUnknown,
		BackupBucket: SentinelNotConfigured,
	}
}

// Response is the structured result returned to the invoker on success
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// ResponseBody is the JSON payload inside a success Response
type ResponseBody struct {
	Message     string `json:"message"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	SizeBytes   int64  `json:"size_bytes"`
	Timestamp   string `json:"timestamp"`
}

// Handler sequences one backup replication per invocation: validate
// configuration, parse the event, copy the object, notify. On any failure
// it classifies the error, sends one best-effort failure notification, and
// returns the original error so the platform's retry policy can act.
type Handler struct {
	config   *Config
	store    ObjectStore
	notifier Notifier
	logger   *logging.Logger
	metrics  *Metrics
}

// NewHandler creates a handler with injected collaborators
func NewHandler(config *Config, store ObjectStore, notifier Notifier, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Handler{
		config:   config,
		store:    store,
		notifier: notifier,
		logger:   logger,
		metrics:  NewMetrics(),
	}
}

// Metrics returns the handler's invocation metrics collector
func (h *Handler) Metrics() *Metrics {
	return h.metrics
}

// Handle processes one raw storage event. It returns a success Response or
// the classified error; it never swallows a failure.
func (h *Handler) Handle(ctx context.Context, rawEvent []byte) (*Response, error) {
	start := time.Now()
	operationID := uuid.New().String()
	ctx = logging.CreateContextWithOperationID(ctx, operationID)

	h.logger.WithField("operation_id", operationID).Info("Backup operation started")

	pctx := newPartialContext()

	// Step 1: configuration validation. Must fail before any external call,
	// because a missing notification target means failure reporting itself
	// may be impossible.
	if err := h.config.Validate(); err != nil {
		return nil, h.fail(ctx, err, pctx, start)
	}
	pctx.BackupBucket = h.config.BackupBucket

	h.logger.WithFields(map[string]interface{}{
		"backup_bucket": h.config.BackupBucket,
		"topic":         h.config.TopicARN,
		"provider":      string(h.store.Provider()),
	}).Debug("Configuration validated")

	// Step 2: event parsing
	rec, err := event.Parse(rawEvent)
	if err != nil {
		return nil, h.fail(ctx, classifyParseError(err), pctx, start)
	}
	pctx.ObjectKey = rec.ObjectKey
	pctx.SourceBucket = rec.SourceBucket
	h.logger.LogEventReceived(rec.SourceBucket, rec.ObjectKey, rec.SizeBytes, rec.EventTime)

	// Step 3: copy. Single call, no internal retry.
	copyStart := time.Now()
	result, err := h.store.Copy(ctx, CopyRequest{
		SourceBucket:      rec.SourceBucket,
		ObjectKey:         rec.ObjectKey,
		DestinationBucket: h.config.BackupBucket,
	})
	h.logger.LogCopyOperation(rec.SourceBucket, rec.ObjectKey, h.config.BackupBucket, time.Since(copyStart), err)
	if err != nil {
		return nil, h.fail(ctx, err, pctx, start)
	}
	h.logger.WithField("etag", result.ETag).Debug("Copy confirmed by provider")

	// Step 4: success notification. The copy already succeeded, so a
	// notify failure here is logged and the outcome stays Success.
	timestamp := nowTimestamp()
	message := FormatSuccessMessage(rec.ObjectKey, rec.SizeBytes, rec.SourceBucket,
		h.config.BackupBucket, timestamp, result.Encryption)
	messageID, notifyErr := h.notifier.Publish(ctx, SubjectSuccess, message)
	h.logger.LogNotification(h.config.TopicARN, SubjectSuccess, messageID, notifyErr)

	h.metrics.RecordSuccess(time.Since(start))
	h.logger.WithField("operation_id", operationID).Info("Backup operation completed successfully")

	body, err := json.Marshal(ResponseBody{
		Message:     "Backup completed successfully",
		Source:      rec.SourceBucket + "/" + rec.ObjectKey,
		Destination: h.config.BackupBucket + "/" + rec.ObjectKey,
		SizeBytes:   rec.SizeBytes,
		Timestamp:   timestamp,
	})
	if err != nil {
		// Marshaling a flat struct of strings and an int cannot fail at
		// runtime; guard anyway so the contract of never swallowing holds.
		return nil, h.fail(ctx, NewStorageError("failed to encode response body", err), pctx, start)
	}

	return &Response{
		StatusCode: 200,
		Body:       string(body),
	}, nil
}

// fail logs and classifies a failure, attempts exactly one best-effort
// failure notification, and hands the original error back for propagation
func (h *Handler) fail(ctx context.Context, err error, pctx PartialContext, start time.Time) error {
	kind := KindOf(err)

	h.logger.WithFields(map[string]interface{}{
		"error":         err.Error(),
		"error_kind":    string(kind),
		"object_key":    pctx.ObjectKey,
		"source_bucket": pctx.SourceBucket,
		"backup_bucket": pctx.BackupBucket,
	}).Error("Backup operation failed")

	h.metrics.RecordFailure(kind, time.Since(start))

	// Notification is skipped entirely when the target was never resolved
	if h.notifier == nil || h.config == nil || h.config.TopicARN == "" {
		h.logger.Warn("Cannot send failure notification - notification target not available")
		return err
	}

	message := FormatFailureMessage(err.Error(), errorTypeName(err),
		pctx.ObjectKey, pctx.SourceBucket, pctx.BackupBucket)

	// A secondary publish failure is logged and discarded; it must never
	// mask the original error being reported up the stack.
	messageID, notifyErr := h.notifier.Publish(ctx, SubjectFailure, message)
	if notifyErr != nil {
		h.logger.Errorf("Failed to send failure notification: %v", notifyErr)
	} else {
		h.logger.WithField("message_id", messageID).Info("Failure notification sent")
	}

	return err
}

// classifyParseError maps event parsing failures to the malformed-event kind
func classifyParseError(err error) error {
	var fieldErr *event.FieldError
	if errors.As(err, &fieldErr) {
		return NewMalformedEventError(
			fmt.Sprintf("invalid event structure - missing required field: %s", fieldErr.Path),
			fieldErr.Cause,
		)
	}
	return NewMalformedEventError("invalid event payload", err)
}

// errorTypeName names the underlying error category for failure reports:
// the provider error code when one exists, otherwise the concrete Go type
// of the cause, otherwise the classification kind.
func errorTypeName(err error) string {
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		return aerr.Code()
	}

	var repErr *ReplicationError
	if errors.As(err, &repErr) {
		if repErr.Cause != nil {
			return fmt.Sprintf("%T", repErr.Cause)
		}
		return string(repErr.Kind)
	}

	return fmt.Sprintf("%T", err)
}
