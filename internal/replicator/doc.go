// Package replicator implements the event-triggered backup replication handler.
//
// One invocation handles exactly one object-created event: it validates the
// configuration, parses the event, asks the object store to copy the object
// into the backup bucket with server-side encryption, and publishes a
// notification describing the outcome. The handler makes no scheduling or
// batching decisions and holds no state between invocations; retry policy
// belongs to the invoking platform.
//
// Core components:
//
// - Handler: sequences the invocation and classifies every failure
// - ObjectStore: abstracts the server-side copy for different backends (S3, Azure, GCS)
// - Notifier: abstracts the notification publish call
// - ReplicationError: the closed error taxonomy reported to operators
//
// Example usage:
//
//	cfg := replicator.LoadConfig()
//	store, err := replicator.NewObjectStore(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	handler := replicator.NewHandler(cfg, store, notifier, logger)
//	resp, err := handler.Handle(ctx, rawEvent)
package replicator
