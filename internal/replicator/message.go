package replicator

import (
	"fmt"
	"time"
)

// Sentinel values reported for context fields that were never resolved
// before a failure
const (
	SentinelUnknown       = "Unknown"
	SentinelNotConfigured = "Not configured"
)

// Notification subject lines
const (
	SubjectSuccess = "Backup Success - File Replicated"
	SubjectFailure = "Backup FAILURE - Action Required"
)

const timestampLayout = "2006-01-02 15:04:05"

// nowTimestamp returns the current UTC time in the notification format
func nowTimestamp() string {
	return time.Now().UTC().Format(timestampLayout) + " UTC"
}

// FormatSuccessMessage builds the human-readable body of a success
// notification. Pure function; nothing ever parses its output.
func FormatSuccessMessage(objectKey string, sizeBytes int64, sourceBucket, backupBucket, timestamp, encryption string) string {
	sizeMiB := float64(sizeBytes) / (1024 * 1024)

	return fmt.Sprintf(`BACKUP OPERATION SUCCESSFUL

File Details:
-------------
File Name: %s
File Size: %d bytes (%.2f MiB)

Source Location:
---------------
Bucket: %s

Backup Location:
---------------
Bucket: %s

Operation Details:
-----------------
Status: SUCCESS
Timestamp: %s
Encryption: %s

Your file has been successfully replicated to the backup bucket.
This provides protection against regional failures and data loss.

---
Automated Object Backup Replicator
`, objectKey, sizeBytes, sizeMiB, sourceBucket, backupBucket, timestamp, encryption)
}

// FormatFailureMessage builds the human-readable body of a failure
// notification. The timestamp is captured at call time.
func FormatFailureMessage(errorMessage, errorType, objectKey, sourceBucket, backupBucket string) string {
	return fmt.Sprintf(`BACKUP OPERATION FAILED - ACTION REQUIRED

Error Details:
-------------
Error Type: %s
Error Message: %s
Timestamp: %s

File Information:
----------------
File Name: %s
Source Bucket: %s
Backup Bucket: %s

Troubleshooting Steps:
---------------------
1. Check the handler logs for detailed error information
2. Verify credentials and permissions (storage read/write, notification publish)
3. Confirm the backup bucket exists and is accessible
4. Verify environment variables are configured correctly
5. Check the invocation platform timeout settings

---
Automated Object Backup Replicator
`, errorType, errorMessage, nowTimestamp(), objectKey, sourceBucket, backupBucket)
}
