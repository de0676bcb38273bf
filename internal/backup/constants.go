package backup

import "time"

// MaxImportBytes bounds the size of an uploaded backup document.
const MaxImportBytes = 32 << 20

// S3 upload settings
const (
	S3ContentTypeJSON = "application/json"
	S3KeyTimeLayout   = "20060102T150405"
	S3UploadTimeout   = 30 * time.Second
)

// Error messages
const (
	ErrMsgReadDocument     = "failed to read backup document"
	ErrMsgDocumentTooLarge = "backup document exceeds %d bytes"
	ErrMsgSchema           = "backup document does not match the expected structure"
	ErrMsgDecode           = "failed to decode backup document"
	ErrMsgBadInteger       = "item %d: %s is not an integer"
	ErrMsgBadTimestamp     = "item %d: created_at %q is not YYYY-MM-DD HH:MM:SS"
	ErrMsgDuplicateID      = "item %d: duplicate id %d"
	ErrMsgApplyImport      = "failed to apply backup"
	ErrMsgSnapshot         = "failed to read current state"
	ErrMsgEncodeJSON       = "failed to encode JSON backup"
	ErrMsgWriteCSV         = "failed to write CSV export"
	ErrMsgS3NotConfigured  = "S3 bucket is not configured"
	ErrMsgLoadAWSConfig    = "failed to load AWS config"
	ErrMsgUploadBackup     = "failed to upload backup to S3"
)

// Log messages
const (
	LogMsgImportRejected = "Backup import rejected"
	LogMsgImportApplied  = "Backup import applied"
	LogMsgBackupUploaded = "Backup uploaded to S3"
)
