package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest     = "Invalid request body"
	ErrMsgInvalidEntryID     = "Invalid entry id"
	ErrMsgNotFound           = "Not found"
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgPasswordRequired    = "Password is required"
	ErrMsgIncorrectPassword   = "Incorrect password"
	ErrMsgTooManyLoginAttempt = "Too many failed sign-in attempts. Try again in a few minutes."

	ErrMsgImportFileRequired = "Choose a backup file to import"
	ErrMsgImportTooLarge     = "Backup file is too large"
	ErrMsgS3UploadFailed     = "Backup upload failed"
)

// Success messages shown as flashes after a redirect
const (
	MsgEntryAdded     = "Entry added"
	MsgImportedFormat = "Imported %d entries, %d lines and %d shifts"
	MsgUploadedFormat = "Backup uploaded as %s"
	MsgSignedOut      = "Signed out"
)

// Log messages
const (
	LogMsgUnknownTemplate = "Unknown page template"
	LogMsgRenderFailed    = "Failed to render page"
	LogMsgLoginFailed     = "Login failed"
	LogMsgLoginThrottled  = "Login throttled"
	LogMsgLoginSucceeded  = "Login succeeded"
)

// Content types and response headers
const (
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeJSON = "application/json"

	HeaderContentDisposition = "Content-Disposition"
	AttachmentFormat         = `attachment; filename="%s"`
)

// Query parameters carrying flash messages across redirects
const (
	QueryFlashMessage = "msg"
	QueryFlashError   = "err"
)
