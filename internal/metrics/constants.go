package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameEntriesAdded   = "scrap_entries_added_total"
	MetricNameEntriesDeleted = "scrap_entries_deleted_total"
	MetricNameOptionChanges  = "scrap_option_changes_total"
	MetricNameExports        = "scrap_exports_total"
	MetricNameImports        = "scrap_imports_total"
	MetricNameLogins         = "scrap_logins_total"
	MetricNameS3Uploads      = "scrap_s3_uploads_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextEntriesAdded   = "Total number of scrap entries recorded"
	HelpTextEntriesDeleted = "Total number of scrap entry delete requests"
	HelpTextOptionChanges  = "Total number of option group changes that modified the store"
	HelpTextExports        = "Total number of exports served"
	HelpTextImports        = "Total number of backup imports attempted"
	HelpTextLogins         = "Total number of login attempts"
	HelpTextS3Uploads      = "Total number of backup uploads to S3"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelLine   = "line"
	LabelGroup  = "group"
	LabelAction = "action"
	LabelFormat = "format"
	LabelResult = "result"
)

// Label values
const (
	ActionAdd       = "add"
	ActionRemove    = "remove"
	ResultSuccess   = "success"
	ResultFailure   = "failure"
	ResultThrottled = "throttled"
	UnmatchedRoute  = "unmatched"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
