package worker

import "time"

// ============================================================================
// Pool Configuration
// ============================================================================

const (
	// DefaultJobTimeout bounds a single job run
	DefaultJobTimeout = 2 * time.Minute
)

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// LogMsgWorkerQueueFull is logged when a job is dropped because the queue is full
const LogMsgWorkerQueueFull = "Worker queue full, job dropped"

// ============================================================================
// Log Messages - Backup Job
// ============================================================================

const (
	LogMsgScheduledBackupStarting  = "Scheduled backup starting"
	LogMsgScheduledBackupCompleted = "Scheduled backup completed"
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
