package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ScrapTracker_Go/internal/backup"
	"github.com/osse101/ScrapTracker_Go/internal/testing/leaktest"
)

type testJob struct {
	executed *int32
	done     chan struct{}
}

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	j.done <- struct{}{}
	return nil
}

func TestPool(t *testing.T) {
	leaktest.VerifyNone(t)

	var executed int32
	pool := NewPool(TestWorkerCount, TestQueueSize)
	pool.Start()

	job := &testJob{executed: &executed, done: make(chan struct{}, TestQueueSize)}
	assert.True(t, pool.Enqueue(job))
	assert.True(t, pool.Enqueue(job))

	for i := 0; i < TestExpectedJobCount; i++ {
		select {
		case <-job.done:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for jobs")
		}
	}

	pool.Stop()
	assert.Equal(t, int32(TestExpectedJobCount), atomic.LoadInt32(&executed))
}

type blockingJob struct {
	started chan struct{}
}

func (j *blockingJob) Process(ctx context.Context) error {
	close(j.started)
	<-ctx.Done()
	return ctx.Err()
}

func TestPool_StopCancelsRunningJobs(t *testing.T) {
	leaktest.VerifyNone(t)

	pool := NewPool(1, 1)
	pool.Start()

	job := &blockingJob{started: make(chan struct{})}
	require.True(t, pool.Enqueue(job))
	<-job.started

	pool.Stop()
	pool.Stop()

	assert.False(t, pool.Enqueue(job), "stopped pool rejects jobs")
}

func TestPool_EnqueueFullQueue(t *testing.T) {
	pool := NewPool(0, 1)
	defer pool.Stop()

	var executed int32
	job := &testJob{executed: &executed, done: make(chan struct{}, 2)}
	assert.True(t, pool.Enqueue(job))
	assert.False(t, pool.Enqueue(job))
}

type fakeUploader struct {
	key string
	err error
}

func (f *fakeUploader) Upload(ctx context.Context, _ backup.Service) (string, error) {
	return f.key, f.err
}

func TestBackupJob(t *testing.T) {
	err := NewBackupJob(&fakeUploader{key: "scrap-backup.json"}, nil).Process(context.Background())
	require.NoError(t, err)

	boom := errors.New("bucket unreachable")
	err = NewBackupJob(&fakeUploader{err: boom}, nil).Process(context.Background())
	assert.ErrorIs(t, err, boom)
}
