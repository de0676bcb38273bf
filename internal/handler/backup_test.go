package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ScrapTracker_Go/internal/backup"
	"github.com/osse101/ScrapTracker_Go/internal/entry"
	"github.com/osse101/ScrapTracker_Go/internal/option"
	"github.com/osse101/ScrapTracker_Go/internal/testing/storetest"
)

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, svc backup.Service) (string, error) {
	args := m.Called(ctx, svc)
	return args.String(0), args.Error(1)
}

func newBackupHandler(t *testing.T, uploader BackupUploader) *BackupHandler {
	t.Helper()

	store := storetest.NewSQLite(t)
	renderer, err := NewRenderer()
	require.NoError(t, err)

	defaults := option.StandardDefaults()
	options := option.NewService(store, defaults)
	dashboard := NewEntryHandler(entry.NewService(store.Entries()), options, renderer, uploader != nil)
	return NewBackupHandler(backup.NewService(store, defaults), uploader, dashboard)
}

func TestHandleS3Backup(t *testing.T) {
	t.Run("uploaded", func(t *testing.T) {
		uploader := &mockUploader{}
		uploader.On("Upload", mock.Anything, mock.Anything).Return("backups/tracker-backup-20240101T000000.json", nil)
		h := newBackupHandler(t, uploader)

		rec := httptest.NewRecorder()
		h.HandleS3Backup(rec, httptest.NewRequest(http.MethodPost, "/backup/s3", nil))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		loc, err := url.Parse(rec.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "Backup uploaded as backups/tracker-backup-20240101T000000.json", loc.Query().Get(QueryFlashMessage))
		uploader.AssertExpectations(t)
	})

	t.Run("upload fails", func(t *testing.T) {
		uploader := &mockUploader{}
		uploader.On("Upload", mock.Anything, mock.Anything).Return("", assert.AnError)
		h := newBackupHandler(t, uploader)

		rec := httptest.NewRecorder()
		h.HandleS3Backup(rec, httptest.NewRequest(http.MethodPost, "/backup/s3", nil))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgS3UploadFailed)
		assert.Contains(t, rec.Body.String(), `action="/backup/s3"`)
	})

	t.Run("not configured", func(t *testing.T) {
		h := newBackupHandler(t, nil)

		rec := httptest.NewRecorder()
		h.HandleS3Backup(rec, httptest.NewRequest(http.MethodPost, "/backup/s3", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
