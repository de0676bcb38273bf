package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/osse101/ScrapTracker_Go/internal/backup"
	"github.com/osse101/ScrapTracker_Go/internal/domain"
	"github.com/osse101/ScrapTracker_Go/internal/logger"
	"github.com/osse101/ScrapTracker_Go/internal/metrics"
)

// Export format label values
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ImportFormField is the multipart field carrying the backup document.
const ImportFormField = "file"

// BackupUploader copies a JSON backup off-site and returns its object key.
type BackupUploader interface {
	Upload(ctx context.Context, svc backup.Service) (string, error)
}

// BackupHandler serves exports, imports and off-site uploads.
type BackupHandler struct {
	backups   backup.Service
	uploader  BackupUploader
	dashboard *EntryHandler
}

// NewBackupHandler creates a BackupHandler. uploader may be nil when no
// bucket is configured. Failed imports are reported on dashboard.
func NewBackupHandler(backups backup.Service, uploader BackupUploader, dashboard *EntryHandler) *BackupHandler {
	return &BackupHandler{
		backups:   backups,
		uploader:  uploader,
		dashboard: dashboard,
	}
}

// HandleExportCSV downloads every entry as CSV.
func (h *BackupHandler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, FormatCSV, ContentTypeCSV, domain.BackupCSVFilename, h.backups.ExportCSV)
}

// HandleExportJSON downloads the full backup document.
func (h *BackupHandler) HandleExportJSON(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, FormatJSON, ContentTypeJSON, domain.BackupJSONFilename, h.backups.ExportJSON)
}

func (h *BackupHandler) export(w http.ResponseWriter, r *http.Request, format, contentType, filename string, write func(context.Context, io.Writer) error) {
	log := logger.FromContext(r.Context())

	buf := getBuffer()
	defer putBuffer(buf)

	if err := write(r.Context(), buf); err != nil {
		log.Error("Export failed", "format", format, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set(HeaderContentDisposition, fmt.Sprintf(AttachmentFormat, filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Error("Failed to write export", "format", format, "error", err)
		return
	}

	metrics.Exports.WithLabelValues(format).Inc()
	log.Info("Export served", "format", format)
}

// HandleImport replaces all entries and options with the uploaded backup.
// A rejected document leaves the store untouched.
func (h *BackupHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	file, _, err := r.FormFile(ImportFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			metrics.Imports.WithLabelValues(metrics.ResultFailure).Inc()
			h.dashboard.RenderDashboard(w, r, http.StatusRequestEntityTooLarge, Flash{Error: ErrMsgImportTooLarge})
			return
		}
		h.dashboard.RenderDashboard(w, r, http.StatusBadRequest, Flash{Error: ErrMsgImportFileRequired})
		return
	}
	defer file.Close()

	result, err := h.backups.ImportJSON(ctx, file)
	metrics.Imports.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		code, msg := mapServiceErrorToUserMessage(err)
		if code >= http.StatusInternalServerError {
			log.Error("Import failed", "error", err)
		}
		h.dashboard.RenderDashboard(w, r, code, Flash{Error: msg})
		return
	}

	redirectWithFlash(w, r, "/", Flash{
		Message: fmt.Sprintf(MsgImportedFormat, result.Items, result.Lines, result.Shifts),
	})
}

// HandleS3Backup uploads a JSON backup to the configured bucket.
func (h *BackupHandler) HandleS3Backup(w http.ResponseWriter, r *http.Request) {
	if h.uploader == nil {
		http.Error(w, ErrMsgNotFound, http.StatusNotFound)
		return
	}

	key, err := h.uploader.Upload(r.Context(), h.backups)
	metrics.S3Uploads.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		logger.FromContext(r.Context()).Error("S3 backup failed", "error", err)
		h.dashboard.RenderDashboard(w, r, http.StatusBadGateway, Flash{Error: ErrMsgS3UploadFailed})
		return
	}

	redirectWithFlash(w, r, "/", Flash{Message: fmt.Sprintf(MsgUploadedFormat, key)})
}
