package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/ScrapTracker_Go/internal/backup"
	"github.com/osse101/ScrapTracker_Go/internal/domain"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// redirectWithFlash answers a form post with 303 See Other so a browser
// refresh does not resubmit it.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, path string, flash Flash) {
	q := url.Values{}
	if flash.Message != "" {
		q.Set(QueryFlashMessage, flash.Message)
	}
	if flash.Error != "" {
		q.Set(QueryFlashError, flash.Error)
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// flashFromRequest reads the flash left by redirectWithFlash.
func flashFromRequest(r *http.Request) Flash {
	q := r.URL.Query()
	return Flash{
		Message: q.Get(QueryFlashMessage),
		Error:   q.Get(QueryFlashError),
	}
}

// mapServiceErrorToUserMessage maps domain errors to an HTTP status and a
// message safe to show to the user.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return http.StatusBadRequest, summarizeFields(FormatValidationError(fieldErrs))
		}
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrImport):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidOptionGroup), errors.Is(err, backup.ErrS3NotConfigured):
		return http.StatusNotFound, ErrMsgNotFound
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// summarizeFields joins per-field messages in field order.
func summarizeFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fields[k])
	}
	return strings.Join(parts, "; ")
}
