package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/ScrapTracker_Go/internal/domain"
	"github.com/osse101/ScrapTracker_Go/internal/entry"
	"github.com/osse101/ScrapTracker_Go/internal/logger"
	"github.com/osse101/ScrapTracker_Go/internal/metrics"
	"github.com/osse101/ScrapTracker_Go/internal/option"
	"github.com/osse101/ScrapTracker_Go/internal/stats"
	"github.com/osse101/ScrapTracker_Go/internal/utils"
)

// EntryHandler serves the dashboard and the entry mutations.
type EntryHandler struct {
	entries   entry.Service
	options   option.Service
	renderer  *Renderer
	s3Enabled bool
}

// NewEntryHandler creates an EntryHandler. s3Enabled shows the off-site
// backup button on the dashboard.
func NewEntryHandler(entries entry.Service, options option.Service, renderer *Renderer, s3Enabled bool) *EntryHandler {
	return &EntryHandler{
		entries:   entries,
		options:   options,
		renderer:  renderer,
		s3Enabled: s3Enabled,
	}
}

// HandleDashboard lists entries matching the query filter together with
// their totals.
func (h *EntryHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	h.RenderDashboard(w, r, http.StatusOK, flashFromRequest(r))
}

// RenderDashboard renders the dashboard with status and flash. A rejected
// filter is reported in the flash and shows no rows.
func (h *EntryHandler) RenderDashboard(w http.ResponseWriter, r *http.Request, status int, flash Flash) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	page := DashboardPage{
		Flash:     flash,
		Filter:    filterFromQuery(r.URL.Query()),
		S3Enabled: h.s3Enabled,
	}

	var err error
	if page.Lines, err = h.options.List(ctx, domain.OptionGroupLine); err != nil {
		log.Error("Failed to list line options", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}
	if page.Shifts, err = h.options.List(ctx, domain.OptionGroupShift); err != nil {
		log.Error("Failed to list shift options", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	page.Entries, err = h.entries.Query(ctx, page.Filter, domain.SortNewestFirst)
	if err != nil {
		code, msg := mapServiceErrorToUserMessage(err)
		if code >= http.StatusInternalServerError {
			log.Error("Failed to query entries", "error", err)
			http.Error(w, msg, code)
			return
		}
		log.Debug("Rejected entry filter", "error", err)
		status = code
		page.Flash.Error = msg
	}
	page.Totals = stats.Aggregate(page.Entries)

	h.renderer.Render(w, status, PageDashboard, page)
}

// HandleAdd records a new entry from the posted form.
func (h *EntryHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		log.Warn("Failed to parse entry form", "error", err)
		http.Error(w, ErrMsgInvalidRequest, http.StatusBadRequest)
		return
	}

	form := entryFormFromRequest(r)
	if _, err := h.entries.Insert(ctx, form); err != nil {
		code, msg := mapServiceErrorToUserMessage(err)
		if code >= http.StatusInternalServerError {
			log.Error("Failed to add entry", "error", err)
		} else {
			log.Info("Entry rejected", "error", err)
		}
		h.RenderDashboard(w, r, code, Flash{Error: msg})
		return
	}

	metrics.EntriesAdded.WithLabelValues(utils.NormalizeText(form.Line)).Inc()
	redirectWithFlash(w, r, "/", Flash{Message: MsgEntryAdded})
}

// HandleDelete removes the entry named by the id URL parameter. Deleting a
// missing entry still redirects normally.
func (h *EntryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, ErrMsgInvalidEntryID, http.StatusBadRequest)
		return
	}

	if err := h.entries.Delete(ctx, id); err != nil {
		log.Error("Failed to delete entry", "id", id, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	metrics.EntriesDeleted.Inc()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
