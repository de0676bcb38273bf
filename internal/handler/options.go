package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/ScrapTracker_Go/internal/domain"
	"github.com/osse101/ScrapTracker_Go/internal/logger"
	"github.com/osse101/ScrapTracker_Go/internal/metrics"
	"github.com/osse101/ScrapTracker_Go/internal/option"
)

var groupTitles = map[domain.OptionGroup]string{
	domain.OptionGroupLine:  "Lines",
	domain.OptionGroupShift: "Shifts",
}

// HandleOptionsPage renders the editor for every option group.
func HandleOptionsPage(options option.Service, renderer *Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		page := OptionsPage{Flash: flashFromRequest(r)}
		for _, group := range domain.OptionGroups {
			values, err := options.List(ctx, group)
			if err != nil {
				logger.FromContext(ctx).Error("Failed to list options", "group", group, "error", err)
				http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
				return
			}
			page.Groups = append(page.Groups, OptionGroupView{
				Name:   group,
				Title:  groupTitles[group],
				Values: values,
			})
		}

		renderer.Render(w, http.StatusOK, PageOptions, page)
	}
}

// HandleAddOption adds the posted value to the group URL parameter.
// Empty and duplicate values are ignored.
func HandleAddOption(options option.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := parseOptionForm(w, r)
		if !ok {
			return
		}

		group := domain.OptionGroup(form.Group)
		added, err := options.Add(r.Context(), group, form.Value)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to add option", "group", group, "error", err)
			http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
			return
		}
		if added {
			metrics.OptionChanges.WithLabelValues(string(group), metrics.ActionAdd).Inc()
		}

		http.Redirect(w, r, "/options", http.StatusSeeOther)
	}
}

// HandleDeleteOption removes the posted value from the group URL
// parameter. Removing the last value of a group is refused without a
// message, the same as removing a value that does not exist.
func HandleDeleteOption(options option.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := parseOptionForm(w, r)
		if !ok {
			return
		}

		log := logger.FromContext(r.Context())
		group := domain.OptionGroup(form.Group)
		removed, err := options.Remove(r.Context(), group, form.Value)
		if err != nil {
			log.Error("Failed to remove option", "group", group, "error", err)
			http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
			return
		}
		if removed {
			metrics.OptionChanges.WithLabelValues(string(group), metrics.ActionRemove).Inc()
		} else {
			log.Info("Option not removed", "group", group, "value", form.Value)
		}

		http.Redirect(w, r, "/options", http.StatusSeeOther)
	}
}

// parseOptionForm reads and validates an option post. It writes the error
// response itself and returns false when the request is rejected.
func parseOptionForm(w http.ResponseWriter, r *http.Request) (OptionForm, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrMsgInvalidRequest, http.StatusBadRequest)
		return OptionForm{}, false
	}

	form := OptionForm{
		Group: chi.URLParam(r, "group"),
		Value: r.PostFormValue("value"),
	}
	if err := GetValidator().ValidateStruct(form); err != nil {
		fields := FormatValidationError(err)
		if _, badGroup := fields["group"]; badGroup {
			http.Error(w, ErrMsgNotFound, http.StatusNotFound)
			return OptionForm{}, false
		}
		http.Error(w, summarizeFields(fields), http.StatusBadRequest)
		return OptionForm{}, false
	}
	return form, true
}
