package handler

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/osse101/ScrapTracker_Go/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names
const (
	PageLogin     = "login.html"
	PageDashboard = "dashboard.html"
	PageOptions   = "options.html"
)

var templateFuncs = template.FuncMap{
	"deref": domain.StringValue,
	"dict":  dict,
}

// Flash is a one-shot status line shown above a page.
type Flash struct {
	Message string
	Error   string
}

// LoginPage is the data for the sign-in form.
type LoginPage struct {
	Flash Flash
}

// DashboardPage is the data for the entry list, filters and totals.
type DashboardPage struct {
	Flash     Flash
	Filter    domain.EntryFilter
	Lines     []string
	Shifts    []string
	Entries   []domain.Entry
	Totals    domain.Totals
	S3Enabled bool
}

// OptionsPage is the data for the dropdown editor.
type OptionsPage struct {
	Flash  Flash
	Groups []OptionGroupView
}

// OptionGroupView is one editable group on the options page.
type OptionGroupView struct {
	Name   domain.OptionGroup
	Title  string
	Values []string
}

// Renderer executes the embedded page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page against the shared layout.
func NewRenderer() (*Renderer, error) {
	base, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	pages := make(map[string]*template.Template)
	for _, page := range []string{PageLogin, PageDashboard, PageOptions} {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layout for %s: %w", page, err)
		}
		if _, err := t.ParseFS(templateFS, "templates/"+page); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", page, err)
		}
		pages[page] = t
	}

	return &Renderer{pages: pages}, nil
}

// Render executes page into a pooled buffer and writes it with status.
// Nothing is written to w if execution fails.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) {
	t, ok := r.pages[page]
	if !ok {
		slog.Error(LogMsgUnknownTemplate, "page", page)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	buf := getBuffer()
	defer putBuffer(buf)

	if err := t.ExecuteTemplate(buf, "layout", data); err != nil {
		slog.Error(LogMsgRenderFailed, "page", page, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", ContentTypeHTML)
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New("dict requires key/value pairs")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", kv[i])
		}
		m[key] = kv[i+1]
	}
	return m, nil
}
