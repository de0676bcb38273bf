package handler

import (
	"context"
	"net"
	"net/http"
	"net/url"

	"github.com/osse101/ScrapTracker_Go/internal/domain"
)

type clientIPKey struct{}

// WithClientIP stores the resolved client address for handlers that track
// per-client state.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIP returns the address stored by WithClientIP, falling back to the
// host part of RemoteAddr.
func ClientIP(r *http.Request) string {
	if ip, ok := r.Context().Value(clientIPKey{}).(string); ok && ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// filterFromQuery reads the dashboard filter parameters.
func filterFromQuery(q url.Values) domain.EntryFilter {
	return domain.EntryFilter{
		Line:           q.Get("line"),
		Shift:          q.Get("shift"),
		Text:           q.Get("q"),
		ReasonContains: q.Get("reason"),
		DateFrom:       q.Get("from"),
		DateTo:         q.Get("to"),
	}.Normalize()
}

// entryFormFromRequest reads the posted entry fields. Values are left raw
// for the entry service to normalise.
func entryFormFromRequest(r *http.Request) domain.EntryForm {
	return domain.EntryForm{
		Parts:    r.PostFormValue("parts"),
		Line:     r.PostFormValue("line"),
		Reason:   r.PostFormValue("reason"),
		Sequence: r.PostFormValue("sequence"),
		Shift:    r.PostFormValue("shift"),
		Notes:    r.PostFormValue("notes"),
		Comments: r.PostFormValue("comments"),
	}
}
