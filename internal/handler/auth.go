package handler

import (
	"net/http"
	"time"

	"github.com/osse101/ScrapTracker_Go/internal/auth"
	"github.com/osse101/ScrapTracker_Go/internal/logger"
	"github.com/osse101/ScrapTracker_Go/internal/metrics"
)

// LoginGuard throttles password guessing per client address.
type LoginGuard interface {
	LoginBlocked(ip string) bool
	RecordFailedAuth(ip string)
	ResetFailedAuth(ip string)
}

// AuthHandler serves the sign-in and sign-out endpoints.
type AuthHandler struct {
	verifier      *auth.Verifier
	sessions      *auth.Sessions
	guard         LoginGuard
	renderer      *Renderer
	secureCookies bool
}

// NewAuthHandler creates an AuthHandler. secureCookies marks the session
// cookie Secure, which browsers only send over HTTPS.
func NewAuthHandler(verifier *auth.Verifier, sessions *auth.Sessions, guard LoginGuard, renderer *Renderer, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		verifier:      verifier,
		sessions:      sessions,
		guard:         guard,
		renderer:      renderer,
		secureCookies: secureCookies,
	}
}

// HandleLoginPage shows the sign-in form, or skips to the dashboard when
// the request already carries a valid session.
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookieName); err == nil && h.sessions.Validate(cookie.Value) == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderer.Render(w, http.StatusOK, PageLogin, LoginPage{Flash: flashFromRequest(r)})
}

// HandleLogin checks the posted password and issues a session cookie.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	ip := ClientIP(r)

	if h.guard.LoginBlocked(ip) {
		metrics.Logins.WithLabelValues(metrics.ResultThrottled).Inc()
		log.Warn(LogMsgLoginThrottled, "ip", ip)
		h.renderer.Render(w, http.StatusTooManyRequests, PageLogin, LoginPage{Flash: Flash{Error: ErrMsgTooManyLoginAttempt}})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrMsgInvalidRequest, http.StatusBadRequest)
		return
	}

	form := LoginForm{Password: r.PostFormValue("password")}
	if err := GetValidator().ValidateStruct(form); err != nil {
		h.renderer.Render(w, http.StatusBadRequest, PageLogin, LoginPage{Flash: Flash{Error: ErrMsgPasswordRequired}})
		return
	}

	if !h.verifier.Verify(form.Password) {
		h.guard.RecordFailedAuth(ip)
		metrics.Logins.WithLabelValues(metrics.ResultFailure).Inc()
		log.Warn(LogMsgLoginFailed, "ip", ip)
		h.renderer.Render(w, http.StatusUnauthorized, PageLogin, LoginPage{Flash: Flash{Error: ErrMsgIncorrectPassword}})
		return
	}

	token, expires, err := h.sessions.Issue()
	if err != nil {
		log.Error("Failed to issue session", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	h.guard.ResetFailedAuth(ip)
	metrics.Logins.WithLabelValues(metrics.ResultSuccess).Inc()
	log.Info(LogMsgLoginSucceeded, "ip", ip)

	http.SetCookie(w, h.sessionCookie(token, expires))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout clears the session cookie.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	cookie := h.sessionCookie("", time.Unix(0, 0))
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)
	redirectWithFlash(w, r, "/login", Flash{Message: MsgSignedOut})
}

func (h *AuthHandler) sessionCookie(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
