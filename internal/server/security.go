package server

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/ScrapTracker_Go/internal/auth"
	"github.com/osse101/ScrapTracker_Go/internal/handler"
	"github.com/osse101/ScrapTracker_Go/internal/logger"
)

// SessionMiddleware redirects requests without a valid session cookie to
// the login page. PublicPaths are always let through.
func SessionMiddleware(sessions *auth.Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(auth.SessionCookieName)
			if err == nil {
				err = sessions.Validate(cookie.Value)
			}
			if err != nil {
				logger.FromContext(r.Context()).Debug(LogMsgSessionRejected,
					"path", r.URL.Path,
					"error", err)
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isPublicPath(path string) bool {
	for _, p := range PublicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// RequestSizeLimitMiddleware limits request body size. Paths in overrides
// get their own limit instead of maxBytes.
func RequestSizeLimitMiddleware(maxBytes int64, overrides map[string]int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limit := maxBytes
			if override, ok := overrides[r.URL.Path]; ok {
				limit = override
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

type window struct {
	start time.Time
	count int
}

// SuspiciousActivityDetector counts requests and failed sign-ins per client
// IP over fixed windows. Only the most recently seen MaxTrackedClients
// addresses are remembered.
type SuspiciousActivityDetector struct {
	mu         sync.Mutex
	failedAuth *expirable.LRU[string, *window]
	requests   *expirable.LRU[string, *window]
	now        func() time.Time
}

func NewSuspiciousActivityDetector() *SuspiciousActivityDetector {
	return &SuspiciousActivityDetector{
		failedAuth: expirable.NewLRU[string, *window](MaxTrackedClients, nil, ActivityWindow),
		requests:   expirable.NewLRU[string, *window](MaxTrackedClients, nil, ActivityWindow),
		now:        time.Now,
	}
}

// bump increments ip's counter in cache, starting a new window when the
// current one has elapsed. Caller must hold the mutex.
func (s *SuspiciousActivityDetector) bump(cache *expirable.LRU[string, *window], ip string) int {
	now := s.now()
	w, ok := cache.Get(ip)
	if !ok || now.Sub(w.start) > ActivityWindow {
		w = &window{start: now}
		cache.Add(ip, w)
	}
	w.count++
	return w.count
}

// RecordFailedAuth records a failed sign-in attempt
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := s.bump(s.failedAuth, ip)
	if count >= MaxFailedLogins {
		slog.Warn(SecurityAlertFailedAuth,
			"ip", ip,
			"count", count)
	}
}

// LoginBlocked reports whether ip has used up its failed sign-ins for the
// current window.
func (s *SuspiciousActivityDetector) LoginBlocked(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.failedAuth.Get(ip)
	if !ok || s.now().Sub(w.start) > ActivityWindow {
		return false
	}
	return w.count >= MaxFailedLogins
}

// ResetFailedAuth forgets ip's failed sign-ins after a successful one.
func (s *SuspiciousActivityDetector) ResetFailedAuth(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failedAuth.Remove(ip)
}

// RecordRequest records a request for rate monitoring and returns false if rate limit exceeded
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := s.bump(s.requests, ip)
	if count > MaxRequestsPerWindow {
		if count%HighRateLogEvery == 0 {
			slog.Warn(SecurityAlertHighRate,
				"ip", ip,
				"count_in_window", count)
		}
		return false
	}
	return true
}

// SecurityLoggingMiddleware enforces the per-IP request rate and makes the
// resolved client IP available to handlers.
func SecurityLoggingMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := extractIP(r, trustedProxies)

			if !detector.RecordRequest(ip) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r.WithContext(handler.WithClientIP(r.Context(), ip)))
		})
	}
}

// extractIP gets the client IP address from request.
// It only trusts X-Forwarded-For if the request comes from a trusted proxy.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	isTrusted := false
	for _, proxy := range trustedProxies {
		if proxy == remoteIP {
			isTrusted = true
			break
		}
	}

	if isTrusted {
		forwarded := r.Header.Get(HeaderForwardedFor)
		if forwarded != "" {
			// For X-Forwarded-For: client, proxy1, proxy2
			// the rightmost entry was appended by our trusted proxy.
			ips := strings.Split(forwarded, ",")
			return strings.TrimSpace(ips[len(ips)-1])
		}
	}

	return remoteIP
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(HeaderContentType, HeaderValueNoSniff)
			w.Header().Set(HeaderFrameOptions, HeaderValueSameOrigin)
			w.Header().Set(HeaderXSSProtection, HeaderValueXSSBlock)
			w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			w.Header().Set(HeaderCSP, HeaderValueCSP)

			next.ServeHTTP(w, r)
		})
	}
}
