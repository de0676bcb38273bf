package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/ScrapTracker_Go/internal/auth"
	"github.com/osse101/ScrapTracker_Go/internal/backup"
	"github.com/osse101/ScrapTracker_Go/internal/entry"
	"github.com/osse101/ScrapTracker_Go/internal/handler"
	"github.com/osse101/ScrapTracker_Go/internal/logger"
	"github.com/osse101/ScrapTracker_Go/internal/metrics"
	"github.com/osse101/ScrapTracker_Go/internal/option"
)

// Config carries everything the HTTP server routes to.
type Config struct {
	Port           int
	TrustedProxies []string
	SecureCookies  bool

	Store    handler.Pinger
	Verifier *auth.Verifier
	Sessions *auth.Sessions

	Entries entry.Service
	Options option.Service
	Backups backup.Service
	// Uploader is nil when off-site backups are disabled.
	Uploader handler.BackupUploader
}

type Server struct {
	httpServer *http.Server
	detector   *SuspiciousActivityDetector
}

// NewServer creates a new Server instance
func NewServer(cfg Config) (*Server, error) {
	renderer, err := handler.NewRenderer()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(SecurityLoggingMiddleware(cfg.TrustedProxies, detector))
	r.Use(SessionMiddleware(cfg.Sessions))
	r.Use(RequestSizeLimitMiddleware(DefaultMaxRequestBytes, map[string]int64{
		ImportPath: backup.MaxImportBytes + ImportMultipartOverhead,
	}))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(cfg.Store))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	authHandler := handler.NewAuthHandler(cfg.Verifier, cfg.Sessions, detector, renderer, cfg.SecureCookies)
	r.Get(LoginPath, authHandler.HandleLoginPage)
	r.Post(LoginPath, authHandler.HandleLogin)
	r.Post("/logout", authHandler.HandleLogout)

	entryHandler := handler.NewEntryHandler(cfg.Entries, cfg.Options, renderer, cfg.Uploader != nil)
	r.Get("/", entryHandler.HandleDashboard)
	r.Post("/add", entryHandler.HandleAdd)
	r.Post("/delete/{id:[0-9]+}", entryHandler.HandleDelete)

	r.Route("/options", func(r chi.Router) {
		r.Get("/", handler.HandleOptionsPage(cfg.Options, renderer))
		r.Post("/{group}/add", handler.HandleAddOption(cfg.Options))
		r.Post("/{group}/delete", handler.HandleDeleteOption(cfg.Options))
	})

	backupHandler := handler.NewBackupHandler(cfg.Backups, cfg.Uploader, entryHandler)
	r.Get("/export.csv", backupHandler.HandleExportCSV)
	r.Get("/export.json", backupHandler.HandleExportJSON)
	r.Post(ImportPath, backupHandler.HandleImport)
	r.Post("/backup/s3", backupHandler.HandleS3Backup)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		detector: detector,
	}, nil
}

// Handler returns the routed middleware stack.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderCookie) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on l until Stop is called.
func (s *Server) Serve(l net.Listener) error {
	slog.Default().Info(LogMsgServerStarting, "addr", l.Addr().String())
	return s.httpServer.Serve(l)
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
