package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/idilsaglam/sheettracker/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	PathExcel  = "/api/parse/excel"
	PathGitHub = "/api/parse/github"

	uploadField = "file"
)

// Config holds the gateway server configuration
type Config struct {
	Addr           string
	MaxUploadBytes int64
}

// DefaultConfig returns the default gateway configuration
func DefaultConfig() Config {
	return Config{
		Addr:           "127.0.0.1:8080",
		MaxUploadBytes: 10 << 20,
	}
}

// Server serves the import endpoints.
type Server struct {
	cfg        Config
	svc        *Service
	logger     *zap.Logger
	registry   *prometheus.Registry
	metrics    *metrics
	httpServer *http.Server
}

func NewServer(cfg Config, svc *Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultConfig().MaxUploadBytes
	}
	reg := prometheus.NewRegistry()
	return &Server{
		cfg:      cfg,
		svc:      svc,
		logger:   logger,
		registry: reg,
		metrics:  newMetrics(reg),
	}
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.setupRoutes(mux)
	return s.loggingMiddleware(mux)
}

func (s *Server) setupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST "+PathExcel, s.handleParseExcel)
	mux.HandleFunc("POST "+PathGitHub, s.handleParseGitHub)

	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /health", s.handleHealth)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	s.logger.Info("import gateway listening", zap.String("addr", listener.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	return s.Shutdown(context.Background()) //nolint:contextcheck // parent context cancelled, use background for shutdown
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s.logger.Info("shutting down import gateway")
	return s.httpServer.Shutdown(shutdownCtx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)))
	})
}

func (s *Server) handleParseExcel(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		s.logger.Debug("excel upload rejected", zap.Error(err))
		s.metrics.observe(sourceExcel, outcomeInvalid, 0, start)
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorBody{
				Message: fmt.Sprintf("%s (limit %d bytes)", msgTooLarge, tooLarge.Limit),
				Field:   uploadField,
			})
		case errors.Is(err, http.ErrMissingFile):
			writeJSON(w, http.StatusBadRequest, ErrorBody{Message: msgNoFile, Field: uploadField})
		default:
			writeJSON(w, http.StatusBadRequest, ErrorBody{Message: msgBadBody})
		}
		return
	}
	defer file.Close()

	qs, err := s.svc.ParseWorkbook(r.Context(), header.Filename, file)
	if err != nil {
		s.logger.Error("excel parse error", zap.String("file", header.Filename), zap.Error(err))
		s.metrics.observe(sourceExcel, outcomeFailed, 0, start)
		writeJSON(w, statusFor(err), ErrorBody{Message: msgExcelFailed})
		return
	}
	s.metrics.observe(sourceExcel, outcomeOK, len(qs), start)
	writeQuestions(w, qs)
}

func (s *Server) handleParseGitHub(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req GitHubRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.observe(sourceGitHub, outcomeInvalid, 0, start)
		writeJSON(w, http.StatusBadRequest, ErrorBody{Message: msgBadBody})
		return
	}
	if err := req.Validate(); err != nil {
		s.metrics.observe(sourceGitHub, outcomeInvalid, 0, start)
		writeJSON(w, http.StatusBadRequest, validationBody(err))
		return
	}

	qs, err := s.svc.ParseGitHub(r.Context(), req.URL)
	if err != nil {
		s.logger.Error("github parse error", zap.String("url", req.URL), zap.Error(err))
		s.metrics.observe(sourceGitHub, outcomeFailed, 0, start)
		writeJSON(w, statusFor(err), ErrorBody{Message: msgGitHubFailed})
		return
	}
	s.metrics.observe(sourceGitHub, outcomeOK, len(qs), start)
	writeQuestions(w, qs)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeQuestions(w http.ResponseWriter, qs []model.Question) {
	if qs == nil {
		qs = []model.Question{}
	}
	writeJSON(w, http.StatusOK, qs)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
