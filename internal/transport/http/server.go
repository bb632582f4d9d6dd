// Package http exposes the pipeline to GUI front-ends and operators: a
// health probe, a process-range trigger, produced-report listing and
// prometheus metrics.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"nsecli/internal/config"
	apierrors "nsecli/internal/errors"
	"nsecli/internal/operations"
	"nsecli/pkg/contracts/domain"
)

// Server is the HTTP front-end over the processing pipeline.
type Server struct {
	cfg      config.ServerConfig
	paths    *config.Paths
	runner   *operations.Runner
	metrics  http.Handler
	validate *validator.Validate
	http     *http.Server
}

// NewServer wires the router. metricsHandler serves GET /metrics and may
// be nil to disable the endpoint.
func NewServer(cfg config.ServerConfig, paths *config.Paths, runner *operations.Runner, metricsHandler http.Handler) *Server {
	s := &Server{
		cfg:      cfg,
		paths:    paths,
		runner:   runner,
		metrics:  metricsHandler,
		validate: validator.New(),
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/process", s.handleProcess)
		r.Get("/reports", s.handleListReports)
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe blocks serving requests until Shutdown.
func (s *Server) ListenAndServe() error {
	slog.Info("http server listening", slog.String("addr", s.http.Addr))
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

// ProcessRequest triggers processing of a date range for one category.
type ProcessRequest struct {
	Category        string `json:"category" validate:"required,oneof=indices equities futures"`
	From            string `json:"from" validate:"required,datetime=2006-01-02"`
	To              string `json:"to" validate:"omitempty,datetime=2006-01-02"`
	IncludeWeekends bool   `json:"include_weekends"`
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req ProcessRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		render.Render(w, r, apierrors.ValidationFailedWithError(err))
		return
	}

	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		render.Render(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	to := from
	if req.To != "" {
		if to, err = time.Parse("2006-01-02", req.To); err != nil {
			render.Render(w, r, apierrors.InvalidRequestWithError(err))
			return
		}
	}
	if to.Before(from) {
		render.Render(w, r, apierrors.NewWithDetails(http.StatusBadRequest,
			"INVALID_REQUEST", "Invalid request format", "to precedes from"))
		return
	}

	summary, err := s.runner.ProcessRange(r.Context(),
		domain.Category(req.Category),
		domain.DateRange{From: from, To: to},
		operations.Options{IncludeWeekends: req.IncludeWeekends})
	if err != nil {
		render.Render(w, r, apierrors.InternalServerError(err))
		return
	}
	render.JSON(w, r, summary)
}

// ReportInfo describes one produced output file.
type ReportInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.paths.ReportsDir)
	if err != nil {
		if os.IsNotExist(err) {
			render.JSON(w, r, []ReportInfo{})
			return
		}
		render.Render(w, r, apierrors.InternalServerError(err))
		return
	}

	reports := make([]ReportInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		reports = append(reports, ReportInfo{Name: entry.Name(), Size: info.Size()})
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].Name < reports[j].Name })
	render.JSON(w, r, reports)
}
