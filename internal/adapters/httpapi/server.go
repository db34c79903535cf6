package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/craftreq/internal/adapters/metrics"
	craftingQueries "github.com/andrescamacho/craftreq/internal/application/crafting/queries"
	"github.com/andrescamacho/craftreq/internal/application/logging"
	"github.com/andrescamacho/craftreq/internal/application/mediator"
	"github.com/andrescamacho/craftreq/internal/domain/crafting"
)

const maxBodyBytes = 1 << 20

// Config configures the HTTP surface
type Config struct {
	Mediator mediator.Mediator
	Logger   logging.Logger

	// RequestsPerSecond and Burst bound the /v1 endpoints; zero disables limiting
	RequestsPerSecond float64
	Burst             int

	// MetricsPath serves the Prometheus registry when metrics are enabled
	MetricsPath string
}

// Server exposes craftability checks and success estimates over HTTP+JSON
type Server struct {
	mediator    mediator.Mediator
	logger      logging.Logger
	limiter     *rate.Limiter
	metricsPath string
}

// NewServer creates a server from the config
func NewServer(cfg Config) (*Server, error) {
	if cfg.Mediator == nil {
		return nil, fmt.Errorf("mediator cannot be nil")
	}
	s := &Server{
		mediator:    cfg.Mediator,
		logger:      cfg.Logger,
		metricsPath: cfg.MetricsPath,
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return s, nil
}

// Handler returns the routed handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusOK)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.Handle("POST /v1/check", s.limited(s.handleCheck))
	mux.Handle("POST /v1/chance", s.limited(s.handleChance))
	mux.Handle("GET /v1/declarations/{id}/evaluations", s.limited(s.handleEvaluations))

	if metrics.IsEnabled() && s.metricsPath != "" {
		mux.Handle("GET "+s.metricsPath, promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	}
	return mux
}

func (s *Server) limited(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			writeError(rw, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		if s.logger != nil {
			r = r.WithContext(logging.WithLogger(r.Context(), s.logger))
		}
		next(rw, r)
	})
}

func (s *Server) handleCheck(rw http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(rw, http.StatusBadRequest, err.Error())
		return
	}
	if req.DeclarationID == "" || req.InventoryID == "" {
		writeError(rw, http.StatusBadRequest, "declaration_id and inventory_id are required")
		return
	}
	if req.Batch < 0 || req.Batch > crafting.MaxBatch {
		writeError(rw, http.StatusBadRequest, fmt.Sprintf("batch must be between 0 and %d", crafting.MaxBatch))
		return
	}

	resp, err := s.mediator.Send(r.Context(), &craftingQueries.CheckCraftabilityQuery{
		DeclarationID: req.DeclarationID,
		InventoryID:   req.InventoryID,
		Batch:         req.Batch,
	})
	if err != nil {
		writeHandlerError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, newCheckResponse(resp.(*craftingQueries.CheckCraftabilityResponse)))
}

func (s *Server) handleChance(rw http.ResponseWriter, r *http.Request) {
	var req chanceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(rw, http.StatusBadRequest, err.Error())
		return
	}
	if req.DeclarationID == "" || req.ActorID == "" {
		writeError(rw, http.StatusBadRequest, "declaration_id and actor_id are required")
		return
	}

	resp, err := s.mediator.Send(r.Context(), &craftingQueries.EstimateSuccessQuery{
		DeclarationID:      req.DeclarationID,
		ActorID:            req.ActorID,
		DifficultyModifier: req.DifficultyModifier,
	})
	if err != nil {
		writeHandlerError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, newChanceResponse(resp.(*craftingQueries.EstimateSuccessResponse)))
}

func (s *Server) handleEvaluations(rw http.ResponseWriter, r *http.Request) {
	resp, err := s.mediator.Send(r.Context(), &craftingQueries.ListEvaluationsQuery{
		DeclarationID: r.PathValue("id"),
		Limit:         50,
	})
	if err != nil {
		writeHandlerError(rw, err)
		return
	}
	writeJSON(rw, http.StatusOK, newEvaluationsResponse(resp.(*craftingQueries.ListEvaluationsResponse)))
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("bad request body: %w", err)
	}
	return nil
}

func writeHandlerError(rw http.ResponseWriter, err error) {
	var notFound *crafting.ErrDeclarationNotFound
	if errors.As(err, &notFound) {
		writeError(rw, http.StatusNotFound, err.Error())
		return
	}
	var outOfRange *crafting.ErrBatchOutOfRange
	if errors.As(err, &outOfRange) {
		writeError(rw, http.StatusBadRequest, err.Error())
		return
	}
	writeError(rw, http.StatusUnprocessableEntity, err.Error())
}

func writeError(rw http.ResponseWriter, status int, message string) {
	writeJSON(rw, status, errorResponse{Error: message})
}

func writeJSON(rw http.ResponseWriter, status int, v any) {
	rw.Header().Set("content-type", "application/json")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(v)
}
