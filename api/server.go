// Package api - Thin HTTP layer over the quote core
// The API is only responsible for input ingestion, core
// orchestration, and output serialization. It performs no pricing or
// validation logic of its own; every failure kind maps to exactly
// one status code here and nowhere else.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"labquote/adapters/mail"
	"labquote/core/catalog"
	"labquote/core/confirm"
	"labquote/core/quote"
	"labquote/core/request"
	"labquote/internal/errors"
	"labquote/internal/logging"
)

// maxPayloadBytes bounds request bodies; quote payloads are small
const maxPayloadBytes = 1 << 20

// Server is the API server
type Server struct {
	catalog           *catalog.Catalog
	defaultServiceKey string
	deliverer         mail.Deliverer
	mux               *http.ServeMux
	version           string
	logger            *zap.Logger
}

// NewServer creates an API server over a loaded catalog
func NewServer(cat *catalog.Catalog, defaultServiceKey, version string, deliverer mail.Deliverer) *Server {
	s := &Server{
		catalog:           cat,
		defaultServiceKey: defaultServiceKey,
		deliverer:         deliverer,
		mux:               http.NewServeMux(),
		version:           version,
		logger:            logging.Logger,
	}
	s.registerRoutes()
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /quote", s.handleQuote)
	s.mux.HandleFunc("POST /estimate", s.handleEstimate)
	s.mux.HandleFunc("GET /services", s.handleServices)
	s.mux.HandleFunc("GET /health", s.handleHealth)
}

// handleQuote handles POST /quote: validate the raw payload, price
// it, compose the confirmation, and hand it to the deliverer.
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		s.writeError(w, errors.Internal("failed to read request body", err))
		return
	}

	req, err := request.ValidateJSON(body)
	if err != nil {
		s.writeError(w, err)
		return
	}

	breakdown, err := quote.ComputeTotal(s.catalog, s.defaultServiceKey, req.Samples, req.DNAIsolation, req.QuickStart)
	if err != nil {
		s.writeError(w, err)
		return
	}

	svc, _ := s.catalog.Service(s.defaultServiceKey)
	confirmation := confirm.Compose(req, breakdown, s.catalog.Fees, svc.AckTexts)

	if err := s.deliverer.Deliver(r.Context(), req.Email, confirmation); err != nil {
		s.logger.Error("confirmation delivery failed",
			zap.String("institution", req.Institution),
			zap.Error(err))
		s.writeError(w, err)
		return
	}

	s.logger.Info("quote request accepted",
		zap.String("institution", req.Institution),
		zap.Int("samples", req.Samples),
		zap.String("total", breakdown.Total.StringFixed(2)),
		zap.String("currency", breakdown.Currency.String()))

	s.writeJSON(w, QuoteResponse{
		OK:       true,
		Total:    breakdown.Total.StringFixed(2),
		Currency: breakdown.Currency.String(),
	}, http.StatusOK)
}

// handleEstimate handles POST /estimate: the live price box on the
// quote form calls this on every input change.
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxPayloadBytes)).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.TypeValidation, "payload is not valid JSON", err))
		return
	}

	var fields []errors.FieldError
	if req.ServiceKey == "" {
		fields = append(fields, errors.FieldError{Path: "serviceKey", Reason: "is required"})
	}
	if req.Samples < 1 {
		fields = append(fields, errors.FieldError{Path: "samples", Reason: "must be a positive integer"})
	}
	if len(fields) > 0 {
		s.writeError(w, errors.Validation(fields))
		return
	}

	breakdown, err := quote.ComputeTotal(s.catalog, req.ServiceKey, req.Samples, req.DNAIsolation, req.QuickStart)
	if err != nil {
		s.writeError(w, err)
		return
	}

	svc, _ := s.catalog.Service(req.ServiceKey)
	tier, err := quote.ResolveTier(svc, req.ServiceKey, req.Samples)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, EstimateResponse{
		OK:             true,
		ServiceDisplay: breakdown.ServiceDisplay,
		Currency:       breakdown.Currency.String(),
		PricePerSample: tier.PricePerSample.StringFixed(2),
		Base:           breakdown.Base.StringFixed(2),
		Iso:            breakdown.Iso.StringFixed(2),
		QS:             breakdown.QS.StringFixed(2),
		Total:          breakdown.Total.StringFixed(2),
	}, http.StatusOK)
}

// handleServices handles GET /services
func (s *Server) handleServices(w http.ResponseWriter, r *http.Request) {
	services := make([]ServiceInfo, 0, len(s.catalog.Services))
	for _, key := range s.catalog.Keys() {
		svc := s.catalog.Services[key]
		services = append(services, ServiceInfo{
			Key:         key,
			DisplayName: svc.DisplayName,
			Currency:    svc.Currency.String(),
		})
	}
	s.writeJSON(w, services, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// statusFor maps a failure kind to its HTTP status. This is the only
// place the mapping lives.
func statusFor(t errors.Type) int {
	switch t {
	case errors.TypeValidation, errors.TypeLegal:
		return http.StatusBadRequest
	case errors.TypeUnknownService:
		return http.StatusNotFound
	case errors.TypeNoTier:
		return http.StatusUnprocessableEntity
	case errors.TypeDelivery:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	kind := errors.TypeOf(err)
	s.writeJSON(w, ErrorResponse{
		OK:     false,
		Kind:   string(kind),
		Error:  err.Error(),
		Fields: errors.FieldsOf(err),
	}, statusFor(kind))
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}
