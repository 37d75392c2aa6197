// Package api provides the HTTP REST API server for AlphaVault.
//
// It exposes endpoints for parsing S-4 and 8-K filings, M&A probability,
// takeover premium and regulatory timeline estimates, deal ranking and
// composite quote scoring, plus a WebSocket event stream.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phuslu/log"

	"github.com/seenimoa/alphavault/internal/app"
	"github.com/seenimoa/alphavault/internal/edgar"
	"github.com/seenimoa/alphavault/internal/filingtext"
	"github.com/seenimoa/alphavault/internal/ranking"
	"github.com/seenimoa/alphavault/pkg/models"
	"github.com/seenimoa/alphavault/pkg/utils"
)

// maxBodyBytes bounds request bodies; S-4 registrations run to megabytes.
const maxBodyBytes = 32 << 20

// Server is the HTTP API server.
type Server struct {
	router chi.Router
	app    *app.App
	wsHub  *WSHub
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(a *app.App) *Server {
	srv := &Server{
		app:   a,
		wsHub: NewWSHub(),
	}
	srv.router = srv.buildRouter()
	return srv
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// Hub returns the WebSocket hub.
func (s *Server) Hub() *WSHub {
	return s.wsHub
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start WebSocket hub
	go s.wsHub.Run()

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("api server listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("http server: %w", err)
	case <-done:
	}
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	// CORS
	origins := []string{"*"}
	if len(s.app.Config.API.CORSOrigins) > 0 {
		origins = s.app.Config.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", s.handleHealth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Filing parsers
		r.Post("/filings/s4", s.handleParseS4)
		r.Post("/filings/8k", s.handleParse8K)

		// M&A analytics
		r.Get("/ma/{ticker}", s.handleMAProbability)
		r.Post("/ma/premium", s.handlePremium)
		r.Post("/ma/timeline", s.handleTimeline)

		// Deal ranking
		r.Post("/deals/rank", s.handleRankDeals)

		// Quote scoring
		r.Post("/quote/score", s.handleQuoteScore)

		// Configuration
		r.Get("/config", s.handleGetConfig)
		r.Get("/config/credentials", s.handleGetCredentials)

		// WebSocket
		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// requestLogger logs one line per request with phuslu/log.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("took", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http request")
	})
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ParseRequest is the JSON body for POST /api/v1/filings/{s4,8k}. A
// text/plain or text/html body is accepted as the document itself.
type ParseRequest struct {
	Text            string `json:"text"`
	CIK             string `json:"cik,omitempty"`
	AccessionNumber string `json:"accession_number,omitempty"`
	FiledDate       string `json:"filed_date,omitempty"` // YYYY-MM-DD
}

// RankRequest is the body for POST /api/v1/deals/rank.
type RankRequest struct {
	Deals   []models.DealCandidate `json:"deals"`
	Limit   int                    `json:"limit,omitempty"` // narrative entries, default 10
	Narrate bool                   `json:"narrate,omitempty"`
}

// RankResponse is the data of POST /api/v1/deals/rank.
type RankResponse struct {
	Ranked    []models.RankedDeal `json:"ranked"`
	Narrative string              `json:"narrative,omitempty"`
}

// QuoteScoreRequest is the body for POST /api/v1/quote/score.
type QuoteScoreRequest struct {
	Quote   models.Quote           `json:"quote"`
	Profile *models.CompanyProfile `json:"profile,omitempty"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]any{
			"status":     "ok",
			"version":    app.Version,
			"time_et":    utils.FormatDate(utils.NowET()),
			"ws_clients": s.wsHub.ClientCount(),
		},
	})
}

func (s *Server) handleParseS4(w http.ResponseWriter, r *http.Request) {
	raw, ok := s.readFiling(w, r, models.FormS4)
	if !ok {
		return
	}
	rec, err := s.app.S4.ParseFiling(raw)
	if err != nil {
		writeParseError(w, err)
		return
	}
	s.wsHub.Broadcast(WSMessage{
		Type: EventFilingParsed,
		Data: map[string]any{
			"form_type":     models.FormS4,
			"company":       rec.Metadata.CompanyName,
			"deal_quality":  rec.Analytics.DealQualityScore,
			"risk_score":    rec.Analytics.RiskScore,
			"timeline_mths": rec.Analytics.EstimatedTimelineMonths,
		},
	})
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: rec})
}

func (s *Server) handleParse8K(w http.ResponseWriter, r *http.Request) {
	raw, ok := s.readFiling(w, r, models.Form8K)
	if !ok {
		return
	}
	rec, err := s.app.Form8K.ParseFiling(raw)
	if err != nil {
		writeParseError(w, err)
		return
	}
	s.wsHub.Broadcast(WSMessage{
		Type: EventFilingParsed,
		Data: map[string]any{
			"form_type":   models.Form8K,
			"company":     rec.Metadata.CompanyName,
			"items":       len(rec.Items),
			"criticality": rec.Analytics.CriticalityScore,
			"impact":      rec.Analytics.MarketImpact,
		},
	})
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: rec})
}

// readFiling decodes a parse request and normalizes markup to text. It
// writes the error response itself and reports whether to continue.
func (s *Server) readFiling(w http.ResponseWriter, r *http.Request, form models.FormType) (models.RawFiling, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return models.RawFiling{}, false
	}

	var req ParseRequest
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "text/plain", "text/html":
		req.Text = string(body)
	default:
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return models.RawFiling{}, false
		}
	}

	text, err := filingtext.Normalize(req.Text)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return models.RawFiling{}, false
	}
	raw := models.RawFiling{
		Text:            text,
		FormType:        form,
		CIK:             req.CIK,
		AccessionNumber: req.AccessionNumber,
	}
	if req.FiledDate != "" {
		filed, err := utils.ParseFilingDate(req.FiledDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid filed_date: "+err.Error())
			return models.RawFiling{}, false
		}
		raw.FiledDate = filed
	}
	return raw, true
}

func (s *Server) handleMAProbability(w http.ResponseWriter, r *http.Request) {
	ticker := utils.NormalizeTicker(chi.URLParam(r, "ticker"))
	if ticker == "" {
		writeError(w, http.StatusBadRequest, "ticker is required")
		return
	}
	lookback := s.app.Config.Analytics.LookbackDays
	if v := r.URL.Query().Get("lookback"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "lookback must be a positive number of days")
			return
		}
		lookback = n
	}

	res, err := s.app.MA.CalculateMAProbability(r.Context(), ticker, lookback)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, edgar.ErrCIKNotFound):
			status = http.StatusNotFound
		case errors.Is(err, models.ErrUpstreamFetch):
			status = http.StatusBadGateway
		}
		writeError(w, status, err.Error())
		return
	}

	s.wsHub.Broadcast(WSMessage{
		Type: EventMAScored,
		Data: map[string]any{
			"ticker":     res.Ticker,
			"score":      res.ProbabilityScore,
			"risk_level": res.RiskLevel,
		},
	})
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: res})
}

func (s *Server) handlePremium(w http.ResponseWriter, r *http.Request) {
	var req models.TakeoverPremiumRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := s.app.MA.CalculateTakeoverPremium(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: res})
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	var req models.TimelineRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: s.app.MA.PredictRegulatoryTimeline(req)})
}

func (s *Server) handleRankDeals(w http.ResponseWriter, r *http.Request) {
	var req RankRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Deals) == 0 {
		writeError(w, http.StatusBadRequest, "deals are required")
		return
	}

	resp := RankResponse{Ranked: s.app.Ranker.Rank(req.Deals)}
	if req.Narrate {
		limit := req.Limit
		if limit <= 0 {
			limit = ranking.DefaultNarrateLimit
		}
		resp.Narrative = ranking.Narrate(resp.Ranked, limit)
	}

	top := resp.Ranked[0]
	s.wsHub.Broadcast(WSMessage{
		Type: EventDealsRanked,
		Data: map[string]any{
			"count":     len(resp.Ranked),
			"top":       top.Deal.CompanyName,
			"top_score": top.Score,
		},
	})
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: resp})
}

func (s *Server) handleQuoteScore(w http.ResponseWriter, r *http.Request) {
	var req QuoteScoreRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	cs, err := s.app.Quotes.Score(req.Quote, req.Profile)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: cs})
}

// ============================================================
// Helpers
// ============================================================

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("failed to write JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}

// writeParseError answers 422 with the ParseError as data.
func writeParseError(w http.ResponseWriter, err error) {
	var perr *models.ParseError
	if !errors.As(err, &perr) {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusUnprocessableEntity, APIResponse{
		Success: false,
		Data:    perr,
		Error:   perr.Error(),
	})
}
