// Package server exposes the amortization engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"mortsim/internal/amortize"
	"mortsim/internal/export"
	"mortsim/internal/model"
)

// Config controls the service runtime behavior.
type Config struct {
	Addr     string
	Defaults model.Loan // used for any query parameter the caller omits
	Logger   *slog.Logger
}

// Status is served at /v1/status.
type Status struct {
	StartedAt time.Time  `json:"started_at"`
	Requests  int64      `json:"requests"`
	Rejected  int64      `json:"rejected"`
	Defaults  model.Loan `json:"defaults"`
}

// ErrorBody is the JSON payload of a 4xx response.
type ErrorBody struct {
	Error string `json:"error"`
	Param string `json:"param,omitempty"`
}

// SummaryBody is served at /v1/summary.
type SummaryBody struct {
	Loan       model.Loan             `json:"loan"`
	Parameters model.LoanParameters   `json:"parameters"`
	Summary    export.SummaryDocument `json:"summary"`
}

// Service provides the HTTP API. Every request computes its own ledger;
// only the counters are shared.
type Service struct {
	cfg Config
	log *slog.Logger

	mu        sync.RWMutex
	startedAt time.Time
	requests  int64
	rejected  int64
}

// New returns a new service with the provided config.
func New(cfg Config) *Service {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		cfg:       cfg,
		log:       logger.With("component", "server"),
		startedAt: time.Now(),
	}
}

// Handler returns the routed, logged HTTP handler.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/status", s.handleStatus)
	mux.HandleFunc("GET /v1/schedule", s.handleSchedule)
	mux.HandleFunc("GET /v1/summary", s.handleSummary)
	mux.HandleFunc("GET /v1/yearly", s.handleYearly)
	return s.trace(mux)
}

// Run serves HTTP until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info("listening", "addr", s.cfg.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt: s.startedAt,
		Requests:  s.requests,
		Rejected:  s.rejected,
		Defaults:  s.cfg.Defaults,
	}
}

func (s *Service) countRequest(rejected bool) {
	s.mu.Lock()
	s.requests++
	if rejected {
		s.rejected++
	}
	s.mu.Unlock()
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleSchedule(w http.ResponseWriter, r *http.Request) {
	loan, ledger, ok := s.schedule(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" || format == "json" {
		writeJSON(w, http.StatusOK, export.NewLedgerDocument(ledger))
		return
	}
	renderer, err := export.New(format)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorBody{Error: err.Error(), Param: "format"})
		return
	}
	if format == "csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	if err := renderer.Render(w, ledger); err != nil {
		s.log.Error("rendering schedule", "request_id", RequestID(r.Context()), "error", err, "loan", loan)
	}
}

func (s *Service) handleSummary(w http.ResponseWriter, r *http.Request) {
	loan, ledger, ok := s.schedule(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, SummaryBody{
		Loan:       loan,
		Parameters: loan.Parameters(),
		Summary:    export.NewSummaryDocument(amortize.Summarize(ledger)),
	})
}

func (s *Service) handleYearly(w http.ResponseWriter, r *http.Request) {
	_, ledger, ok := s.schedule(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, amortize.Yearly(ledger))
}

// schedule parses the loan from the query and builds its ledger. On
// failure it writes the 400 response and returns ok=false.
func (s *Service) schedule(w http.ResponseWriter, r *http.Request) (model.Loan, model.Ledger, bool) {
	loan, payment, err := parseLoan(r.URL.Query(), s.cfg.Defaults)
	if err == nil {
		var ledger model.Ledger
		ledger, err = amortize.ScheduleLoan(loan, payment)
		if err == nil {
			s.countRequest(false)
			return loan, ledger, true
		}
	}

	s.countRequest(true)
	body := ErrorBody{Error: err.Error()}
	var ie *amortize.InputError
	if errors.As(err, &ie) {
		body.Param = ie.Param
	}
	writeJSON(w, http.StatusBadRequest, body)
	return loan, model.Ledger{}, false
}

func parseLoan(q url.Values, defaults model.Loan) (model.Loan, float64, error) {
	loan := defaults
	var payment float64

	floats := []struct {
		name string
		dst  *float64
	}{
		{"price", &loan.Price},
		{"downpayment_rate", &loan.DownpaymentRate},
		{"annual_rate", &loan.AnnualRate},
		{"payment", &payment},
	}
	for _, f := range floats {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return loan, 0, &amortize.InputError{Param: f.name, Constraint: "a number", Value: math.NaN()}
		}
		*f.dst = n
	}

	if v := q.Get("years"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return loan, 0, &amortize.InputError{Param: "years", Constraint: "a whole number", Value: math.NaN()}
		}
		loan.Years = n
	}
	return loan, payment, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
