// Package http exposes the budget store as a JSON API.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"budget/internal/budget"
	"budget/internal/storage"
)

// PlanPublisher notifies downstream consumers that a monthly plan was
// committed. The AMQP client satisfies this.
type PlanPublisher interface {
	PublishPlanSync(ctx context.Context, month, planID string) error
}

type Server struct {
	http.Server
	store     *budget.Store
	blobs     storage.BlobStore
	stateKey  string
	publisher PlanPublisher
}

type ServerOption func(*Server)

// WithPlanPublisher enables plan sync events on plan commit.
func WithPlanPublisher(p PlanPublisher) ServerOption {
	return func(s *Server) { s.publisher = p }
}

// NewServer configures routes, returning a ready-to-run http.Server.
func NewServer(addr string, store *budget.Store, blobs storage.BlobStore, stateKey string, opts ...ServerOption) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:    store,
		blobs:    blobs,
		stateKey: stateKey,
	}
	for _, opt := range opts {
		opt(s)
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("/api/state", s.withRequestLogging(s.handleState))
	mux.HandleFunc("/api/net-income", s.withRequestLogging(s.handleNetIncome))

	mux.HandleFunc("/api/income-sources", s.withRequestLogging(s.handleIncomeSources))
	mux.HandleFunc("/api/income-sources/{id}", s.withRequestLogging(s.handleIncomeSourceByID))
	mux.HandleFunc("/api/income-sources/{id}/select", s.withRequestLogging(s.handleSelectIncomeSource))

	mux.HandleFunc("/api/expenses", s.withRequestLogging(s.handleExpenses))
	mux.HandleFunc("/api/expenses/{id}", s.withRequestLogging(s.handleExpenseByID))
	mux.HandleFunc("/api/savings", s.withRequestLogging(s.handleSavings))

	mux.HandleFunc("/api/people", s.withRequestLogging(s.handlePeople))
	mux.HandleFunc("/api/people/{id}", s.withRequestLogging(s.handlePersonByID))
	mux.HandleFunc("/api/people/{id}/switch", s.withRequestLogging(s.handleSwitchPerson))

	mux.HandleFunc("/api/scenarios", s.withRequestLogging(s.handleScenarios))
	mux.HandleFunc("/api/scenarios/{name}", s.withRequestLogging(s.handleScenarioByName))
	mux.HandleFunc("/api/scenarios/{name}/load", s.withRequestLogging(s.handleLoadScenario))
	mux.HandleFunc("/api/scenarios/{name}/plan", s.withRequestLogging(s.handleScenarioPlan))

	mux.HandleFunc("/api/plans/{month}", s.withRequestLogging(s.handlePlanByMonth))
	mux.HandleFunc("/api/plans/{month}/actuals/expenses/{id}", s.withRequestLogging(s.handleActualExpense))
	mux.HandleFunc("/api/plans/{month}/actuals/income/{id}", s.withRequestLogging(s.handleActualIncome))
	mux.HandleFunc("/api/plans/{month}/savings-log", s.withRequestLogging(s.handleSavingsLog))
	mux.HandleFunc("/api/plans/{month}/savings-log/{index}", s.withRequestLogging(s.handleSavingsLogEntry))

	return s
}

type contextKey string

const requestIDKey contextKey = "request_id"

// withRequestLogging adds a request ID and start/completion logging.
func (s *Server) withRequestLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds())
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// persist writes the store state to the blob backend. Every mutating
// handler calls this before responding so a restart never loses an
// acknowledged change.
func (s *Server) persist(ctx context.Context, w http.ResponseWriter) bool {
	data, err := s.store.Encode()
	if err != nil {
		slog.ErrorContext(ctx, "Failed to encode state", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to persist state")
		return false
	}
	if err := s.blobs.Save(ctx, s.stateKey, data); err != nil {
		slog.ErrorContext(ctx, "Failed to save state", "error", err, "state_key", s.stateKey)
		writeError(w, http.StatusInternalServerError, "failed to persist state")
		return false
	}
	return true
}
