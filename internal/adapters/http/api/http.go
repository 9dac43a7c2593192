// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/okian/livescores/internal/domain/model"
	"github.com/okian/livescores/internal/domain/refresh"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	SubscriptionDependencies
	ScoreDependencies
	RefreshDependencies
}

// SubscriptionDependencies covers binding content to games.
type SubscriptionDependencies interface {
	Subscribe(ctx context.Context, contentID string, sub model.Subscription) error
	Unsubscribe(ctx context.Context, contentID string) (bool, error)
	ActiveSubscriptions(ctx context.Context) ([]model.Subscription, error)
}

// ScoreDependencies covers score reads.
type ScoreDependencies interface {
	ScoreForContent(ctx context.Context, contentID string) (*model.ScoreInfo, error)
}

// RefreshDependencies covers manual refresh triggers.
type RefreshDependencies interface {
	RefreshNow(ctx context.Context) (refresh.Report, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler       *HealthHandler
	statsHandler        *StatsHandler
	subscriptionHandler *SubscriptionHandler
	scoreHandler        *ScoreHandler
	refreshHandler      *RefreshHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:       NewHealthHandler(),
		statsHandler:        NewStatsHandler(statsProvider),
		subscriptionHandler: NewSubscriptionHandler(deps),
		scoreHandler:        NewScoreHandler(deps),
		refreshHandler:      NewRefreshHandler(deps),
	}
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(r *mux.Router) {
	r.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")).Methods(http.MethodGet)
	r.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats")).Methods(http.MethodGet)
	r.HandleFunc("/subscriptions", MetricsMiddleware(s.subscriptionHandler.HandleList, "subscriptions")).Methods(http.MethodGet)
	r.HandleFunc("/posts/{contentID}/subscription", MetricsMiddleware(s.subscriptionHandler.HandlePut, "subscription")).Methods(http.MethodPut)
	r.HandleFunc("/posts/{contentID}/subscription", MetricsMiddleware(s.subscriptionHandler.HandleDelete, "subscription")).Methods(http.MethodDelete)
	r.HandleFunc("/posts/{contentID}/score", MetricsMiddleware(s.scoreHandler.HandleGetScore, "score")).Methods(http.MethodGet)
	r.HandleFunc("/refresh", MetricsMiddleware(s.refreshHandler.HandleRefresh, "refresh")).Methods(http.MethodPost)
}

// NewRouter returns a router with every route registered.
func NewRouter(deps Dependencies, statsProvider StatsProvider) *mux.Router {
	r := mux.NewRouter()
	NewServer(deps, statsProvider).Register(r)
	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError classifies err and writes the matching envelope.
func writeDomainError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}
