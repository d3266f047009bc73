// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/okian/eplhistory/internal/adapters/chart"
	"github.com/okian/eplhistory/internal/domain/aggregate"
	"github.com/okian/eplhistory/internal/domain/model"
	"github.com/okian/eplhistory/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	Teams(ctx context.Context) ([]string, error)
	DefaultTeam(ctx context.Context) string
	WinsBySeason(ctx context.Context, team string) ([]model.SeasonWins, error)
	StatsBySeason(ctx context.Context, team string) ([]model.SeasonStats, error)
	Totals(ctx context.Context, team string) (model.Totals, error)
	Color(ctx context.Context, team string) string
	WinsMatrix(ctx context.Context) (aggregate.WinsMatrix, error)
	Figures(ctx context.Context, team string) (chart.ComparisonFigure, chart.SummaryFigure, error)
	RenderChart(ctx context.Context, w io.Writer, team string, kind chart.Kind, format chart.Format) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	teamsHandler  *TeamsHandler
	chartsHandler *ChartsHandler
}

// Option configures a Server.
type Option func(*serverOptions)

type serverOptions struct {
	logger logger.Logger
}

// WithLogger sets the logger used to report server-side failures.
func WithLogger(l logger.Logger) Option {
	return func(o *serverOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	o := serverOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Get().Named("http")
	}
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		teamsHandler:  NewTeamsHandler(deps, o.logger),
		chartsHandler: NewChartsHandler(deps, o.logger),
	}
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(_ context.Context, r *mux.Router) {
	r.Use(RequestIDMiddleware, MetricsMiddleware)

	r.HandleFunc("/healthz", s.healthHandler.HandleHealth).Methods(http.MethodGet)
	r.HandleFunc("/stats", s.statsHandler.HandleStats).Methods(http.MethodGet)

	// Full paths on r: a subrouter would turn method mismatches into 404s.
	r.HandleFunc("/api/teams", s.teamsHandler.HandleList).Methods(http.MethodGet)
	r.HandleFunc("/api/teams/{team}/wins", s.teamsHandler.HandleWins).Methods(http.MethodGet)
	r.HandleFunc("/api/teams/{team}/stats", s.teamsHandler.HandleStats).Methods(http.MethodGet)
	r.HandleFunc("/api/teams/{team}/totals", s.teamsHandler.HandleTotals).Methods(http.MethodGet)
	r.HandleFunc("/api/teams/{team}/color", s.teamsHandler.HandleColor).Methods(http.MethodGet)
	r.HandleFunc("/api/teams/{team}/figures", s.teamsHandler.HandleFigures).Methods(http.MethodGet)
	r.HandleFunc("/api/matrix", s.teamsHandler.HandleMatrix).Methods(http.MethodGet)

	r.HandleFunc("/charts/{team}/{kind:[a-z]+}.{format:[a-z]+}", s.chartsHandler.HandleChart).Methods(http.MethodGet)
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

// fail classifies err, logs server-side failures and writes the error body.
func fail(ctx context.Context, log logger.Logger, w http.ResponseWriter, err error) {
	status, code := classify(err)
	if status >= statusInternalError {
		log.Error(ctx, "request failed", logger.String("requestID", RequestIDFrom(ctx)), logger.Error(err))
	}
	writeError(w, status, code, err)
}
