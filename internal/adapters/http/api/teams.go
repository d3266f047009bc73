package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/okian/eplhistory/internal/adapters/chart"
	"github.com/okian/eplhistory/internal/domain/palette"
	"github.com/okian/eplhistory/pkg/logger"
)

type teamsResponse struct {
	Teams   []string `json:"teams"`
	Default string   `json:"default"`
}

type colorResponse struct {
	Team  string `json:"team"`
	Color string `json:"color"`
	Hex   string `json:"hex"`
}

type figuresResponse struct {
	Team       string                 `json:"team"`
	Color      string                 `json:"color"`
	Comparison chart.ComparisonFigure `json:"comparison"`
	Summary    chart.SummaryFigure    `json:"summary"`
}

// TeamsHandler serves the JSON views of teams and their records.
// Unknown teams are not errors: they get empty data.
type TeamsHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps Dependencies, l logger.Logger) *TeamsHandler {
	return &TeamsHandler{deps: deps, logger: l}
}

// HandleList handles GET /api/teams.
func (h *TeamsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	teams, err := h.deps.Teams(r.Context())
	if err != nil {
		fail(r.Context(), h.logger, w, Wrap("list teams", err))
		return
	}
	writeJSON(w, http.StatusOK, teamsResponse{Teams: teams, Default: h.deps.DefaultTeam(r.Context())})
}

// HandleWins handles GET /api/teams/{team}/wins.
func (h *TeamsHandler) HandleWins(w http.ResponseWriter, r *http.Request) {
	wins, err := h.deps.WinsBySeason(r.Context(), mux.Vars(r)["team"])
	if err != nil {
		fail(r.Context(), h.logger, w, Wrap("wins by season", err))
		return
	}
	writeJSON(w, http.StatusOK, wins)
}

// HandleStats handles GET /api/teams/{team}/stats.
func (h *TeamsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.deps.StatsBySeason(r.Context(), mux.Vars(r)["team"])
	if err != nil {
		fail(r.Context(), h.logger, w, Wrap("stats by season", err))
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// HandleTotals handles GET /api/teams/{team}/totals.
func (h *TeamsHandler) HandleTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.deps.Totals(r.Context(), mux.Vars(r)["team"])
	if err != nil {
		fail(r.Context(), h.logger, w, Wrap("totals", err))
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

// HandleColor handles GET /api/teams/{team}/color.
func (h *TeamsHandler) HandleColor(w http.ResponseWriter, r *http.Request) {
	team := mux.Vars(r)["team"]
	color := h.deps.Color(r.Context(), team)
	writeJSON(w, http.StatusOK, colorResponse{Team: team, Color: color, Hex: palette.Hex(color)})
}

// HandleFigures handles GET /api/teams/{team}/figures.
func (h *TeamsHandler) HandleFigures(w http.ResponseWriter, r *http.Request) {
	team := mux.Vars(r)["team"]
	cmp, sum, err := h.deps.Figures(r.Context(), team)
	if err != nil {
		fail(r.Context(), h.logger, w, Wrap("figures", err))
		return
	}
	writeJSON(w, http.StatusOK, figuresResponse{
		Team:       team,
		Color:      h.deps.Color(r.Context(), team),
		Comparison: cmp,
		Summary:    sum,
	})
}

// HandleMatrix handles GET /api/matrix.
func (h *TeamsHandler) HandleMatrix(w http.ResponseWriter, r *http.Request) {
	m, err := h.deps.WinsMatrix(r.Context())
	if err != nil {
		fail(r.Context(), h.logger, w, Wrap("wins matrix", err))
		return
	}
	writeJSON(w, http.StatusOK, m)
}
