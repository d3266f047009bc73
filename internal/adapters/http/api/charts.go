package api

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/okian/eplhistory/internal/adapters/chart"
	"github.com/okian/eplhistory/pkg/logger"
)

// ChartsHandler serves rendered chart images.
type ChartsHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(deps Dependencies, l logger.Logger) *ChartsHandler {
	return &ChartsHandler{deps: deps, logger: l}
}

// HandleChart handles GET /charts/{team}/{kind}.{format}.
func (h *ChartsHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	kind, err := chart.ParseKind(vars["kind"])
	if err != nil {
		fail(r.Context(), h.logger, w, WrapKind("parse chart", ErrBadRequest, err))
		return
	}
	format, err := chart.ParseFormat(vars["format"])
	if err != nil {
		fail(r.Context(), h.logger, w, WrapKind("parse chart", ErrBadRequest, err))
		return
	}

	// render fully before writing so failures still produce a JSON error
	var buf bytes.Buffer
	if err := h.deps.RenderChart(r.Context(), &buf, vars["team"], kind, format); err != nil {
		fail(r.Context(), h.logger, w, WrapKind("render "+string(kind), ErrRender, err))
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
