// Package site serves the interactive team dashboard.
package site

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
)

// ErrServe is returned when the embedded dashboard cannot be served.
var ErrServe = errors.New("dashboard serve failed")

const dashboardFile = "dashboard.html"

// Register attaches the dashboard routes to r.
//
//	GET /           -> redirect to /dashboard
//	GET /dashboard  -> embedded dashboard page
func Register(_ context.Context, r *mux.Router) {
	if r == nil {
		panic("router is nil")
	}

	h := NewRootHandler()
	r.HandleFunc("/", h.HandleRoot).Methods(http.MethodGet)
	r.HandleFunc("/dashboard", h.HandleDashboard).Methods(http.MethodGet)
}

// RootHandler serves the dashboard page.
type RootHandler struct {
	fs http.FileSystem
}

// NewRootHandler creates a handler backed by the embedded assets.
func NewRootHandler() *RootHandler {
	return &RootHandler{fs: FS()}
}

// HandleRoot redirects to the dashboard.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// HandleDashboard handles GET /dashboard.
func (h *RootHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	f, err := h.fs.Open(dashboardFile)
	if err != nil {
		http.Error(w, ErrServe.Error(), http.StatusInternalServerError)
		return
	}
	defer func() { _ = f.Close() }()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	st, err := f.Stat()
	if err != nil {
		http.Error(w, ErrServe.Error(), http.StatusInternalServerError)
		return
	}
	http.ServeContent(w, r, dashboardFile, st.ModTime(), f)
}
