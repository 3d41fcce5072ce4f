// Package api exposes the dashboard over HTTP. Reads are open; mutating
// routes carry the operator identity in the X-Operator header and pass
// through the service-layer auth gate.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires all API endpoints with the shared middleware.
func NewRouter(s *Server, logger *slog.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(SecurityHeaders)
	if logger != nil {
		r.Use(RequestLogger(logger))
	}

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/countdown", s.handleCountdown).Methods(http.MethodGet)
	api.HandleFunc("/sessions", s.handleSessions).Methods(http.MethodGet)

	api.HandleFunc("/schedule", s.handleGetSchedule).Methods(http.MethodGet)
	api.HandleFunc("/schedule", s.handleReplaceSchedule).Methods(http.MethodPost)

	api.HandleFunc("/config", s.handleGetConfig).Methods(http.MethodGet)
	api.HandleFunc("/config", s.handlePatchConfig).Methods(http.MethodPatch)
	api.HandleFunc("/config/reset", s.handleResetConfig).Methods(http.MethodPost)

	api.HandleFunc("/history", s.handleHistory).Methods(http.MethodGet)
	api.HandleFunc("/rollback", s.handleRollback).Methods(http.MethodPost)
	api.HandleFunc("/sync", s.handleSync).Methods(http.MethodPost)

	return r
}
