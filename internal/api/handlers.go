package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderramin/pitwall/internal/domain"
	"github.com/alexanderramin/pitwall/internal/gateway"
	"github.com/alexanderramin/pitwall/internal/service"
)

const defaultHistoryLimit = 20

// Server bundles the services behind the HTTP API.
type Server struct {
	dashboard service.DashboardService
	schedules service.ScheduleService
	overlays  service.OverlayService
	history   service.HistoryService
	// remotePath is the configured default sync remote; a request may
	// name its own.
	remotePath string
}

func NewServer(dashboard service.DashboardService, schedules service.ScheduleService,
	overlays service.OverlayService, history service.HistoryService, remotePath string) *Server {
	return &Server{
		dashboard:  dashboard,
		schedules:  schedules,
		overlays:   overlays,
		history:    history,
		remotePath: remotePath,
	}
}

func (s *Server) handleCountdown(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	if at := r.URL.Query().Get("at"); at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid 'at' timestamp, want RFC3339")
			return
		}
		now = parsed
	}

	state, err := s.dashboard.Countdown(r.Context(), now)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	view, err := s.dashboard.Sessions(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	doc, err := s.schedules.Current(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scheduleResponse{Document: doc})
}

func (s *Server) handleReplaceSchedule(w http.ResponseWriter, r *http.Request) {
	var req replaceScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, rec, err := s.schedules.Replace(r.Context(),
		r.Header.Get(OperatorHeader), req.Document, req.BaseVersion, req.Message)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scheduleResponse{Document: doc, Commit: rec})
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	overlay, err := s.overlays.Get(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, configResponse{Overlay: overlay})
}

func (s *Server) handlePatchConfig(w http.ResponseWriter, r *http.Request) {
	var req patchConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	overlay, rec, err := s.overlays.ApplyPatch(r.Context(),
		r.Header.Get(OperatorHeader), req.Patch, req.Message)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, configResponse{Overlay: overlay, Commit: rec})
}

func (s *Server) handleResetConfig(w http.ResponseWriter, r *http.Request) {
	var req resetConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Date == "" {
		writeError(w, http.StatusBadRequest, "body must carry a date")
		return
	}

	overlay, rec, err := s.overlays.ResetDay(r.Context(), r.Header.Get(OperatorHeader), req.Date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, configResponse{Overlay: overlay, Commit: rec})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}
	var before int64
	if raw := r.URL.Query().Get("before"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid before version")
			return
		}
		before = parsed
	}

	commits, err := s.history.List(r.Context(), limit, before)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if commits == nil {
		commits = []*domain.CommitRecord{}
	}
	writeJSON(w, http.StatusOK, historyResponse{Commits: commits})
}

func (s *Server) handleRollback(w http.ResponseWriter, r *http.Request) {
	var req rollbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Version <= 0 {
		writeError(w, http.StatusBadRequest, "body must carry a positive version")
		return
	}

	rec, err := s.history.Rollback(r.Context(), r.Header.Get(OperatorHeader), req.Version)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	// The body is optional; an empty POST syncs against the configured
	// default remote.
	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	path := req.RemotePath
	if path == "" {
		path = s.remotePath
	}
	if path == "" {
		writeError(w, http.StatusBadRequest, "no sync remote configured")
		return
	}

	remote, closeRemote, err := gateway.OpenRemote(path)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	defer closeRemote()

	res, err := s.history.Sync(r.Context(), r.Header.Get(OperatorHeader), remote)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, syncResponse{Pulled: res.Pulled, Pushed: res.Pushed})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps sentinel errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUnknownVersion):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrStaleVersion), errors.Is(err, domain.ErrDivergedHistory):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidSchedule):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
	}
	writeError(w, status, err.Error())
}
