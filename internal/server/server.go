// Package server exposes a scribe service over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/aretw0/scribe/internal/metrics"
	"github.com/aretw0/scribe/pkg/core"
)

// maxBodySize bounds JSON request bodies.
const maxBodySize = 16 << 20

// Options configures a Server.
type Options struct {
	Logger *slog.Logger
	// AuthSecret enables the bearer token gate on /api/v1 when non-empty.
	AuthSecret string
}

// Server holds the HTTP handlers around a core.Service.
type Server struct {
	svc      *core.Service
	auth     *Auth
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// New creates a Server for svc.
func New(svc *core.Service, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		svc:    svc,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	if opts.AuthSecret != "" {
		s.auth = NewAuth(opts.AuthSecret)
	}
	return s
}

// Handler returns the HTTP handler with logging, metrics and auth middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Public endpoints
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.Handle("GET /metrics", metrics.Handler())

	// API endpoints (gated when an auth secret is set)
	mux.Handle("GET /api/v1/files", s.protect(s.handleListFiles))
	mux.Handle("POST /api/v1/files", s.protect(s.handleCreateFile))
	mux.Handle("GET /api/v1/files/{name}", s.protect(s.handleGetFile))
	mux.Handle("DELETE /api/v1/files/{name}", s.protect(s.handleDeleteFile))
	mux.Handle("GET /api/v1/directory", s.protect(s.handleGetDirectory))
	mux.Handle("PUT /api/v1/directory", s.protect(s.handleChangeDirectory))
	mux.Handle("GET /api/v1/status", s.protect(s.handleStatus))
	mux.Handle("GET /api/v1/events", s.protect(s.handleEvents))

	// Metrics sit inside logging so that they observe the route pattern.
	return s.logRequests(metrics.Middleware(mux))
}

func (s *Server) protect(h http.HandlerFunc) http.Handler {
	if s.auth == nil {
		return h
	}
	return s.auth.Middleware(h)
}

// ─── Handlers ───────────────────────────────────────────────────────────────

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("OK"))
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.svc.ListFiles(r.Context(), r.URL.Query().Get("pattern"))
	metrics.RecordOperation("list", err)
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	sendSuccess(w, http.StatusOK, "File retrieval OK", "file_list", files)
}

func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	rec, err := s.svc.ReadFile(r.Context(), name, OwnerFromContext(r.Context()))
	metrics.RecordOperation("read", err)
	if err != nil {
		if errors.Is(err, core.ErrTampered) {
			metrics.RecordTamperedRead()
		}
		s.sendError(w, r, err)
		return
	}
	sendSuccess(w, http.StatusOK, "File retrieval OK", "data", rec)
}

// createRequest is the body of POST /api/v1/files.
type createRequest struct {
	Content       string    `json:"content"`
	SecurityLevel core.Mode `json:"security_level"`
	IsSigned      *flexBool `json:"is_signed"`
}

func (s *Server) handleCreateFile(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeJSON(w, r, &req); err != nil {
		sendFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.IsSigned != nil {
		signing := s.svc.Signing() != "off"
		if bool(*req.IsSigned) != signing {
			sendFailure(w, http.StatusConflict, fmt.Sprintf("is_signed=%t but the store signing mode is %s", bool(*req.IsSigned), s.svc.Signing()))
			return
		}
	}

	rec, err := s.svc.WriteFile(r.Context(), req.Content, req.SecurityLevel, OwnerFromContext(r.Context()))
	metrics.RecordOperation("write", err)
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	metrics.RecordBytesWritten(rec.Size)
	sendSuccess(w, http.StatusCreated, "File created OK", "file_info", rec)
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	removed, err := s.svc.DeleteFile(r.Context(), r.PathValue("name"))
	metrics.RecordOperation("delete", err)
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	sendSuccess(w, http.StatusOK, "File deletion OK", "name", removed)
}

func (s *Server) handleGetDirectory(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, http.StatusOK, "Current directory", "path", s.svc.Directory())
}

func (s *Server) handleChangeDirectory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		sendFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Path == "" {
		sendFailure(w, http.StatusBadRequest, "path is required")
		return
	}

	if err := s.svc.ChangeDirectory(r.Context(), req.Path); err != nil {
		s.sendError(w, r, err)
		return
	}
	sendSuccess(w, http.StatusOK, "Directory changed", "path", s.svc.Directory())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, http.StatusOK, "Status OK", "status", s.svc.State())
}

// ─── Responses ──────────────────────────────────────────────────────────────

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrInvalidMode), errors.Is(err, core.ErrInvalidPattern):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrTampered):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) sendError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", RequestID(r.Context()), "error", err)
	}
	sendFailure(w, status, err.Error())
}

func sendSuccess(w http.ResponseWriter, status int, description, key string, payload any) {
	sendJSON(w, status, map[string]any{
		"state":       "success",
		"description": description,
		key:           payload,
	})
}

func sendFailure(w http.ResponseWriter, status int, description string) {
	sendJSON(w, status, map[string]any{
		"state":       "error",
		"description": description,
	})
}

func sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// flexBool accepts both JSON booleans and the strings "true"/"false".
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("is_signed: %w", err)
	}
	*b = flexBool(v)
	return nil
}
