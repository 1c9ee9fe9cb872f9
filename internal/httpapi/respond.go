package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brightertomorrows/website-backend/internal/domain/cart"
	"github.com/brightertomorrows/website-backend/internal/domain/post"
	"github.com/brightertomorrows/website-backend/internal/domain/schedule"
	"github.com/brightertomorrows/website-backend/internal/repository"
	"github.com/brightertomorrows/website-backend/internal/upstream"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

// writeRaw passes an upstream JSON body through untouched.
func (s *Server) writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// writeError maps domain sentinels to status codes. Upstream failures hide
// the underlying detail behind a generic retry-able message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, post.ErrInvalidInput),
		errors.Is(err, repository.ErrInvalidInput),
		errors.Is(err, cart.ErrInvalidItem),
		errors.Is(err, schedule.ErrInvalidVersions),
		errors.Is(err, schedule.ErrInvalidDelivery),
		errors.Is(err, schedule.ErrInvalidSessions),
		errors.Is(err, schedule.ErrAlreadyScheduled):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, post.ErrPostNotFound),
		errors.Is(err, cart.ErrItemNotFound),
		errors.Is(err, schedule.ErrProgramNotFound),
		errors.Is(err, schedule.ErrNotScheduled):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, upstream.ErrUpstream):
		s.logger.Error("upstream failure", "path", r.URL.Path, "error", err)
		s.writeJSON(w, http.StatusBadGateway, errorResponse{Error: "service temporarily unavailable, please try again"})
	default:
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}
	return true
}
