package httpapi

import (
	"net/http"

	"github.com/brightertomorrows/website-backend/internal/domain/schedule"
)

// The schedule itself lives in the browser for the duration of a visit; the
// client sends the whole thing with each request and gets derived state back.
type scheduleRequest struct {
	Schedule schedule.Schedule `json:"schedule"`
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.deps.Schedule.Validate(&req.Schedule); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.deps.Schedule.Estimate(&req.Schedule))
}

func (s *Server) handleCompatibility(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.deps.Schedule.Validate(&req.Schedule); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.deps.Schedule.Compatibility(&req.Schedule))
}
