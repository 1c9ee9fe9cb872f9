package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brightertomorrows/website-backend/internal/sqlite"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Message) == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name, email, and message are required"})
		return
	}

	// Store first so the submission survives a mail relay outage.
	if s.deps.Contacts != nil {
		sub := &sqlite.Submission{
			ID:        uuid.NewString(),
			Name:      req.Name,
			Email:     req.Email,
			Subject:   req.Subject,
			Message:   req.Message,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.deps.Contacts.Insert(r.Context(), sub); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	if s.deps.Mailer != nil {
		err := s.deps.Mailer.Send(r.Context(), map[string]string{
			"from_name":  req.Name,
			"from_email": req.Email,
			"subject":    req.Subject,
			"message":    req.Message,
		})
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (s *Server) handleAdminListContacts(w http.ResponseWriter, r *http.Request) {
	subs, err := s.deps.Contacts.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if subs == nil {
		subs = []sqlite.Submission{}
	}
	s.writeJSON(w, http.StatusOK, subs)
}
