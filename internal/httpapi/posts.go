package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brightertomorrows/website-backend/internal/domain/post"
)

func (s *Server) handleListPublished(w http.ResponseWriter, r *http.Request) {
	posts, err := s.deps.Posts.ListPublished(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if posts == nil {
		posts = []post.Post{}
	}
	s.writeJSON(w, http.StatusOK, posts)
}

func (s *Server) handleGetPublished(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.Posts.GetPublished(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleAdminListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.deps.Posts.ListAll(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if posts == nil {
		posts = []post.Post{}
	}
	s.writeJSON(w, http.StatusOK, posts)
}

func (s *Server) handleAdminGetPost(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.Posts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

type createPostRequest struct {
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Excerpt   string   `json:"excerpt"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	Image     string   `json:"image"`
	Published bool     `json:"published"`
}

func (s *Server) handleAdminCreatePost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if !s.decode(w, r, &req) {
		return
	}

	p, err := s.deps.Posts.Create(r.Context(), post.CreateRequest{
		Title:     req.Title,
		Author:    req.Author,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Tags:      req.Tags,
		Image:     req.Image,
		Published: req.Published,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, p)
}

type updatePostRequest struct {
	Title       *string    `json:"title"`
	Author      *string    `json:"author"`
	Excerpt     *string    `json:"excerpt"`
	Content     *string    `json:"content"`
	Tags        []string   `json:"tags"`
	Image       *string    `json:"image"`
	Published   *bool      `json:"published"`
	PublishDate *time.Time `json:"publish_date"`
}

func (s *Server) handleAdminUpdatePost(w http.ResponseWriter, r *http.Request) {
	var req updatePostRequest
	if !s.decode(w, r, &req) {
		return
	}

	p, err := s.deps.Posts.Update(r.Context(), post.UpdateRequest{
		ID:          chi.URLParam(r, "id"),
		Title:       req.Title,
		Author:      req.Author,
		Excerpt:     req.Excerpt,
		Content:     req.Content,
		Tags:        req.Tags,
		Image:       req.Image,
		Published:   req.Published,
		PublishDate: req.PublishDate,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleAdminDeletePost(w http.ResponseWriter, r *http.Request) {
	found, err := s.deps.Posts.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !found {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "post not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
