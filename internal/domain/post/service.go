package post

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/brightertomorrows/website-backend/internal/repository"
)

// Service handles post business logic.
type Service struct {
	repo     Repository
	renderer Renderer
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new post service.
func NewService(repo Repository, renderer Renderer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, renderer: renderer, logger: logger, now: time.Now}
}

// CreateRequest describes a new post. Title, Content, Excerpt, and Author are
// required.
type CreateRequest struct {
	Title     string
	Author    string
	Excerpt   string
	Content   string
	Tags      []string
	Image     string
	Published bool
}

// UpdateRequest describes a partial update. Nil fields are left unchanged;
// PublishDate is preserved unless explicitly supplied.
type UpdateRequest struct {
	ID          string
	Title       *string
	Author      *string
	Excerpt     *string
	Content     *string
	Tags        []string
	Image       *string
	Published   *bool
	PublishDate *time.Time
}

// ListAll returns every post, drafts included, with raw markdown bodies.
func (s *Service) ListAll(ctx context.Context) ([]Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	return posts, nil
}

// Get returns a post by ID regardless of publish state.
func (s *Service) Get(ctx context.Context, id string) (*Post, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("getting post: %w", err)
	}
	return p, nil
}

// GetPublished returns a published post with its body rendered to HTML.
// Drafts are invisible here and report not-found.
func (s *Service) GetPublished(ctx context.Context, id string) (*Post, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Published {
		return nil, ErrPostNotFound
	}
	s.render(p)
	return p, nil
}

// ListPublished returns published posts, newest first, rendered to HTML.
func (s *Service) ListPublished(ctx context.Context) ([]Post, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	published := make([]Post, 0, len(all))
	for _, p := range all {
		if p.Published {
			s.render(&p)
			published = append(published, p)
		}
	}
	sort.SliceStable(published, func(i, j int) bool {
		return published[i].PublishDate.After(published[j].PublishDate)
	})
	return published, nil
}

// Create validates, assigns an identifier, stamps both timestamps, and writes
// the post.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Post, error) {
	if strings.TrimSpace(req.Title) == "" ||
		strings.TrimSpace(req.Content) == "" ||
		strings.TrimSpace(req.Excerpt) == "" ||
		strings.TrimSpace(req.Author) == "" {
		return nil, ErrInvalidInput
	}

	now := s.now()
	p := &Post{
		ID:           newID(now),
		Title:        req.Title,
		Author:       req.Author,
		Excerpt:      req.Excerpt,
		Content:      req.Content,
		Tags:         req.Tags,
		Image:        req.Image,
		PublishDate:  now,
		LastModified: now,
		Published:    req.Published,
	}
	if err := s.repo.Write(ctx, p); err != nil {
		return nil, fmt.Errorf("writing post: %w", err)
	}
	return p, nil
}

// Update merges supplied fields over the stored post, refreshes LastModified,
// and overwrites the file. The identifier and publish timestamp survive unless
// PublishDate is explicitly set.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Post, error) {
	if req.ID == "" {
		return nil, ErrInvalidInput
	}
	current, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.Title != nil {
		updated.Title = *req.Title
	}
	if req.Author != nil {
		updated.Author = *req.Author
	}
	if req.Excerpt != nil {
		updated.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		updated.Content = *req.Content
	}
	if req.Tags != nil {
		updated.Tags = req.Tags
	}
	if req.Image != nil {
		updated.Image = *req.Image
	}
	if req.Published != nil {
		updated.Published = *req.Published
	}
	if req.PublishDate != nil {
		updated.PublishDate = *req.PublishDate
	}
	updated.LastModified = s.now()

	if err := s.repo.Write(ctx, &updated); err != nil {
		return nil, fmt.Errorf("updating post: %w", err)
	}
	return &updated, nil
}

// Delete removes a post's file. A missing post reports found=false, not an
// error.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("deleting post: %w", err)
	}
	return found, nil
}

func (s *Service) render(p *Post) {
	if s.renderer == nil {
		return
	}
	html, err := s.renderer.Render(p.Content)
	if err != nil {
		s.logger.Warn("render failed, serving raw markdown", "post_id", p.ID, "error", err)
		return
	}
	p.RenderedHTML = html
}

// newID builds a time-sortable identifier with a random suffix. Good enough
// for a low-write-rate admin tool; not collision-proof under concurrent
// writers.
func newID(now time.Time) string {
	suffix := make([]byte, 3)
	_, _ = rand.Read(suffix)
	return strconv.FormatInt(now.UnixMilli(), 36) + "-" + hex.EncodeToString(suffix)
}
