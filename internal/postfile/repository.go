package postfile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/brightertomorrows/website-backend/internal/domain/post"
	"github.com/brightertomorrows/website-backend/internal/repository"
)

// Repository stores one markdown file per post under a single directory.
// There is no locking; concurrent writes to the same identifier are last
// write wins.
type Repository struct {
	dir    string
	logger *slog.Logger
}

// NewRepository creates the posts directory if needed and returns a
// repository over it.
func NewRepository(dir string, logger *slog.Logger) (*Repository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create posts dir: %w", err)
	}
	return &Repository{dir: dir, logger: logger}, nil
}

// List parses every post file in the directory. Files that fail to parse are
// logged and skipped; a single bad file never fails the listing.
func (r *Repository) List(ctx context.Context) ([]post.Post, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("read posts dir: %w", err)
	}

	var posts []post.Post
	for _, entry := range entries {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".md")
		p, err := r.read(id)
		if err != nil {
			r.logger.Warn("skipping unparseable post file", "file", entry.Name(), "error", err)
			continue
		}
		posts = append(posts, *p)
	}
	return posts, nil
}

// Get reads a single post by identifier.
func (r *Repository) Get(ctx context.Context, id string) (*post.Post, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	p, err := r.read(id)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Write serializes the post and overwrites its file.
func (r *Repository) Write(ctx context.Context, p *post.Post) error {
	if err := validID(p.ID); err != nil {
		return err
	}
	if err := os.WriteFile(r.path(p.ID), encode(p), 0o644); err != nil {
		return fmt.Errorf("write post file: %w", err)
	}
	return nil
}

// Delete removes the post's file. Absence is reported, not an error.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	if err := validID(id); err != nil {
		return false, err
	}
	err := os.Remove(r.path(id))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("remove post file: %w", err)
	}
	return true, nil
}

func (r *Repository) read(id string) (*post.Post, error) {
	data, err := os.ReadFile(r.path(id))
	if err != nil {
		return nil, err
	}
	return parse(id, data)
}

func (r *Repository) path(id string) string {
	return filepath.Join(r.dir, id+".md")
}

// validID keeps identifiers inside the posts directory.
func validID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return repository.ErrInvalidInput
	}
	return nil
}
