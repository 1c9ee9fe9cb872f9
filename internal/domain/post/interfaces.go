package post

import "context"

// Repository provides persistence for posts. List implementations must skip
// individual entries that fail to parse rather than failing the whole batch.
type Repository interface {
	List(ctx context.Context) ([]Post, error)
	Get(ctx context.Context, id string) (*Post, error)
	Write(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id string) (bool, error)
}

// Renderer converts markdown to display HTML.
type Renderer interface {
	Render(markdown string) (string, error)
}
