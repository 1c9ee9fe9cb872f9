package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/brightertomorrows/website-backend/internal/domain/post"
)

// PostRepository is a mock for post.Repository.
type PostRepository struct {
	mock.Mock
}

func (m *PostRepository) List(ctx context.Context) ([]post.Post, error) {
	args := m.Called(ctx)
	if posts, ok := args.Get(0).([]post.Post); ok {
		return posts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PostRepository) Get(ctx context.Context, id string) (*post.Post, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*post.Post); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PostRepository) Write(ctx context.Context, p *post.Post) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *PostRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// Renderer is a mock for post.Renderer.
type Renderer struct {
	mock.Mock
}

func (m *Renderer) Render(markdown string) (string, error) {
	args := m.Called(markdown)
	return args.String(0), args.Error(1)
}
