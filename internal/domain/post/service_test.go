package post_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/brightertomorrows/website-backend/internal/domain/post"
	"github.com/brightertomorrows/website-backend/internal/repository"
	"github.com/brightertomorrows/website-backend/internal/repository/mocks"
)

func TestPostService_Create(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PostRepository{}
	repo.On("Write", ctx, mock.Anything).Return(nil)

	svc := post.NewService(repo, nil, nil)
	p, err := svc.Create(ctx, post.CreateRequest{
		Title:   "Hello",
		Author:  "Jamie",
		Excerpt: "A first post",
		Content: "# Hello\n\nWorld.",
		Tags:    []string{"news"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	require.False(t, p.PublishDate.IsZero())
	require.Equal(t, p.PublishDate, p.LastModified)
	require.False(t, p.Published)
	repo.AssertExpectations(t)
}

func TestPostService_Create_MissingFields(t *testing.T) {
	ctx := context.Background()
	svc := post.NewService(&mocks.PostRepository{}, nil, nil)

	cases := []post.CreateRequest{
		{Author: "a", Excerpt: "e", Content: "c"},
		{Title: "t", Excerpt: "e", Content: "c"},
		{Title: "t", Author: "a", Content: "c"},
		{Title: "t", Author: "a", Excerpt: "e"},
		{Title: "  ", Author: "a", Excerpt: "e", Content: "c"},
	}
	for _, req := range cases {
		_, err := svc.Create(ctx, req)
		require.ErrorIs(t, err, post.ErrInvalidInput)
	}
}

func TestPostService_Update_MergesExplicitFields(t *testing.T) {
	ctx := context.Background()
	publishDate := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	existing := &post.Post{
		ID:           "p1",
		Title:        "Old title",
		Author:       "Jamie",
		Excerpt:      "Old excerpt",
		Content:      "Old content",
		PublishDate:  publishDate,
		LastModified: publishDate,
		Published:    false,
	}

	repo := &mocks.PostRepository{}
	repo.On("Get", ctx, "p1").Return(existing, nil)
	var written *post.Post
	repo.On("Write", ctx, mock.Anything).Run(func(args mock.Arguments) {
		written = args.Get(1).(*post.Post)
	}).Return(nil)

	svc := post.NewService(repo, nil, nil)
	published := true
	updated, err := svc.Update(ctx, post.UpdateRequest{
		ID:        "p1",
		Published: &published,
	})
	require.NoError(t, err)

	// Only the publish flag and LastModified move.
	require.True(t, updated.Published)
	require.Equal(t, "Old title", updated.Title)
	require.Equal(t, "Old content", updated.Content)
	require.Equal(t, "Old excerpt", updated.Excerpt)
	require.Equal(t, "Jamie", updated.Author)
	require.Equal(t, publishDate, updated.PublishDate)
	require.True(t, updated.LastModified.After(publishDate))
	require.Equal(t, updated, written)
}

func TestPostService_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PostRepository{}
	repo.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)

	svc := post.NewService(repo, nil, nil)
	_, err := svc.Update(ctx, post.UpdateRequest{ID: "missing"})
	require.ErrorIs(t, err, post.ErrPostNotFound)
}

func TestPostService_ListPublished_FiltersSortsRenders(t *testing.T) {
	ctx := context.Background()
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	repo := &mocks.PostRepository{}
	repo.On("List", ctx).Return([]post.Post{
		{ID: "draft", Published: false, PublishDate: newer},
		{ID: "old", Published: true, PublishDate: older, Content: "old body"},
		{ID: "new", Published: true, PublishDate: newer, Content: "new body"},
	}, nil)

	renderer := &mocks.Renderer{}
	renderer.On("Render", "old body").Return("<p>old body</p>", nil)
	renderer.On("Render", "new body").Return("<p>new body</p>", nil)

	svc := post.NewService(repo, renderer, nil)
	posts, err := svc.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, "new", posts[0].ID)
	require.Equal(t, "old", posts[1].ID)
	require.Equal(t, "<p>new body</p>", posts[0].RenderedHTML)
}

func TestPostService_GetPublished_HidesDrafts(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PostRepository{}
	repo.On("Get", ctx, "draft").Return(&post.Post{ID: "draft", Published: false}, nil)

	svc := post.NewService(repo, nil, nil)
	_, err := svc.GetPublished(ctx, "draft")
	require.ErrorIs(t, err, post.ErrPostNotFound)
}

func TestPostService_Delete_MissingIsNotAnError(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PostRepository{}
	repo.On("Delete", ctx, "missing").Return(false, nil)

	svc := post.NewService(repo, nil, nil)
	found, err := svc.Delete(ctx, "missing")
	require.NoError(t, err)
	require.False(t, found)
}
