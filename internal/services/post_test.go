package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostNormalizesHashtags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice@example.com")

	post, err := env.posts.CreatePost(ctx, alice.ID, &CreatePostRequest{
		Content:  "tagged",
		Hashtags: []string{"Go", "go", "  go  ", "backend"},
	})
	require.NoError(t, err)

	view, err := env.posts.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "backend"}, view.Hashtags, "case and whitespace variants collapse to one tag")
}

func TestCreatePostReusesExistingHashtag(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice@example.com")

	for i := 0; i < 2; i++ {
		if _, err := env.posts.CreatePost(ctx, alice.ID, &CreatePostRequest{
			Content:  "post",
			Hashtags: []string{"shared"},
		}); err != nil {
			t.Fatalf("create post %d: %v", i, err)
		}
	}

	tags, err := env.hashtagRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1, "second use of the tag must not create a new row")
	assert.Equal(t, "shared", tags[0].Name)

	views, total, err := env.posts.ListPostsByHashtag(ctx, "shared", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, views, 2)
}

func TestListPostsByUnknownHashtag(t *testing.T) {
	env := newTestEnv(t)

	views, total, err := env.posts.ListPostsByHashtag(context.Background(), "nosuchtag", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, views)
}

func TestUpdatePostOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice@example.com")
	eve := env.createUser(t, "eve@example.com")

	post, err := env.posts.CreatePost(ctx, alice.ID, &CreatePostRequest{Content: "original"})
	require.NoError(t, err)

	_, err = env.posts.UpdatePost(ctx, eve.ID, post.ID, &UpdatePostRequest{Content: "hijacked"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	updated, err := env.posts.UpdatePost(ctx, alice.ID, post.ID, &UpdatePostRequest{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestDeletePostOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice@example.com")
	eve := env.createUser(t, "eve@example.com")

	post, err := env.posts.CreatePost(ctx, alice.ID, &CreatePostRequest{Content: "mine"})
	require.NoError(t, err)

	err = env.posts.DeletePost(ctx, eve.ID, post.ID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	require.NoError(t, env.posts.DeletePost(ctx, alice.ID, post.ID))

	_, err = env.posts.GetPost(ctx, post.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestLikePost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")

	post, err := env.posts.CreatePost(ctx, bob.ID, &CreatePostRequest{Content: "likeable"})
	require.NoError(t, err)

	like, err := env.likes.LikePost(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, like.PostID)

	_, err = env.likes.LikePost(ctx, alice.ID, post.ID)
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	_, err = env.likes.LikePost(ctx, alice.ID, 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	view, err := env.posts.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), view.LikeCount)
}

func TestUnlikePostOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")

	post, err := env.posts.CreatePost(ctx, bob.ID, &CreatePostRequest{Content: "likeable"})
	require.NoError(t, err)
	like, err := env.likes.LikePost(ctx, alice.ID, post.ID)
	require.NoError(t, err)

	err = env.likes.UnlikePost(ctx, bob.ID, like.ID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	require.NoError(t, env.likes.UnlikePost(ctx, alice.ID, like.ID))

	view, err := env.posts.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), view.LikeCount)
}
