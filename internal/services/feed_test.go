package services

import (
	"context"
	"testing"
	"time"

	"github.com/socialhub/socialhub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFeedSourcesNoFollows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice@example.com")

	sources, err := env.feed.ResolveFeedSources(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{alice.ID}, sources, "a user with no follows sees only their own posts")
}

func TestResolveFeedSourcesIncludesSelfAndFollowed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")
	carol := env.createUser(t, "carol@example.com")

	if _, err := env.follows.Follow(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("follow bob: %v", err)
	}
	if _, err := env.follows.Follow(ctx, alice.ID, carol.ID); err != nil {
		t.Fatalf("follow carol: %v", err)
	}

	sources, err := env.feed.ResolveFeedSources(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, sources, 3)
	assert.Contains(t, sources, alice.ID)
	assert.Contains(t, sources, bob.ID)
	assert.Contains(t, sources, carol.ID)
}

func TestGetFeedContainsFollowedUsersPost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")

	if _, err := env.follows.Follow(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}
	post, err := env.posts.CreatePost(ctx, bob.ID, &CreatePostRequest{
		Content:  "hello world",
		Hashtags: []string{"golang"},
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	views, total, err := env.feed.GetFeed(ctx, alice.ID, 0, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, views, 1)

	view := views[0]
	assert.Equal(t, post.ID, view.ID)
	assert.Equal(t, bob.ID, view.UserID)
	assert.Equal(t, []string{"golang"}, view.Hashtags)
	assert.Equal(t, int64(0), view.LikeCount)
}

func TestGetFeedExcludesUnrelatedUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice@example.com")
	stranger := env.createUser(t, "stranger@example.com")

	if _, err := env.posts.CreatePost(ctx, stranger.ID, &CreatePostRequest{Content: "not for alice"}); err != nil {
		t.Fatalf("create post: %v", err)
	}

	views, total, err := env.feed.GetFeed(ctx, alice.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, views)
}

func TestGetFeedPagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice@example.com")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		post := &models.Post{
			UserID:    alice.ID,
			Content:   "post",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := env.postRepo.Create(ctx, post); err != nil {
			t.Fatalf("create post %d: %v", i, err)
		}
	}

	views, total, err := env.feed.GetFeed(ctx, alice.ID, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total, "total reflects the full result set, not the page")
	assert.Len(t, views, 2)

	views, total, err = env.feed.GetFeed(ctx, alice.ID, 4, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, views, 1)

	views, _, err = env.feed.GetFeed(ctx, alice.ID, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestGetFeedNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")
	if _, err := env.follows.Follow(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}

	base := time.Now().Add(-time.Hour)
	old := &models.Post{UserID: alice.ID, Content: "old", CreatedAt: base}
	recent := &models.Post{UserID: bob.ID, Content: "recent", CreatedAt: base.Add(10 * time.Minute)}
	for _, p := range []*models.Post{old, recent} {
		if err := env.postRepo.Create(ctx, p); err != nil {
			t.Fatalf("create post: %v", err)
		}
	}

	views, _, err := env.feed.GetFeed(ctx, alice.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, recent.ID, views[0].ID)
	assert.Equal(t, old.ID, views[1].ID)
}
