package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thrift-deals-service/internal/domain"
)

// newTestCommunityStore opens a throwaway on-disk database; the real
// SQLite driver exercises the SQL, unlike a mock.
func newTestCommunityStore(t *testing.T) *CommunityStore {
	t.Helper()
	s, err := OpenCommunityStore(filepath.Join(t.TempDir(), "community.db"))
	require.NoError(t, err, "Failed to open community store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCommunityStore_CreateAndGetPost(t *testing.T) {
	s := newTestCommunityStore(t)
	ctx := context.Background()

	created, err := s.CreatePost(ctx, &domain.Post{
		Author:   "dealhunter42",
		Category: "electronics",
		Title:    "Earbuds at 50% off",
		Content:  "Spotted on the morning refresh, grab fast",
		Tags:     []string{"earbuds", "flash-sale"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID, "store assigns an id")
	assert.False(t, created.CreatedAt.IsZero())

	fetched, err := s.GetPostByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, fetched.Title)
	assert.Equal(t, []string{"earbuds", "flash-sale"}, fetched.Tags)
	assert.Equal(t, 0, fetched.Likes)
	assert.False(t, fetched.IsPinned)
}

func TestCommunityStore_GetPostByID_NotFound(t *testing.T) {
	s := newTestCommunityStore(t)

	_, err := s.GetPostByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCommunityStore_ListPosts_Filters(t *testing.T) {
	s := newTestCommunityStore(t)
	ctx := context.Background()

	posts := []*domain.Post{
		{Author: "a", Category: "electronics", Title: "Monitor deal", Content: "34 inch ultrawide", Tags: []string{"monitor"}},
		{Author: "b", Category: "fashion", Title: "Shoe sale", Content: "Running shoes cheap", Tags: []string{"shoes"}},
		{Author: "c", Category: "electronics", Title: "Keyboard restock", Content: "Mechanical keyboards back", Tags: []string{"keyboard"}},
	}
	for _, p := range posts {
		_, err := s.CreatePost(ctx, p)
		require.NoError(t, err)
	}

	byCategory, total, err := s.ListPosts(ctx, ListPostsParams{Category: "electronics"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, byCategory, 2)

	bySearch, total, err := s.ListPosts(ctx, ListPostsParams{Search: "SHOES"})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, "Shoe sale", bySearch[0].Title)

	// Search also covers the tag blob.
	byTag, _, err := s.ListPosts(ctx, ListPostsParams{Search: "keyboard"})
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, "Keyboard restock", byTag[0].Title)

	none, total, err := s.ListPosts(ctx, ListPostsParams{Search: "nothing matches"})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, none)
}

func TestCommunityStore_ListPosts_PinnedLeadsEverySort(t *testing.T) {
	s := newTestCommunityStore(t)
	ctx := context.Background()

	_, err := s.CreatePost(ctx, &domain.Post{
		Author: "a", Category: "deals", Title: "Popular post", Content: "x", Likes: 100,
	})
	require.NoError(t, err)
	_, err = s.CreatePost(ctx, &domain.Post{
		Author: "mod", Category: "announcements", Title: "Rules", Content: "x", IsPinned: true,
	})
	require.NoError(t, err)

	for _, sortKey := range []string{"", "popular", "trending", "discussed"} {
		posts, _, err := s.ListPosts(ctx, ListPostsParams{Sort: sortKey})
		require.NoError(t, err)
		require.NotEmpty(t, posts)
		assert.Equal(t, "Rules", posts[0].Title, "sort %q", sortKey)
	}
}

func TestCommunityStore_ListPosts_TrendingWeighsCommentsDouble(t *testing.T) {
	s := newTestCommunityStore(t)
	ctx := context.Background()

	liked, err := s.CreatePost(ctx, &domain.Post{
		Author: "a", Category: "deals", Title: "Liked", Content: "x", Likes: 5,
	})
	require.NoError(t, err)
	discussed, err := s.CreatePost(ctx, &domain.Post{
		Author: "b", Category: "deals", Title: "Discussed", Content: "x", Likes: 0,
	})
	require.NoError(t, err)

	// 3 comments score 6 trending points, beating 5 likes.
	for i := 0; i < 3; i++ {
		_, err := s.AddComment(ctx, &domain.Comment{PostID: discussed.ID, Author: "c", Content: "me too"})
		require.NoError(t, err)
	}

	posts, _, err := s.ListPosts(ctx, ListPostsParams{Sort: "trending"})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, discussed.ID, posts[0].ID)
	assert.Equal(t, liked.ID, posts[1].ID)
}

func TestCommunityStore_ListPosts_Pagination(t *testing.T) {
	s := newTestCommunityStore(t)
	ctx := context.Background()

	base := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := s.CreatePost(ctx, &domain.Post{
			Author: "a", Category: "deals", Title: "Post", Content: "x",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	page, total, err := s.ListPosts(ctx, ListPostsParams{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, page, 1, "final partial page")
}

func TestCommunityStore_LikePost(t *testing.T) {
	s := newTestCommunityStore(t)
	ctx := context.Background()

	post, err := s.CreatePost(ctx, &domain.Post{Author: "a", Category: "deals", Title: "T", Content: "x"})
	require.NoError(t, err)

	liked, err := s.LikePost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)

	liked, err = s.LikePost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, liked.Likes)

	_, err = s.LikePost(ctx, "missing")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCommunityStore_AddAndListComments(t *testing.T) {
	s := newTestCommunityStore(t)
	ctx := context.Background()

	post, err := s.CreatePost(ctx, &domain.Post{Author: "a", Category: "deals", Title: "T", Content: "x"})
	require.NoError(t, err)

	first, err := s.AddComment(ctx, &domain.Comment{
		PostID: post.ID, Author: "b", Content: "Nice find",
		CreatedAt: time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	_, err = s.AddComment(ctx, &domain.Comment{
		PostID: post.ID, Author: "c", Content: "Ordered one",
		CreatedAt: time.Date(2025, 8, 1, 11, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	comments, err := s.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "Nice find", comments[0].Content, "oldest first")

	// The counter on the post tracks the comment rows.
	fetched, err := s.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fetched.CommentsCount)
}

func TestCommunityStore_AddComment_PostMissing(t *testing.T) {
	s := newTestCommunityStore(t)

	_, err := s.AddComment(context.Background(), &domain.Comment{
		PostID: "missing", Author: "b", Content: "hello",
	})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCommunityStore_SeedWelcomePost(t *testing.T) {
	s := newTestCommunityStore(t)
	ctx := context.Background()

	require.NoError(t, s.SeedWelcomePost(ctx))
	posts, total, err := s.ListPosts(ctx, ListPostsParams{})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.True(t, posts[0].IsPinned)

	// Seeding is idempotent and never overwrites real content.
	require.NoError(t, s.SeedWelcomePost(ctx))
	_, total, err = s.ListPosts(ctx, ListPostsParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}
