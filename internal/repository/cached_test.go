package repository

import (
	"context"
	"testing"

	"selam/internal/cache"
	"selam/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStorage counts single-row reads reaching the wrapped backend.
type countingStorage struct {
	Storage
	userReads int
	postReads int
}

func (c *countingStorage) GetUser(ctx context.Context, id string) (*models.User, error) {
	c.userReads++
	return c.Storage.GetUser(ctx, id)
}

func (c *countingStorage) GetPost(ctx context.Context, id string) (*models.Post, error) {
	c.postReads++
	return c.Storage.GetPost(ctx, id)
}

func newCachedStorage(t *testing.T) (*miniredis.Miniredis, *countingStorage, Storage) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	inner := &countingStorage{Storage: newMemoryStorage(newStepClock().Now)}
	return mr, inner, WithCache(inner, cache.New(client))
}

func TestWithCache_DisabledReturnsStorage(t *testing.T) {
	s := NewMemoryStorage()
	assert.Same(t, s, WithCache(s, nil))
	assert.Same(t, s, WithCache(s, cache.New(nil)))
}

func TestWithCache_GetPost(t *testing.T) {
	mr, inner, s := newCachedStorage(t)
	ctx := context.Background()
	u := mustUser(t, s, "ayse")
	p := mustPost(t, s, u.ID, "ramazan")

	first, err := s.GetPost(ctx, p.ID)
	require.NoError(t, err)
	second, err := s.GetPost(ctx, p.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.postReads)
	assert.True(t, mr.Exists(cache.PostKey(p.ID)))
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.StringList{"ramazan"}, second.Tags)
	require.NotNil(t, second.User)
	assert.Equal(t, "ayse", second.User.Username)

	liked, err := s.ToggleLike(ctx, u.ID, models.PostTarget(p.ID))
	require.NoError(t, err)
	require.True(t, liked)
	assert.False(t, mr.Exists(cache.PostKey(p.ID)))

	third, err := s.GetPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.postReads)
	assert.Equal(t, 1, third.LikesCount)

	_, err = s.CreateComment(ctx, models.CreateCommentInput{UserID: u.ID, PostID: &p.ID, Content: "amin"})
	require.NoError(t, err)
	fourth, err := s.GetPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fourth.CommentsCount)

	deleted, err := s.DeletePost(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, deleted)
	gone, err := s.GetPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestWithCache_MissesAreNotCached(t *testing.T) {
	mr, inner, s := newCachedStorage(t)
	ctx := context.Background()
	id := "1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed"

	for i := 0; i < 2; i++ {
		u, err := s.GetUser(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, u)
	}
	assert.Equal(t, 2, inner.userReads)
	assert.False(t, mr.Exists(cache.UserKey(id)))
}

func TestWithCache_UpdateUserInvalidates(t *testing.T) {
	mr, inner, s := newCachedStorage(t)
	ctx := context.Background()
	u := mustUser(t, s, "ayse")

	_, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists(cache.UserKey(u.ID)))

	name := "Ayşe Hanım"
	_, err = s.UpdateUser(ctx, u.ID, models.UpdateUserInput{Name: &name})
	require.NoError(t, err)
	assert.False(t, mr.Exists(cache.UserKey(u.ID)))

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.Equal(t, 2, inner.userReads)
}

func TestWithCache_PostAuthorFollowsUserUpdate(t *testing.T) {
	mr, inner, s := newCachedStorage(t)
	ctx := context.Background()
	u := mustUser(t, s, "ayse")
	p := mustPost(t, s, u.ID, "sabir")

	warm, err := s.GetPost(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, warm.User)
	cachedRaw, err := mr.Get(cache.PostKey(p.ID))
	require.NoError(t, err)
	assert.NotContains(t, cachedRaw, `"users"`, "author is not stored with the post")

	name := "Renamed"
	_, err = s.UpdateUser(ctx, u.ID, models.UpdateUserInput{Name: &name})
	require.NoError(t, err)

	got, err := s.GetPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.postReads, "post body still served from cache")
	require.NotNil(t, got.User)
	assert.Equal(t, "Renamed", got.User.Name)
}

func TestWithCache_RedisDownFallsBackToStorage(t *testing.T) {
	mr, inner, s := newCachedStorage(t)
	ctx := context.Background()
	u := mustUser(t, s, "ayse")
	mr.Close()

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, inner.userReads)
}
