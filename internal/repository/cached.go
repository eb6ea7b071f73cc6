package repository

import (
	"context"

	"selam/internal/cache"
	"selam/internal/middleware"
	"selam/internal/models"
)

// cached serves single users and posts cache-aside and drops the cached
// copies when a write changes them. Every other call goes straight to the
// embedded Storage.
type cached struct {
	Storage
	cache *cache.Cache
}

// WithCache wraps s with c. A disabled cache returns s unchanged.
func WithCache(s Storage, c *cache.Cache) Storage {
	if !c.Enabled() {
		return s
	}
	return &cached{Storage: s, cache: c}
}

func (c *cached) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	found, err := c.cache.Aside(ctx, "user", cache.UserKey(id), &user, cache.UserTTL, func() (bool, error) {
		u, err := c.Storage.GetUser(ctx, id)
		if err != nil || u == nil {
			return false, err
		}
		user = *u
		return true, nil
	})
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

func (c *cached) UpdateUser(ctx context.Context, id string, in models.UpdateUserInput) (*models.User, error) {
	user, err := c.Storage.UpdateUser(ctx, id, in)
	if err == nil && user != nil {
		c.cache.Invalidate(ctx, cache.UserKey(id))
	}
	return user, err
}

// GetPost caches the post without its author; the author is attached on
// every read through GetUser so profile edits show up at once.
func (c *cached) GetPost(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	var author *models.User
	found, err := c.cache.Aside(ctx, "post", cache.PostKey(id), &post, cache.PostTTL, func() (bool, error) {
		p, err := c.Storage.GetPost(ctx, id)
		if err != nil || p == nil {
			return false, err
		}
		post = *p
		author, post.User = p.User, nil
		return true, nil
	})
	if err != nil || !found {
		return nil, err
	}
	if author == nil {
		if author, err = c.GetUser(ctx, post.UserID); err != nil {
			return nil, err
		}
	}
	post.User = author
	return &post, nil
}

func (c *cached) DeletePost(ctx context.Context, id string) (bool, error) {
	deleted, err := c.Storage.DeletePost(ctx, id)
	if err == nil && deleted {
		c.cache.Invalidate(ctx, cache.PostKey(id))
	}
	return deleted, err
}

func (c *cached) ToggleLike(ctx context.Context, userID string, target models.Target) (bool, error) {
	liked, err := c.Storage.ToggleLike(ctx, userID, target)
	if err == nil {
		c.invalidateTarget(ctx, target)
	}
	return liked, err
}

func (c *cached) CreateComment(ctx context.Context, in models.CreateCommentInput) (*models.Comment, error) {
	comment, err := c.Storage.CreateComment(ctx, in)
	if err == nil {
		c.invalidateTarget(ctx, comment.Target())
	}
	return comment, err
}

func (c *cached) invalidateTarget(ctx context.Context, target models.Target) {
	if target.Kind() != models.TargetPost {
		return
	}
	c.cache.Invalidate(ctx, cache.PostKey(target.ID()))
	middleware.Logger.DebugContext(ctx, "post cache invalidated", "post_id", target.ID())
}
