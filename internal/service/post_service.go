package service

import (
	"context"
	"strings"

	"selam/internal/models"
	"selam/internal/repository"
	"selam/internal/validation"
)

const (
	maxContentLen = 5000
	maxTitleLen   = 200
	maxTags       = 10
)

// PostService covers the feed: posts and dua requests.
type PostService struct {
	store        repository.Storage
	defaultLimit int
}

func NewPostService(store repository.Storage, defaultLimit int) *PostService {
	if defaultLimit <= 0 {
		defaultLimit = models.DefaultFeedLimit
	}
	return &PostService{store: store, defaultLimit: defaultLimit}
}

func (s *PostService) ListPosts(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	filter.Limit = clampLimit(filter.Limit, s.defaultLimit)
	filter.Tag = strings.TrimSpace(filter.Tag)
	return s.store.GetPosts(ctx, filter)
}

func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post", id)
	}
	return post, nil
}

func (s *PostService) CreatePost(ctx context.Context, in models.CreatePostInput) (*models.Post, error) {
	if err := requireID("user_id", in.UserID); err != nil {
		return nil, err
	}
	if err := validation.Required("content", in.Content, maxContentLen); err != nil {
		return nil, invalid(err)
	}
	if err := validation.ValidatePostType(in.Type); err != nil {
		return nil, invalid(err)
	}
	if in.MediaURL != nil && *in.MediaURL != "" {
		if err := validation.ValidateMediaURL(*in.MediaURL); err != nil {
			return nil, invalid(err)
		}
	} else if in.Type == models.PostTypeImage || in.Type == models.PostTypeVideo {
		return nil, models.NewValidationError("media_url is required for " + in.Type + " posts")
	}

	in.Category = strings.TrimSpace(in.Category)
	in.Tags = cleanTags(in.Tags)
	if len(in.Tags) > maxTags {
		return nil, models.NewValidationError("too many tags (max 10)")
	}
	return s.store.CreatePost(ctx, in)
}

func (s *PostService) DeletePost(ctx context.Context, id string) error {
	deleted, err := s.store.DeletePost(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError("Post", id)
	}
	return nil
}

func (s *PostService) ListDuaRequests(ctx context.Context, filter models.DuaRequestFilter) ([]*models.DuaRequest, error) {
	filter.Limit = clampLimit(filter.Limit, s.defaultLimit)
	return s.store.GetDuaRequests(ctx, filter)
}

func (s *PostService) CreateDuaRequest(ctx context.Context, in models.CreateDuaRequestInput) (*models.DuaRequest, error) {
	if err := requireID("user_id", in.UserID); err != nil {
		return nil, err
	}
	if err := validation.Required("title", in.Title, maxTitleLen); err != nil {
		return nil, invalid(err)
	}
	if err := validation.Required("content", in.Content, maxContentLen); err != nil {
		return nil, invalid(err)
	}
	if err := validation.Required("category", in.Category, 50); err != nil {
		return nil, invalid(err)
	}
	in.Tags = cleanTags(in.Tags)
	if len(in.Tags) > maxTags {
		return nil, models.NewValidationError("too many tags (max 10)")
	}
	return s.store.CreateDuaRequest(ctx, in)
}
