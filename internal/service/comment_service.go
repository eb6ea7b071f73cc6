package service

import (
	"context"

	"selam/internal/models"
	"selam/internal/repository"
	"selam/internal/validation"
)

const maxCommentLen = 2000

type CommentService struct {
	store repository.Storage
}

func NewCommentService(store repository.Storage) *CommentService {
	return &CommentService{store: store}
}

func (s *CommentService) ListForPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	return s.store.GetCommentsByPostID(ctx, postID)
}

func (s *CommentService) ListForDuaRequest(ctx context.Context, duaRequestID string) ([]*models.Comment, error) {
	return s.store.GetCommentsByDuaRequestID(ctx, duaRequestID)
}

func (s *CommentService) CreateComment(ctx context.Context, in models.CreateCommentInput) (*models.Comment, error) {
	if _, err := in.Target(); err != nil {
		return nil, err
	}
	if err := requireID("user_id", in.UserID); err != nil {
		return nil, err
	}
	if err := validation.Required("content", in.Content, maxCommentLen); err != nil {
		return nil, invalid(err)
	}
	return s.store.CreateComment(ctx, in)
}
