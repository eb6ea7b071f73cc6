package service

import (
	"context"
	"strconv"

	"selam/internal/middleware"
	"selam/internal/models"
	"selam/internal/observability"
	"selam/internal/repository"
)

// ReactionService toggles likes (prayers on dua requests) and bookmarks.
type ReactionService struct {
	store repository.Storage
}

func NewReactionService(store repository.Storage) *ReactionService {
	return &ReactionService{store: store}
}

func (s *ReactionService) ToggleLike(ctx context.Context, userID string, target models.Target) (models.LikeResult, error) {
	if err := requireID("user_id", userID); err != nil {
		return models.LikeResult{}, err
	}
	liked, err := s.store.ToggleLike(ctx, userID, target)
	if err != nil {
		return models.LikeResult{}, err
	}
	recordToggle(ctx, "like", target, liked)
	return models.LikeResult{Liked: liked}, nil
}

func (s *ReactionService) GetUserLike(ctx context.Context, userID string, target models.Target) (bool, error) {
	if err := requireID("user_id", userID); err != nil {
		return false, err
	}
	return s.store.GetUserLike(ctx, userID, target)
}

func (s *ReactionService) ToggleBookmark(ctx context.Context, userID string, target models.Target) (models.BookmarkResult, error) {
	if err := requireID("user_id", userID); err != nil {
		return models.BookmarkResult{}, err
	}
	on, err := s.store.ToggleBookmark(ctx, userID, target)
	if err != nil {
		return models.BookmarkResult{}, err
	}
	recordToggle(ctx, "bookmark", target, on)
	return models.BookmarkResult{Bookmarked: on}, nil
}

func (s *ReactionService) GetUserBookmark(ctx context.Context, userID string, target models.Target) (bool, error) {
	if err := requireID("user_id", userID); err != nil {
		return false, err
	}
	return s.store.GetUserBookmark(ctx, userID, target)
}

func recordToggle(ctx context.Context, relation string, target models.Target, on bool) {
	observability.ToggleResults.WithLabelValues(relation, string(target.Kind()), strconv.FormatBool(on)).Inc()
	middleware.Logger.DebugContext(ctx, "toggled",
		"relation", relation,
		"target", target.String(),
		"on", on,
	)
}
