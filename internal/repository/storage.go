// Package repository provides the storage engine: one capability interface
// with a durable gorm backend, an ephemeral in-memory backend, and
// decorators for metrics, tracing and caching.
package repository

import (
	"context"

	"selam/internal/models"
)

// Storage is the single data access contract of the application.
//
// Lookups of a missing id return (nil, nil). Operations that reference a
// missing row fail with a NOT_FOUND AppError, target shape violations with
// VALIDATION_ERROR and unique key violations with CONFLICT.
type Storage interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, in models.CreateUserInput) (*models.User, error)
	UpdateUser(ctx context.Context, id string, in models.UpdateUserInput) (*models.User, error)

	// GetPosts returns posts joined with their author, newest first.
	GetPosts(ctx context.Context, filter models.PostFilter) ([]*models.Post, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	CreatePost(ctx context.Context, in models.CreatePostInput) (*models.Post, error)
	// DeletePost reports whether a post was removed. Its likes, comments and
	// bookmarks go with it.
	DeletePost(ctx context.Context, id string) (bool, error)

	GetDuaRequests(ctx context.Context, filter models.DuaRequestFilter) ([]*models.DuaRequest, error)
	CreateDuaRequest(ctx context.Context, in models.CreateDuaRequestInput) (*models.DuaRequest, error)

	// ToggleLike removes the user's like on target if present, otherwise adds
	// it, and reports whether the target is liked afterwards.
	ToggleLike(ctx context.Context, userID string, target models.Target) (bool, error)
	GetUserLike(ctx context.Context, userID string, target models.Target) (bool, error)

	GetCommentsByPostID(ctx context.Context, postID string) ([]*models.Comment, error)
	GetCommentsByDuaRequestID(ctx context.Context, duaRequestID string) ([]*models.Comment, error)
	CreateComment(ctx context.Context, in models.CreateCommentInput) (*models.Comment, error)

	GetCommunities(ctx context.Context) ([]*models.Community, error)
	// CreateCommunity also makes the creator its owner member.
	CreateCommunity(ctx context.Context, in models.CreateCommunityInput) (*models.Community, error)
	// JoinCommunity is a no-op when the user is already a member.
	JoinCommunity(ctx context.Context, communityID, userID string) error

	GetEvents(ctx context.Context) ([]*models.Event, error)
	CreateEvent(ctx context.Context, in models.CreateEventInput) (*models.Event, error)
	// AttendEvent is a no-op when the user already attends and fails with a
	// validation error when the event is full.
	AttendEvent(ctx context.Context, eventID, userID string) error

	ToggleBookmark(ctx context.Context, userID string, target models.Target) (bool, error)
	GetUserBookmark(ctx context.Context, userID string, target models.Target) (bool, error)

	// Ping reports whether the backend can serve requests.
	Ping(ctx context.Context) error
}

// Backend names used in logs and metric labels.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)
