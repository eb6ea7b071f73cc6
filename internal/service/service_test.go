package service

import (
	"context"
	"errors"
	"testing"

	"selam/internal/models"
	"selam/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storageStub overrides the Storage calls a test cares about. Calling any
// other method panics on the nil embedded interface.
type storageStub struct {
	repository.Storage
	getUserByUsernameFn func(context.Context, string) (*models.User, error)
	getUserByEmailFn    func(context.Context, string) (*models.User, error)
	createUserFn        func(context.Context, models.CreateUserInput) (*models.User, error)
	getPostsFn          func(context.Context, models.PostFilter) ([]*models.Post, error)
	deletePostFn        func(context.Context, string) (bool, error)
	toggleLikeFn        func(context.Context, string, models.Target) (bool, error)
}

func (s *storageStub) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUserByUsernameFn(ctx, username)
}
func (s *storageStub) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUserByEmailFn(ctx, email)
}
func (s *storageStub) CreateUser(ctx context.Context, in models.CreateUserInput) (*models.User, error) {
	return s.createUserFn(ctx, in)
}
func (s *storageStub) GetPosts(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	return s.getPostsFn(ctx, filter)
}
func (s *storageStub) DeletePost(ctx context.Context, id string) (bool, error) {
	return s.deletePostFn(ctx, id)
}
func (s *storageStub) ToggleLike(ctx context.Context, userID string, target models.Target) (bool, error) {
	return s.toggleLikeFn(ctx, userID, target)
}

func noUser(context.Context, string) (*models.User, error) { return nil, nil }

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertCode(t, err, models.CodeValidation)
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func seedUser(t *testing.T, store repository.Storage, username string) *models.User {
	t.Helper()
	u, err := NewUserService(store).SignUp(context.Background(), models.CreateUserInput{
		Email:    username + "@example.com",
		Name:     username,
		Username: username,
	})
	require.NoError(t, err)
	return u
}

func strPtr(s string) *string { return &s }
