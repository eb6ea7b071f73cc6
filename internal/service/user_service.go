package service

import (
	"context"
	"strings"

	"selam/internal/models"
	"selam/internal/repository"
	"selam/internal/validation"
)

type UserService struct {
	store repository.Storage
}

func NewUserService(store repository.Storage) *UserService {
	return &UserService{store: store}
}

// SignUp registers a user. Email and username must both be unused; the
// unique indexes still guard the race between the check and the insert.
func (s *UserService) SignUp(ctx context.Context, in models.CreateUserInput) (*models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.TrimSpace(in.Username)
	in.Name = strings.TrimSpace(in.Name)
	// Role and verification are never self-assigned.
	in.Role = ""
	in.Verified = false

	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, invalid(err)
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, invalid(err)
	}
	if err := validation.Required("name", in.Name, 100); err != nil {
		return nil, invalid(err)
	}

	existing, err := s.store.GetUserByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("username already taken", nil)
	}
	existing, err = s.store.GetUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("email already registered", nil)
	}

	return s.store.CreateUser(ctx, in)
}

// SignIn looks a user up by email. There are no credentials to check.
func (s *UserService) SignIn(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, models.NewValidationError("email is required")
	}
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("User not found")
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", id)
	}
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id string, in models.UpdateUserInput) (*models.User, error) {
	if in.Username != nil {
		trimmed := strings.TrimSpace(*in.Username)
		if err := validation.ValidateUsername(trimmed); err != nil {
			return nil, invalid(err)
		}
		in.Username = &trimmed
	}
	if in.Name != nil {
		if err := validation.Required("name", *in.Name, 100); err != nil {
			return nil, invalid(err)
		}
	}
	if in.Bio != nil && len([]rune(*in.Bio)) > 500 {
		return nil, models.NewValidationError("bio too long (max 500 characters)")
	}

	user, err := s.store.UpdateUser(ctx, id, in)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", id)
	}
	return user, nil
}
