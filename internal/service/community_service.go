package service

import (
	"context"
	"strings"

	"selam/internal/models"
	"selam/internal/repository"
	"selam/internal/validation"
)

// CommunityService covers communities and events, the two joinable groups.
type CommunityService struct {
	store repository.Storage
}

func NewCommunityService(store repository.Storage) *CommunityService {
	return &CommunityService{store: store}
}

func (s *CommunityService) ListCommunities(ctx context.Context) ([]*models.Community, error) {
	return s.store.GetCommunities(ctx)
}

func (s *CommunityService) CreateCommunity(ctx context.Context, in models.CreateCommunityInput) (*models.Community, error) {
	if err := requireID("created_by", in.CreatedBy); err != nil {
		return nil, err
	}
	for _, f := range []struct {
		name, value string
		max         int
	}{
		{"name", in.Name, 100},
		{"description", in.Description, 1000},
		{"category", in.Category, 50},
	} {
		if err := validation.Required(f.name, f.value, f.max); err != nil {
			return nil, invalid(err)
		}
	}
	if in.CoverImage != nil && *in.CoverImage != "" {
		if err := validation.ValidateMediaURL(*in.CoverImage); err != nil {
			return nil, invalid(err)
		}
	}
	in.Name = strings.TrimSpace(in.Name)
	return s.store.CreateCommunity(ctx, in)
}

func (s *CommunityService) JoinCommunity(ctx context.Context, communityID, userID string) error {
	if err := requireID("user_id", userID); err != nil {
		return err
	}
	return s.store.JoinCommunity(ctx, communityID, userID)
}

func (s *CommunityService) ListEvents(ctx context.Context) ([]*models.Event, error) {
	return s.store.GetEvents(ctx)
}

func (s *CommunityService) CreateEvent(ctx context.Context, in models.CreateEventInput) (*models.Event, error) {
	if err := requireID("created_by", in.CreatedBy); err != nil {
		return nil, err
	}
	for _, f := range []struct {
		name, value string
		max         int
	}{
		{"title", in.Title, maxTitleLen},
		{"description", in.Description, maxContentLen},
		{"type", in.Type, 50},
		{"location_name", in.LocationName, 200},
		{"location_address", in.LocationAddress, 300},
		{"location_city", in.LocationCity, 100},
		{"organizer_name", in.OrganizerName, 100},
	} {
		if err := validation.Required(f.name, f.value, f.max); err != nil {
			return nil, invalid(err)
		}
	}
	if err := validation.ValidateEventDate(in.Date); err != nil {
		return nil, invalid(err)
	}
	if err := validation.ValidateEventTime(in.Time); err != nil {
		return nil, invalid(err)
	}
	if in.Capacity < 0 {
		return nil, models.NewValidationError("capacity must not be negative")
	}
	if err := validation.ValidatePrice(in.Price); err != nil {
		return nil, invalid(err)
	}
	if in.ImageURL != nil && *in.ImageURL != "" {
		if err := validation.ValidateMediaURL(*in.ImageURL); err != nil {
			return nil, invalid(err)
		}
	}
	in.Tags = cleanTags(in.Tags)
	in.Requirements = cleanTags(in.Requirements)
	return s.store.CreateEvent(ctx, in)
}

func (s *CommunityService) AttendEvent(ctx context.Context, eventID, userID string) error {
	if err := requireID("user_id", userID); err != nil {
		return err
	}
	return s.store.AttendEvent(ctx, eventID, userID)
}
