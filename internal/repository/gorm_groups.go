package repository

import (
	"context"

	"selam/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const communitySelect = "communities.*, " +
	"(SELECT COUNT(*) FROM community_members WHERE community_members.community_id = communities.id) AS member_count"

const eventSelect = "events.*, " +
	"(SELECT COUNT(*) FROM event_attendees WHERE event_attendees.event_id = events.id) AS attendees_count"

func (s *gormStorage) GetCommunities(ctx context.Context) ([]*models.Community, error) {
	var communities []*models.Community
	err := s.db.WithContext(ctx).
		Model(&models.Community{}).
		Select(communitySelect).
		Preload("Creator").
		Order("communities.created_at DESC, communities.id DESC").
		Find(&communities).Error
	if err != nil {
		return nil, err
	}
	return withAuthor(communities, func(c *models.Community) bool { return c.Creator != nil }), nil
}

func (s *gormStorage) CreateCommunity(ctx context.Context, in models.CreateCommunityInput) (*models.Community, error) {
	if !validID(in.CreatedBy) {
		return nil, models.NewNotFoundError("User", in.CreatedBy)
	}
	community, owner := models.NewCommunity(in, s.now())

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(community).Error; err != nil {
			return err
		}
		return tx.Create(owner).Error
	})
	if err != nil {
		return nil, translateError(err, "community")
	}
	return community, nil
}

func (s *gormStorage) JoinCommunity(ctx context.Context, communityID, userID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.requireRow(tx, &models.Community{}, "Community", communityID); err != nil {
			return err
		}
		if err := s.requireRow(tx, &models.User{}, "User", userID); err != nil {
			return err
		}
		member := &models.CommunityMember{
			CommunityID: communityID,
			UserID:      userID,
			Role:        models.CommunityRoleMember,
			JoinedAt:    s.now(),
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(member).Error
	})
	return translateError(err, "community member")
}

func (s *gormStorage) GetEvents(ctx context.Context) ([]*models.Event, error) {
	var events []*models.Event
	err := s.db.WithContext(ctx).
		Model(&models.Event{}).
		Select(eventSelect).
		Preload("Creator").
		Order("events.created_at DESC, events.id DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return withAuthor(events, func(e *models.Event) bool { return e.Creator != nil }), nil
}

func (s *gormStorage) CreateEvent(ctx context.Context, in models.CreateEventInput) (*models.Event, error) {
	if !validID(in.CreatedBy) {
		return nil, models.NewNotFoundError("User", in.CreatedBy)
	}
	event := models.NewEvent(in, s.now())
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, translateError(err, "event")
	}
	return event, nil
}

// AttendEvent locks the event row on postgres so concurrent registrations
// cannot overbook it. SQLite serializes writers on its own.
func (s *gormStorage) AttendEvent(ctx context.Context, eventID, userID string) error {
	if !validID(eventID) {
		return models.NewNotFoundError("Event", eventID)
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&models.Event{}).Where("id = ?", eventID)
		if s.isPostgres() {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var event models.Event
		found, err := first(q, &event)
		if err != nil {
			return err
		}
		if !found {
			return models.NewNotFoundError("Event", eventID)
		}
		if err := s.requireRow(tx, &models.User{}, "User", userID); err != nil {
			return err
		}

		var attending, attendees int64
		if err := tx.Model(&models.EventAttendee{}).
			Where("event_id = ? AND user_id = ?", eventID, userID).
			Count(&attending).Error; err != nil {
			return err
		}
		if attending > 0 {
			return nil
		}
		if err := tx.Model(&models.EventAttendee{}).
			Where("event_id = ?", eventID).
			Count(&attendees).Error; err != nil {
			return err
		}
		if attendees >= int64(event.Capacity) {
			return models.NewValidationError("event is full")
		}

		attendee := &models.EventAttendee{
			EventID:      eventID,
			UserID:       userID,
			RegisteredAt: s.now(),
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(attendee).Error
	})
	return translateError(err, "event attendee")
}

func (s *gormStorage) requireRow(tx *gorm.DB, model any, resource, id string) error {
	ok, err := s.exists(tx, model, id)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError(resource, id)
	}
	return nil
}
