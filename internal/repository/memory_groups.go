package repository

import (
	"context"
	"time"

	"selam/internal/models"

	"github.com/google/uuid"
)

func (m *memoryStorage) GetCommunities(_ context.Context) ([]*models.Community, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	recs := make([]*record[models.Community], 0, len(m.communities))
	for _, rec := range m.communities {
		recs = append(recs, rec)
	}
	newestFirst(recs, func(c *models.Community) (time.Time, string) { return c.CreatedAt, c.ID })

	counts := make(map[string]int)
	for _, member := range m.members {
		counts[member.CommunityID]++
	}

	communities := make([]*models.Community, 0, len(recs))
	for _, rec := range recs {
		creator := m.author(rec.row.CreatedBy)
		if creator == nil {
			continue
		}
		c := rec.row
		c.Creator = creator
		c.MemberCount = counts[c.ID]
		communities = append(communities, &c)
	}
	return communities, nil
}

func (m *memoryStorage) CreateCommunity(_ context.Context, in models.CreateCommunityInput) (*models.Community, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[in.CreatedBy]; !ok {
		return nil, models.NewNotFoundError("User", in.CreatedBy)
	}
	community, owner := models.NewCommunity(in, m.now())
	stored := *community
	stored.MemberCount = 0
	m.communities[community.ID] = &record[models.Community]{row: stored}
	m.members[pairKey(community.ID, owner.UserID)] = *owner
	return community, nil
}

func (m *memoryStorage) JoinCommunity(_ context.Context, communityID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.communities[communityID]; !ok {
		return models.NewNotFoundError("Community", communityID)
	}
	if _, ok := m.users[userID]; !ok {
		return models.NewNotFoundError("User", userID)
	}
	key := pairKey(communityID, userID)
	if _, ok := m.members[key]; ok {
		return nil
	}
	m.members[key] = models.CommunityMember{
		ID:          uuid.NewString(),
		CommunityID: communityID,
		UserID:      userID,
		Role:        models.CommunityRoleMember,
		JoinedAt:    m.now(),
	}
	return nil
}

func (m *memoryStorage) GetEvents(_ context.Context) ([]*models.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	recs := make([]*record[models.Event], 0, len(m.events))
	for _, rec := range m.events {
		recs = append(recs, rec)
	}
	newestFirst(recs, func(e *models.Event) (time.Time, string) { return e.CreatedAt, e.ID })

	counts := m.attendeeCounts()
	events := make([]*models.Event, 0, len(recs))
	for _, rec := range recs {
		creator := m.author(rec.row.CreatedBy)
		if creator == nil {
			continue
		}
		e := rec.row
		e.Tags = append(models.StringList{}, rec.row.Tags...)
		e.Requirements = append(models.StringList{}, rec.row.Requirements...)
		e.Creator = creator
		e.AttendeesCount = counts[e.ID]
		events = append(events, &e)
	}
	return events, nil
}

func (m *memoryStorage) attendeeCounts() map[string]int {
	counts := make(map[string]int)
	for _, a := range m.attendees {
		counts[a.EventID]++
	}
	return counts
}

func (m *memoryStorage) CreateEvent(_ context.Context, in models.CreateEventInput) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[in.CreatedBy]; !ok {
		return nil, models.NewNotFoundError("User", in.CreatedBy)
	}
	event := models.NewEvent(in, m.now())
	stored := *event
	stored.Tags = append(models.StringList{}, event.Tags...)
	stored.Requirements = append(models.StringList{}, event.Requirements...)
	m.events[event.ID] = &record[models.Event]{row: stored}
	return event, nil
}

func (m *memoryStorage) AttendEvent(_ context.Context, eventID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.events[eventID]
	if !ok {
		return models.NewNotFoundError("Event", eventID)
	}
	if _, ok := m.users[userID]; !ok {
		return models.NewNotFoundError("User", userID)
	}
	key := pairKey(eventID, userID)
	if _, ok := m.attendees[key]; ok {
		return nil
	}
	if m.attendeeCounts()[eventID] >= rec.row.Capacity {
		return models.NewValidationError("event is full")
	}
	m.attendees[key] = models.EventAttendee{
		ID:           uuid.NewString(),
		EventID:      eventID,
		UserID:       userID,
		RegisteredAt: m.now(),
	}
	return nil
}
