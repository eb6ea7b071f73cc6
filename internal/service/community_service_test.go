package service

import (
	"context"
	"testing"

	"selam/internal/models"
	"selam/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEvent(createdBy string) models.CreateEventInput {
	return models.CreateEventInput{
		Title:           "Mahalle iftarı",
		Description:     "Herkes davetlidir",
		Type:            "iftar",
		Date:            "2025-03-15",
		Time:            "19:12",
		LocationName:    "Cami avlusu",
		LocationAddress: "Merkez Mah.",
		LocationCity:    "Bursa",
		OrganizerName:   "Gönüllüler",
		Capacity:        2,
		Price:           "0",
		CreatedBy:       createdBy,
	}
}

func TestCommunityService_CreateEvent_Validation(t *testing.T) {
	t.Parallel()
	mutate := map[string]func(*models.CreateEventInput){
		"missing creator": func(in *models.CreateEventInput) { in.CreatedBy = "" },
		"blank title":     func(in *models.CreateEventInput) { in.Title = "" },
		"bad date":        func(in *models.CreateEventInput) { in.Date = "15.03.2025" },
		"bad time":        func(in *models.CreateEventInput) { in.Time = "7pm" },
		"negative seats":  func(in *models.CreateEventInput) { in.Capacity = -1 },
		"bad price":       func(in *models.CreateEventInput) { in.Price = "free" },
		"bad image":       func(in *models.CreateEventInput) { in.ImageURL = strPtr("img.png") },
		"no city":         func(in *models.CreateEventInput) { in.LocationCity = " " },
	}
	for name, fn := range mutate {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			in := validEvent("u1")
			fn(&in)
			_, err := NewCommunityService(&storageStub{}).CreateEvent(context.Background(), in)
			assertValidationError(t, err)
		})
	}
}

func TestCommunityService_EventAttendance(t *testing.T) {
	t.Parallel()
	store := repository.NewMemoryStorage()
	org := seedUser(t, store, "organizer")
	a := seedUser(t, store, "ahmet")
	b := seedUser(t, store, "mehmet")
	svc := NewCommunityService(store)
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, validEvent(org.ID))
	require.NoError(t, err)

	require.NoError(t, svc.AttendEvent(ctx, event.ID, a.ID))
	require.NoError(t, svc.AttendEvent(ctx, event.ID, a.ID))
	require.NoError(t, svc.AttendEvent(ctx, event.ID, b.ID))
	assertValidationError(t, svc.AttendEvent(ctx, event.ID, org.ID))
	assertValidationError(t, svc.AttendEvent(ctx, event.ID, ""))
	assertCode(t, svc.AttendEvent(ctx, "missing", a.ID), models.CodeNotFound)

	events, err := svc.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 2, events[0].AttendeesCount)
}

func TestCommunityService_Communities(t *testing.T) {
	t.Parallel()
	store := repository.NewMemoryStorage()
	owner := seedUser(t, store, "ayse")
	member := seedUser(t, store, "fatma")
	svc := NewCommunityService(store)
	ctx := context.Background()

	_, err := svc.CreateCommunity(ctx, models.CreateCommunityInput{Name: "x", Category: "y", CreatedBy: owner.ID})
	assertValidationError(t, err)

	c, err := svc.CreateCommunity(ctx, models.CreateCommunityInput{
		Name:        " Kitap Kulübü ",
		Description: "Haftalık okuma",
		Category:    "education",
		CreatedBy:   owner.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Kitap Kulübü", c.Name)
	assert.Equal(t, 1, c.MemberCount)

	require.NoError(t, svc.JoinCommunity(ctx, c.ID, member.ID))
	assertValidationError(t, svc.JoinCommunity(ctx, c.ID, ""))

	list, err := svc.ListCommunities(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].MemberCount)
}

func TestCommentService(t *testing.T) {
	t.Parallel()
	store := repository.NewMemoryStorage()
	u := seedUser(t, store, "ayse")
	post, err := NewPostService(store, 0).CreatePost(context.Background(), models.CreatePostInput{UserID: u.ID, Content: "Selam"})
	require.NoError(t, err)
	svc := NewCommentService(store)
	ctx := context.Background()

	_, err = svc.CreateComment(ctx, models.CreateCommentInput{UserID: u.ID, Content: "amin"})
	assertValidationError(t, err)
	_, err = svc.CreateComment(ctx, models.CreateCommentInput{UserID: u.ID, PostID: &post.ID, Content: ""})
	assertValidationError(t, err)
	_, err = svc.CreateComment(ctx, models.CreateCommentInput{PostID: &post.ID, Content: "amin"})
	assertValidationError(t, err)

	c, err := svc.CreateComment(ctx, models.CreateCommentInput{UserID: u.ID, PostID: &post.ID, Content: "Aleyküm selam"})
	require.NoError(t, err)

	comments, err := svc.ListForPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, c.ID, comments[0].ID)

	comments, err = svc.ListForDuaRequest(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
