package repository

import (
	"context"
	"time"

	"selam/internal/models"
	"selam/internal/observability"
)

// instrumented records latency and a span for every call to next.
type instrumented struct {
	next    Storage
	backend string
}

// Instrument wraps s with prometheus latency metrics and otel spans labelled
// with backend.
func Instrument(s Storage, backend string) Storage {
	return &instrumented{next: s, backend: backend}
}

func (i *instrumented) observe(ctx context.Context, op string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := observability.StartStorageSpan(ctx, i.backend, op)
	return ctx, func(err error) {
		observability.ObserveStorage(i.backend, op, start, err)
		observability.EndSpan(span, err)
	}
}

func (i *instrumented) GetUser(ctx context.Context, id string) (u *models.User, err error) {
	ctx, done := i.observe(ctx, "get_user")
	defer func() { done(err) }()
	return i.next.GetUser(ctx, id)
}

func (i *instrumented) GetUserByUsername(ctx context.Context, username string) (u *models.User, err error) {
	ctx, done := i.observe(ctx, "get_user_by_username")
	defer func() { done(err) }()
	return i.next.GetUserByUsername(ctx, username)
}

func (i *instrumented) GetUserByEmail(ctx context.Context, email string) (u *models.User, err error) {
	ctx, done := i.observe(ctx, "get_user_by_email")
	defer func() { done(err) }()
	return i.next.GetUserByEmail(ctx, email)
}

func (i *instrumented) CreateUser(ctx context.Context, in models.CreateUserInput) (u *models.User, err error) {
	ctx, done := i.observe(ctx, "create_user")
	defer func() { done(err) }()
	return i.next.CreateUser(ctx, in)
}

func (i *instrumented) UpdateUser(ctx context.Context, id string, in models.UpdateUserInput) (u *models.User, err error) {
	ctx, done := i.observe(ctx, "update_user")
	defer func() { done(err) }()
	return i.next.UpdateUser(ctx, id, in)
}

func (i *instrumented) GetPosts(ctx context.Context, filter models.PostFilter) (p []*models.Post, err error) {
	ctx, done := i.observe(ctx, "get_posts")
	defer func() { done(err) }()
	return i.next.GetPosts(ctx, filter)
}

func (i *instrumented) GetPost(ctx context.Context, id string) (p *models.Post, err error) {
	ctx, done := i.observe(ctx, "get_post")
	defer func() { done(err) }()
	return i.next.GetPost(ctx, id)
}

func (i *instrumented) CreatePost(ctx context.Context, in models.CreatePostInput) (p *models.Post, err error) {
	ctx, done := i.observe(ctx, "create_post")
	defer func() { done(err) }()
	return i.next.CreatePost(ctx, in)
}

func (i *instrumented) DeletePost(ctx context.Context, id string) (ok bool, err error) {
	ctx, done := i.observe(ctx, "delete_post")
	defer func() { done(err) }()
	return i.next.DeletePost(ctx, id)
}

func (i *instrumented) GetDuaRequests(ctx context.Context, filter models.DuaRequestFilter) (d []*models.DuaRequest, err error) {
	ctx, done := i.observe(ctx, "get_dua_requests")
	defer func() { done(err) }()
	return i.next.GetDuaRequests(ctx, filter)
}

func (i *instrumented) CreateDuaRequest(ctx context.Context, in models.CreateDuaRequestInput) (d *models.DuaRequest, err error) {
	ctx, done := i.observe(ctx, "create_dua_request")
	defer func() { done(err) }()
	return i.next.CreateDuaRequest(ctx, in)
}

func (i *instrumented) ToggleLike(ctx context.Context, userID string, target models.Target) (ok bool, err error) {
	ctx, done := i.observe(ctx, "toggle_like")
	defer func() { done(err) }()
	return i.next.ToggleLike(ctx, userID, target)
}

func (i *instrumented) GetUserLike(ctx context.Context, userID string, target models.Target) (ok bool, err error) {
	ctx, done := i.observe(ctx, "get_user_like")
	defer func() { done(err) }()
	return i.next.GetUserLike(ctx, userID, target)
}

func (i *instrumented) GetCommentsByPostID(ctx context.Context, postID string) (c []*models.Comment, err error) {
	ctx, done := i.observe(ctx, "get_comments_by_post")
	defer func() { done(err) }()
	return i.next.GetCommentsByPostID(ctx, postID)
}

func (i *instrumented) GetCommentsByDuaRequestID(ctx context.Context, duaRequestID string) (c []*models.Comment, err error) {
	ctx, done := i.observe(ctx, "get_comments_by_dua_request")
	defer func() { done(err) }()
	return i.next.GetCommentsByDuaRequestID(ctx, duaRequestID)
}

func (i *instrumented) CreateComment(ctx context.Context, in models.CreateCommentInput) (c *models.Comment, err error) {
	ctx, done := i.observe(ctx, "create_comment")
	defer func() { done(err) }()
	return i.next.CreateComment(ctx, in)
}

func (i *instrumented) GetCommunities(ctx context.Context) (c []*models.Community, err error) {
	ctx, done := i.observe(ctx, "get_communities")
	defer func() { done(err) }()
	return i.next.GetCommunities(ctx)
}

func (i *instrumented) CreateCommunity(ctx context.Context, in models.CreateCommunityInput) (c *models.Community, err error) {
	ctx, done := i.observe(ctx, "create_community")
	defer func() { done(err) }()
	return i.next.CreateCommunity(ctx, in)
}

func (i *instrumented) JoinCommunity(ctx context.Context, communityID, userID string) (err error) {
	ctx, done := i.observe(ctx, "join_community")
	defer func() { done(err) }()
	return i.next.JoinCommunity(ctx, communityID, userID)
}

func (i *instrumented) GetEvents(ctx context.Context) (e []*models.Event, err error) {
	ctx, done := i.observe(ctx, "get_events")
	defer func() { done(err) }()
	return i.next.GetEvents(ctx)
}

func (i *instrumented) CreateEvent(ctx context.Context, in models.CreateEventInput) (e *models.Event, err error) {
	ctx, done := i.observe(ctx, "create_event")
	defer func() { done(err) }()
	return i.next.CreateEvent(ctx, in)
}

func (i *instrumented) AttendEvent(ctx context.Context, eventID, userID string) (err error) {
	ctx, done := i.observe(ctx, "attend_event")
	defer func() { done(err) }()
	return i.next.AttendEvent(ctx, eventID, userID)
}

func (i *instrumented) ToggleBookmark(ctx context.Context, userID string, target models.Target) (ok bool, err error) {
	ctx, done := i.observe(ctx, "toggle_bookmark")
	defer func() { done(err) }()
	return i.next.ToggleBookmark(ctx, userID, target)
}

func (i *instrumented) GetUserBookmark(ctx context.Context, userID string, target models.Target) (ok bool, err error) {
	ctx, done := i.observe(ctx, "get_user_bookmark")
	defer func() { done(err) }()
	return i.next.GetUserBookmark(ctx, userID, target)
}

func (i *instrumented) Ping(ctx context.Context) (err error) {
	ctx, done := i.observe(ctx, "ping")
	defer func() { done(err) }()
	return i.next.Ping(ctx)
}
