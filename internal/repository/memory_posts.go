package repository

import (
	"context"
	"time"

	"selam/internal/models"
)

func (m *memoryStorage) GetPosts(_ context.Context, filter models.PostFilter) ([]*models.Post, error) {
	filter = filter.Normalize()

	m.mu.RLock()
	defer m.mu.RUnlock()

	recs := make([]*record[models.Post], 0, len(m.posts))
	for _, rec := range m.posts {
		if filter.Tag != "" && !rec.row.Tags.Contains(filter.Tag) {
			continue
		}
		recs = append(recs, rec)
	}
	newestFirst(recs, func(p *models.Post) (time.Time, string) { return p.CreatedAt, p.ID })

	likes, comments := m.postCounts()
	posts := make([]*models.Post, 0, len(recs))
	for _, rec := range recs {
		if p := m.joinPost(rec, likes, comments); p != nil {
			posts = append(posts, p)
		}
	}
	return page(posts, filter.Limit, filter.Offset), nil
}

func (m *memoryStorage) GetPost(_ context.Context, id string) (*models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	likes, comments := m.postCounts()
	return m.joinPost(rec, likes, comments), nil
}

// joinPost copies the post with its author and counters, nil when the author
// is gone.
func (m *memoryStorage) joinPost(rec *record[models.Post], likes, comments map[string]int) *models.Post {
	user := m.author(rec.row.UserID)
	if user == nil {
		return nil
	}
	p := rec.row
	p.Tags = append(models.StringList{}, rec.row.Tags...)
	p.User = user
	p.LikesCount = likes[p.ID]
	p.CommentsCount = comments[p.ID]
	return &p
}

func (m *memoryStorage) postCounts() (likes, comments map[string]int) {
	likes = make(map[string]int)
	comments = make(map[string]int)
	for _, l := range m.likes {
		if l.PostID != nil {
			likes[*l.PostID]++
		}
	}
	for _, rec := range m.comments {
		if rec.row.PostID != nil {
			comments[*rec.row.PostID]++
		}
	}
	return likes, comments
}

func (m *memoryStorage) duaCounts() (prayers, comments map[string]int) {
	prayers = make(map[string]int)
	comments = make(map[string]int)
	for _, l := range m.likes {
		if l.DuaRequestID != nil {
			prayers[*l.DuaRequestID]++
		}
	}
	for _, rec := range m.comments {
		if rec.row.DuaRequestID != nil {
			comments[*rec.row.DuaRequestID]++
		}
	}
	return prayers, comments
}

func (m *memoryStorage) CreatePost(_ context.Context, in models.CreatePostInput) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[in.UserID]; !ok {
		return nil, models.NewNotFoundError("User", in.UserID)
	}
	post := models.NewPost(in, m.now())
	stored := *post
	stored.Tags = append(models.StringList{}, post.Tags...)
	m.posts[post.ID] = &record[models.Post]{row: stored}
	return post, nil
}

func (m *memoryStorage) DeletePost(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[id]; !ok {
		return false, nil
	}
	for key, l := range m.likes {
		if l.PostID != nil && *l.PostID == id {
			delete(m.likes, key)
		}
	}
	for key, b := range m.bookmarks {
		if b.PostID != nil && *b.PostID == id {
			delete(m.bookmarks, key)
		}
	}
	for key, rec := range m.comments {
		if rec.row.PostID != nil && *rec.row.PostID == id {
			delete(m.comments, key)
		}
	}
	delete(m.posts, id)
	return true, nil
}

func (m *memoryStorage) GetDuaRequests(_ context.Context, filter models.DuaRequestFilter) ([]*models.DuaRequest, error) {
	filter = filter.Normalize()

	m.mu.RLock()
	defer m.mu.RUnlock()

	recs := make([]*record[models.DuaRequest], 0, len(m.duas))
	for _, rec := range m.duas {
		recs = append(recs, rec)
	}
	newestFirst(recs, func(d *models.DuaRequest) (time.Time, string) { return d.CreatedAt, d.ID })

	prayers, comments := m.duaCounts()
	duas := make([]*models.DuaRequest, 0, len(recs))
	for _, rec := range recs {
		user := m.author(rec.row.UserID)
		if user == nil {
			continue
		}
		d := rec.row
		d.Tags = append(models.StringList{}, rec.row.Tags...)
		d.User = user
		d.PrayersCount = prayers[d.ID]
		d.CommentsCount = comments[d.ID]
		duas = append(duas, &d)
	}
	return page(duas, filter.Limit, filter.Offset), nil
}

func (m *memoryStorage) CreateDuaRequest(_ context.Context, in models.CreateDuaRequestInput) (*models.DuaRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[in.UserID]; !ok {
		return nil, models.NewNotFoundError("User", in.UserID)
	}
	dua := models.NewDuaRequest(in, m.now())
	stored := *dua
	stored.Tags = append(models.StringList{}, dua.Tags...)
	m.duas[dua.ID] = &record[models.DuaRequest]{row: stored}
	return dua, nil
}

func (m *memoryStorage) GetCommentsByPostID(_ context.Context, postID string) ([]*models.Comment, error) {
	return m.commentsFor(models.PostTarget(postID)), nil
}

func (m *memoryStorage) GetCommentsByDuaRequestID(_ context.Context, duaRequestID string) ([]*models.Comment, error) {
	return m.commentsFor(models.DuaRequestTarget(duaRequestID)), nil
}

func (m *memoryStorage) commentsFor(target models.Target) []*models.Comment {
	m.mu.RLock()
	defer m.mu.RUnlock()

	recs := make([]*record[models.Comment], 0)
	for _, rec := range m.comments {
		if rec.row.Target() == target {
			recs = append(recs, rec)
		}
	}
	newestFirst(recs, func(c *models.Comment) (time.Time, string) { return c.CreatedAt, c.ID })

	comments := make([]*models.Comment, 0, len(recs))
	for _, rec := range recs {
		user := m.author(rec.row.UserID)
		if user == nil {
			continue
		}
		c := rec.row
		c.User = user
		comments = append(comments, &c)
	}
	return comments
}

func (m *memoryStorage) CreateComment(_ context.Context, in models.CreateCommentInput) (*models.Comment, error) {
	target, err := in.Target()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.targetExists(target) {
		return nil, targetNotFound(target)
	}
	if _, ok := m.users[in.UserID]; !ok {
		return nil, models.NewNotFoundError("User", in.UserID)
	}
	comment := models.NewComment(in, target, m.now())
	m.comments[comment.ID] = &record[models.Comment]{row: *comment}
	return comment, nil
}

func (m *memoryStorage) targetExists(target models.Target) bool {
	switch target.Kind() {
	case models.TargetPost:
		_, ok := m.posts[target.ID()]
		return ok
	case models.TargetDuaRequest:
		_, ok := m.duas[target.ID()]
		return ok
	}
	return false
}
