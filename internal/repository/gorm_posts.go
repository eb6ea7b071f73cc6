package repository

import (
	"context"
	"strings"

	"selam/internal/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const postSelect = "posts.*, " +
	"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS likes_count, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comments_count"

const duaRequestSelect = "dua_requests.*, " +
	"(SELECT COUNT(*) FROM likes WHERE likes.dua_request_id = dua_requests.id) AS prayers_count, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.dua_request_id = dua_requests.id) AS comments_count"

func (s *gormStorage) GetPosts(ctx context.Context, filter models.PostFilter) ([]*models.Post, error) {
	filter = filter.Normalize()

	q := s.db.WithContext(ctx).
		Model(&models.Post{}).
		Select(postSelect).
		Preload("User")
	if filter.Tag != "" {
		q = s.whereTag(q, filter.Tag)
	}

	var posts []*models.Post
	err := q.Order("posts.created_at DESC, posts.id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return withAuthor(posts, func(p *models.Post) bool { return p.User != nil }), nil
}

// whereTag filters on tag membership. Postgres matches the text[] column
// natively; other dialects match the element inside the stored array literal.
func (s *gormStorage) whereTag(q *gorm.DB, tag string) *gorm.DB {
	if s.isPostgres() {
		return q.Where("? = ANY(posts.tags)", tag)
	}
	elem := arrayElement(tag)
	return q.Where(
		"posts.tags = ? OR posts.tags LIKE ? ESCAPE '\\' OR posts.tags LIKE ? ESCAPE '\\' OR posts.tags LIKE ? ESCAPE '\\'",
		"{"+elem+"}",
		"{"+escapeLike(elem)+",%",
		"%,"+escapeLike(elem)+",%",
		"%,"+escapeLike(elem)+"}",
	)
}

// arrayElement encodes tag the way it appears inside a text array literal.
func arrayElement(tag string) string {
	v, err := pq.StringArray{tag}.Value()
	if err != nil {
		return tag
	}
	lit, _ := v.(string)
	return strings.TrimSuffix(strings.TrimPrefix(lit, "{"), "}")
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func (s *gormStorage) GetPost(ctx context.Context, id string) (*models.Post, error) {
	if !validID(id) {
		return nil, nil
	}
	var post models.Post
	found, err := first(s.db.WithContext(ctx).
		Model(&models.Post{}).
		Select(postSelect).
		Preload("User").
		Where("posts.id = ?", id), &post)
	if err != nil || !found || post.User == nil {
		return nil, err
	}
	return &post, nil
}

func (s *gormStorage) CreatePost(ctx context.Context, in models.CreatePostInput) (*models.Post, error) {
	if !validID(in.UserID) {
		return nil, models.NewNotFoundError("User", in.UserID)
	}
	post := models.NewPost(in, s.now())
	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, translateError(err, "post")
	}
	return post, nil
}

func (s *gormStorage) DeletePost(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}

	var deleted bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.Like{}, &models.Bookmark{}, &models.Comment{}} {
			if err := tx.Where("post_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		res := tx.Where("id = ?", id).Delete(&models.Post{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, translateError(err, "post")
	}
	return deleted, nil
}

func (s *gormStorage) GetDuaRequests(ctx context.Context, filter models.DuaRequestFilter) ([]*models.DuaRequest, error) {
	filter = filter.Normalize()

	var duas []*models.DuaRequest
	err := s.db.WithContext(ctx).
		Model(&models.DuaRequest{}).
		Select(duaRequestSelect).
		Preload("User").
		Order("dua_requests.created_at DESC, dua_requests.id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&duas).Error
	if err != nil {
		return nil, err
	}
	return withAuthor(duas, func(d *models.DuaRequest) bool { return d.User != nil }), nil
}

func (s *gormStorage) CreateDuaRequest(ctx context.Context, in models.CreateDuaRequestInput) (*models.DuaRequest, error) {
	if !validID(in.UserID) {
		return nil, models.NewNotFoundError("User", in.UserID)
	}
	dua := models.NewDuaRequest(in, s.now())
	if err := s.db.WithContext(ctx).Create(dua).Error; err != nil {
		return nil, translateError(err, "dua request")
	}
	return dua, nil
}

func (s *gormStorage) GetCommentsByPostID(ctx context.Context, postID string) ([]*models.Comment, error) {
	return s.commentsFor(ctx, models.PostTarget(postID))
}

func (s *gormStorage) GetCommentsByDuaRequestID(ctx context.Context, duaRequestID string) ([]*models.Comment, error) {
	return s.commentsFor(ctx, models.DuaRequestTarget(duaRequestID))
}

func (s *gormStorage) commentsFor(ctx context.Context, target models.Target) ([]*models.Comment, error) {
	if !validID(target.ID()) {
		return []*models.Comment{}, nil
	}
	var comments []*models.Comment
	err := s.db.WithContext(ctx).
		Preload("User").
		Where(target.Column()+" = ?", target.ID()).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return withAuthor(comments, func(c *models.Comment) bool { return c.User != nil }), nil
}

func (s *gormStorage) CreateComment(ctx context.Context, in models.CreateCommentInput) (*models.Comment, error) {
	target, err := in.Target()
	if err != nil {
		return nil, err
	}
	if err := requireTarget(target); err != nil {
		return nil, err
	}
	if !validID(in.UserID) {
		return nil, models.NewNotFoundError("User", in.UserID)
	}

	comment := models.NewComment(in, target, s.now())
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, translateError(err, "comment")
	}
	return comment, nil
}

// withAuthor drops rows whose owner could not be resolved. The result is
// never nil so it serializes as an empty list.
func withAuthor[T any](rows []*T, hasAuthor func(*T) bool) []*T {
	out := make([]*T, 0, len(rows))
	for _, r := range rows {
		if hasAuthor(r) {
			out = append(out, r)
		}
	}
	return out
}
