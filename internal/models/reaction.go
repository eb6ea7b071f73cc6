package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like is a user's like on a post or prayer on a dua request.
// (user_id, post_id) and (user_id, dua_request_id) are each unique.
type Like struct {
	ID           string      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string      `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_post;uniqueIndex:idx_likes_user_dua" json:"user_id"`
	PostID       *string     `gorm:"type:uuid;uniqueIndex:idx_likes_user_post;index;check:likes_single_target,(post_id IS NULL) <> (dua_request_id IS NULL)" json:"post_id"`
	DuaRequestID *string     `gorm:"type:uuid;uniqueIndex:idx_likes_user_dua;index" json:"dua_request_id"`
	CreatedAt    time.Time   `json:"created_at"`
	User         *User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Post         *Post       `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	DuaRequest   *DuaRequest `gorm:"foreignKey:DuaRequestID;constraint:OnDelete:CASCADE" json:"-"`
}

// NewLike builds an unsaved like row for target.
func NewLike(userID string, target Target, now time.Time) *Like {
	return &Like{
		ID:           uuid.NewString(),
		UserID:       userID,
		PostID:       target.PostID(),
		DuaRequestID: target.DuaRequestID(),
		CreatedAt:    now,
	}
}

// BeforeCreate assigns the opaque identifier.
func (l *Like) BeforeCreate(_ *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// Target returns what the like is attached to.
func (l *Like) Target() Target { return targetOf(l.PostID, l.DuaRequestID) }

// Bookmark is a user's saved post or dua request. Same uniqueness as Like.
type Bookmark struct {
	ID           string      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string      `gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_user_post;uniqueIndex:idx_bookmarks_user_dua" json:"user_id"`
	PostID       *string     `gorm:"type:uuid;uniqueIndex:idx_bookmarks_user_post;index;check:bookmarks_single_target,(post_id IS NULL) <> (dua_request_id IS NULL)" json:"post_id"`
	DuaRequestID *string     `gorm:"type:uuid;uniqueIndex:idx_bookmarks_user_dua;index" json:"dua_request_id"`
	CreatedAt    time.Time   `json:"created_at"`
	User         *User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Post         *Post       `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	DuaRequest   *DuaRequest `gorm:"foreignKey:DuaRequestID;constraint:OnDelete:CASCADE" json:"-"`
}

// NewBookmark builds an unsaved bookmark row for target.
func NewBookmark(userID string, target Target, now time.Time) *Bookmark {
	return &Bookmark{
		ID:           uuid.NewString(),
		UserID:       userID,
		PostID:       target.PostID(),
		DuaRequestID: target.DuaRequestID(),
		CreatedAt:    now,
	}
}

// BeforeCreate assigns the opaque identifier.
func (b *Bookmark) BeforeCreate(_ *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Target returns what the bookmark is attached to.
func (b *Bookmark) Target() Target { return targetOf(b.PostID, b.DuaRequestID) }

// LikeResult is the outcome of a like toggle.
type LikeResult struct {
	Liked bool `json:"liked"`
}

// BookmarkResult is the outcome of a bookmark toggle.
type BookmarkResult struct {
	Bookmarked bool `json:"bookmarked"`
}
