package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is attached to exactly one post or dua request. IsPrayer marks a
// comment left as a prayer on a dua request.
type Comment struct {
	ID           string      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string      `gorm:"type:uuid;not null;index" json:"user_id"`
	User         *User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"users,omitempty"`
	PostID       *string     `gorm:"type:uuid;index;check:comments_single_target,(post_id IS NULL) <> (dua_request_id IS NULL)" json:"post_id"`
	Post         *Post       `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	DuaRequestID *string     `gorm:"type:uuid;index" json:"dua_request_id"`
	DuaRequest   *DuaRequest `gorm:"foreignKey:DuaRequestID;constraint:OnDelete:CASCADE" json:"-"`
	Content      string      `gorm:"type:text;not null" json:"content"`
	IsPrayer     bool        `gorm:"not null;default:false" json:"is_prayer"`
	CreatedAt    time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// BeforeCreate assigns the opaque identifier.
func (c *Comment) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Target returns what the comment is attached to.
func (c *Comment) Target() Target { return targetOf(c.PostID, c.DuaRequestID) }

// CreateCommentInput holds the fields a caller may supply when commenting.
type CreateCommentInput struct {
	UserID       string  `json:"user_id"`
	PostID       *string `json:"post_id,omitempty"`
	DuaRequestID *string `json:"dua_request_id,omitempty"`
	Content      string  `json:"content"`
	IsPrayer     bool    `json:"is_prayer,omitempty"`
}

// Target parses the wire foreign keys into a Target.
func (in CreateCommentInput) Target() (Target, error) {
	return ParseTarget(in.PostID, in.DuaRequestID)
}

// NewComment builds an unsaved comment on target.
func NewComment(in CreateCommentInput, target Target, now time.Time) *Comment {
	return &Comment{
		ID:           uuid.NewString(),
		UserID:       in.UserID,
		PostID:       target.PostID(),
		DuaRequestID: target.DuaRequestID(),
		Content:      in.Content,
		IsPrayer:     in.IsPrayer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
