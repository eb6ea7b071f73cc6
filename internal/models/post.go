package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post types.
const (
	PostTypeText  = "text"
	PostTypeImage = "image"
	PostTypeVideo = "video"
)

// DefaultCategory is assigned to posts created without a category.
const DefaultCategory = "Genel"

// Post represents a feed post.
type Post struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string     `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"users,omitempty"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Type        string     `gorm:"type:varchar(10);not null;default:'text'" json:"type"`
	MediaURL    *string    `json:"media_url"`
	Category    string     `gorm:"not null;default:'Genel'" json:"category"`
	Tags        StringList `json:"tags"`
	SharesCount int        `gorm:"not null;default:0" json:"shares_count"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Counted from related rows at read time, never stored.
	LikesCount    int `gorm:"->;-:migration" json:"likes_count"`
	CommentsCount int `gorm:"->;-:migration" json:"comments_count"`
}

// BeforeCreate assigns the opaque identifier.
func (p *Post) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// HasTag reports whether the post carries tag.
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// CreatePostInput holds the fields a caller may supply when creating a post.
type CreatePostInput struct {
	UserID   string   `json:"user_id"`
	Content  string   `json:"content"`
	Type     string   `json:"type,omitempty"`
	MediaURL *string  `json:"media_url,omitempty"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// NewPost builds an unsaved Post with zero counters and schema defaults.
func NewPost(in CreatePostInput, now time.Time) *Post {
	postType := in.Type
	if postType == "" {
		postType = PostTypeText
	}
	category := in.Category
	if category == "" {
		category = DefaultCategory
	}
	tags := StringList{}
	if len(in.Tags) > 0 {
		tags = append(tags, in.Tags...)
	}
	return &Post{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		Content:   in.Content,
		Type:      postType,
		MediaURL:  in.MediaURL,
		Category:  category,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// PostFilter narrows a feed read.
type PostFilter struct {
	Limit  int
	Offset int
	Tag    string
}

// DefaultFeedLimit is used when a feed read asks for no explicit limit.
const DefaultFeedLimit = 50

// Normalize fills in the default limit and clamps a negative offset.
func (f PostFilter) Normalize() PostFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultFeedLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
