package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DuaRequest is a prayer request. Its prayers are likes scoped to this kind.
type DuaRequest struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string     `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"users,omitempty"`
	Title       string     `gorm:"not null" json:"title"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Category    string     `gorm:"not null" json:"category"`
	IsUrgent    bool       `gorm:"not null;default:false" json:"is_urgent"`
	IsAnonymous bool       `gorm:"not null;default:false" json:"is_anonymous"`
	Tags        StringList `json:"tags"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Counted from related rows at read time, never stored.
	PrayersCount  int `gorm:"->;-:migration" json:"prayers_count"`
	CommentsCount int `gorm:"->;-:migration" json:"comments_count"`
}

// BeforeCreate assigns the opaque identifier.
func (d *DuaRequest) BeforeCreate(_ *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// CreateDuaRequestInput holds the fields a caller may supply.
type CreateDuaRequestInput struct {
	UserID      string   `json:"user_id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	IsUrgent    bool     `json:"is_urgent,omitempty"`
	IsAnonymous bool     `json:"is_anonymous,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// NewDuaRequest builds an unsaved DuaRequest with zero counters.
func NewDuaRequest(in CreateDuaRequestInput, now time.Time) *DuaRequest {
	tags := StringList{}
	if len(in.Tags) > 0 {
		tags = append(tags, in.Tags...)
	}
	return &DuaRequest{
		ID:          uuid.NewString(),
		UserID:      in.UserID,
		Title:       in.Title,
		Content:     in.Content,
		Category:    in.Category,
		IsUrgent:    in.IsUrgent,
		IsAnonymous: in.IsAnonymous,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// DuaRequestFilter narrows a dua request read.
type DuaRequestFilter struct {
	Limit  int
	Offset int
}

// Normalize fills in the default limit and clamps a negative offset.
func (f DuaRequestFilter) Normalize() DuaRequestFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultFeedLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
