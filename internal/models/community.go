package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommunityRole defines a member's role in a community.
type CommunityRole string

const (
	CommunityRoleOwner  CommunityRole = "owner"
	CommunityRoleMember CommunityRole = "member"
)

// Community is a user-created group. MemberCount includes the creator.
type Community struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Category    string    `gorm:"not null" json:"category"`
	IsPrivate   bool      `gorm:"not null;default:false" json:"is_private"`
	CoverImage  *string   `json:"cover_image"`
	Location    *string   `json:"location"`
	CreatedBy   string    `gorm:"type:uuid;not null;index" json:"created_by"`
	Creator     *User     `gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE" json:"users,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Counted from member rows at read time, never stored.
	MemberCount int `gorm:"->;-:migration" json:"member_count"`
}

// BeforeCreate assigns the opaque identifier.
func (c *Community) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CommunityMember maps users to communities and tracks role.
type CommunityMember struct {
	ID          string        `gorm:"type:uuid;primaryKey" json:"id"`
	CommunityID string        `gorm:"type:uuid;not null;uniqueIndex:idx_community_members_pair" json:"community_id"`
	Community   *Community    `gorm:"foreignKey:CommunityID;constraint:OnDelete:CASCADE" json:"-"`
	UserID      string        `gorm:"type:uuid;not null;uniqueIndex:idx_community_members_pair;index" json:"user_id"`
	User        *User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Role        CommunityRole `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	JoinedAt    time.Time     `json:"joined_at"`
}

// BeforeCreate assigns the opaque identifier.
func (m *CommunityMember) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// CreateCommunityInput holds the fields a caller may supply.
type CreateCommunityInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	IsPrivate   bool    `json:"is_private,omitempty"`
	CoverImage  *string `json:"cover_image,omitempty"`
	Location    *string `json:"location,omitempty"`
	CreatedBy   string  `json:"created_by"`
}

// NewCommunity builds an unsaved community together with its owner row.
func NewCommunity(in CreateCommunityInput, now time.Time) (*Community, *CommunityMember) {
	c := &Community{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		IsPrivate:   in.IsPrivate,
		CoverImage:  in.CoverImage,
		Location:    in.Location,
		MemberCount: 1,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	owner := &CommunityMember{
		ID:          uuid.NewString(),
		CommunityID: c.ID,
		UserID:      in.CreatedBy,
		Role:        CommunityRoleOwner,
		JoinedAt:    now,
	}
	return c, owner
}
