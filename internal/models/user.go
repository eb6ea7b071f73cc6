// Package models contains the persisted entities of the application, the
// insertable projection of each, and the error types shared by every layer.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles a user row can carry.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the identity anchor for every ownership edge.
type User struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"not null;uniqueIndex" json:"email"`
	Name      string    `gorm:"not null" json:"name"`
	Username  string    `gorm:"not null;uniqueIndex" json:"username"`
	AvatarURL *string   `json:"avatar_url"`
	Bio       *string   `json:"bio"`
	Location  *string   `json:"location"`
	Website   *string   `json:"website"`
	Verified  bool      `gorm:"not null;default:false" json:"verified"`
	Role      string    `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns the opaque identifier.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// CreateUserInput holds the fields a caller may supply when creating a user.
type CreateUserInput struct {
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Location  *string `json:"location,omitempty"`
	Website   *string `json:"website,omitempty"`
	Verified  bool    `json:"verified,omitempty"`
	Role      string  `json:"role,omitempty"`
}

// NewUser builds an unsaved User from the input, applying schema defaults.
func NewUser(in CreateUserInput, now time.Time) *User {
	role := in.Role
	if role == "" {
		role = RoleUser
	}
	return &User{
		ID:        uuid.NewString(),
		Email:     in.Email,
		Name:      in.Name,
		Username:  in.Username,
		AvatarURL: in.AvatarURL,
		Bio:       in.Bio,
		Location:  in.Location,
		Website:   in.Website,
		Verified:  in.Verified,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Name      *string `json:"name,omitempty"`
	Username  *string `json:"username,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Location  *string `json:"location,omitempty"`
	Website   *string `json:"website,omitempty"`
	Verified  *bool   `json:"verified,omitempty"`
}

// Columns returns the column/value pairs the update touches.
func (in UpdateUserInput) Columns() map[string]any {
	cols := make(map[string]any)
	if in.Name != nil {
		cols["name"] = *in.Name
	}
	if in.Username != nil {
		cols["username"] = *in.Username
	}
	if in.AvatarURL != nil {
		cols["avatar_url"] = *in.AvatarURL
	}
	if in.Bio != nil {
		cols["bio"] = *in.Bio
	}
	if in.Location != nil {
		cols["location"] = *in.Location
	}
	if in.Website != nil {
		cols["website"] = *in.Website
	}
	if in.Verified != nil {
		cols["verified"] = *in.Verified
	}
	return cols
}

// Apply copies the set fields onto u.
func (in UpdateUserInput) Apply(u *User) {
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Username != nil {
		u.Username = *in.Username
	}
	if in.AvatarURL != nil {
		u.AvatarURL = clone(in.AvatarURL)
	}
	if in.Bio != nil {
		u.Bio = clone(in.Bio)
	}
	if in.Location != nil {
		u.Location = clone(in.Location)
	}
	if in.Website != nil {
		u.Website = clone(in.Website)
	}
	if in.Verified != nil {
		u.Verified = *in.Verified
	}
}

func clone(s *string) *string {
	v := *s
	return &v
}
