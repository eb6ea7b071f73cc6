package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event defaults.
const (
	DefaultEventCapacity       = 100
	DefaultEventPrice    Price = "0.00"
	EventDateLayout            = "2006-01-02"
	EventTimeLayout            = "15:04"
)

// Event is a scheduled gathering. Date and Time are kept in their wire
// layouts (EventDateLayout, EventTimeLayout).
type Event struct {
	ID               string     `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string     `gorm:"not null" json:"title"`
	Description      string     `gorm:"type:text;not null" json:"description"`
	Type             string     `gorm:"not null" json:"type"`
	Date             string     `gorm:"type:varchar(10);not null" json:"date"`
	Time             string     `gorm:"type:varchar(8);not null" json:"time"`
	LocationName     string     `gorm:"not null" json:"location_name"`
	LocationAddress  string     `gorm:"not null" json:"location_address"`
	LocationCity     string     `gorm:"not null" json:"location_city"`
	OrganizerName    string     `gorm:"not null" json:"organizer_name"`
	OrganizerContact *string    `json:"organizer_contact"`
	Capacity         int        `gorm:"not null;default:100" json:"capacity"`
	Price            Price      `gorm:"type:numeric(10,2);not null;default:0" json:"price"`
	IsOnline         bool       `gorm:"not null;default:false" json:"is_online"`
	ImageURL         *string    `json:"image_url"`
	Tags             StringList `json:"tags"`
	Requirements     StringList `json:"requirements"`
	CreatedBy        string     `gorm:"type:uuid;not null;index" json:"created_by"`
	Creator          *User      `gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE" json:"users,omitempty"`
	CreatedAt        time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Counted from attendee rows at read time, never stored.
	AttendeesCount int `gorm:"->;-:migration" json:"attendees_count"`
}

// BeforeCreate assigns the opaque identifier.
func (e *Event) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// IsFull reports whether no seat is left.
func (e *Event) IsFull() bool {
	return e.AttendeesCount >= e.Capacity
}

// EventAttendee is a registration for an event.
type EventAttendee struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	EventID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_event_attendees_pair" json:"event_id"`
	Event        *Event    `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	UserID       string    `gorm:"type:uuid;not null;uniqueIndex:idx_event_attendees_pair;index" json:"user_id"`
	User         *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	RegisteredAt time.Time `json:"registered_at"`
}

// BeforeCreate assigns the opaque identifier.
func (a *EventAttendee) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// CreateEventInput holds the fields a caller may supply.
type CreateEventInput struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Type             string   `json:"type"`
	Date             string   `json:"date"`
	Time             string   `json:"time"`
	LocationName     string   `json:"location_name"`
	LocationAddress  string   `json:"location_address"`
	LocationCity     string   `json:"location_city"`
	OrganizerName    string   `json:"organizer_name"`
	OrganizerContact *string  `json:"organizer_contact,omitempty"`
	Capacity         int      `json:"capacity,omitempty"`
	Price            string   `json:"price,omitempty"`
	IsOnline         bool     `json:"is_online,omitempty"`
	ImageURL         *string  `json:"image_url,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	Requirements     []string `json:"requirements,omitempty"`
	CreatedBy        string   `json:"created_by"`
}

// NewEvent builds an unsaved event applying capacity and price defaults.
func NewEvent(in CreateEventInput, now time.Time) *Event {
	capacity := in.Capacity
	if capacity <= 0 {
		capacity = DefaultEventCapacity
	}
	price := DefaultEventPrice
	if in.Price != "" {
		price = NewPrice(in.Price)
	}
	return &Event{
		ID:               uuid.NewString(),
		Title:            in.Title,
		Description:      in.Description,
		Type:             in.Type,
		Date:             in.Date,
		Time:             in.Time,
		LocationName:     in.LocationName,
		LocationAddress:  in.LocationAddress,
		LocationCity:     in.LocationCity,
		OrganizerName:    in.OrganizerName,
		OrganizerContact: in.OrganizerContact,
		Capacity:         capacity,
		Price:            price,
		IsOnline:         in.IsOnline,
		ImageURL:         in.ImageURL,
		Tags:             append(StringList{}, in.Tags...),
		Requirements:     append(StringList{}, in.Requirements...),
		CreatedBy:        in.CreatedBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
