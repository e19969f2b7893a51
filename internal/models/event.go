package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event is a capacity-bounded bookable item. BookedTickets is a denormalized
// counter maintained by the store through conditional increments; it must never
// exceed TotalTickets and always equals the number of Ticket rows for the event.
type Event struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	Description   string    `gorm:"not null" json:"description"`
	Date          time.Time `gorm:"not null" json:"date"`
	TotalTickets  int       `gorm:"not null" json:"total_tickets"`
	BookedTickets int       `gorm:"not null;default:0" json:"booked_tickets"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	OrganizerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"organizer_id"`
	Organizer     *User     `gorm:"foreignKey:OrganizerID" json:"-"`
	Attendees     []Ticket  `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"attendees,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"-"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}

// Remaining is the advisory free-seat count shown in listings. The
// authoritative check happens in the store at commit time.
func (event *Event) Remaining() int {
	return event.TotalTickets - event.BookedTickets
}
