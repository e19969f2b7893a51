package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ticket is one holder's reservation against an Event. Each attendee entry is
// its own row keyed by TicketID so check-in can patch a single record instead
// of rewriting the whole attendee list. The (event_id, user_id) unique index is
// the authoritative one-ticket-per-holder guard.
type Ticket struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"-"`
	TicketID    string     `gorm:"uniqueIndex;not null" json:"ticket_id"`
	EventID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_event_holder" json:"event_id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_event_holder" json:"user_id"`
	Name        string     `gorm:"not null" json:"name"`
	Email       string     `gorm:"not null" json:"email"`
	BookedAt    time.Time  `gorm:"not null" json:"booked_at"`
	Validated   bool       `gorm:"not null;default:false" json:"validated"`
	ValidatedAt *time.Time `json:"validated_at,omitempty"`
}

func (ticket *Ticket) BeforeCreate(tx *gorm.DB) (err error) {
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	return
}
