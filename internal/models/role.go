package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleOrganizer = "organizer"
	RoleAttendee  = "attendee"
)

type Role struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	Name      string    `gorm:"unique;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
