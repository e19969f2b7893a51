package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farellandr/gatepass/internal/models"
)

// Store is the durable event/ticket storage. All contended mutations go
// through conditional single-statement updates so concurrent callers cannot
// lose each other's writes; nothing here reads a counter into memory and
// writes a computed value back.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateEvent(ctx context.Context, event *models.Event) error {
	return s.db.WithContext(ctx).Create(event).Error
}

// GetEvent fetches a single event without its attendee roster.
func (s *Store) GetEvent(ctx context.Context, id uuid.UUID) (models.Event, error) {
	var event models.Event
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return event, ErrEventNotFound
		}
		return event, err
	}
	return event, nil
}

// GetEventDetail fetches an event with its attendee roster, ordered by
// booking time so the roster is append-stable.
func (s *Store) GetEventDetail(ctx context.Context, id uuid.UUID) (models.Event, error) {
	var event models.Event
	err := s.db.WithContext(ctx).
		Preload("Attendees", func(db *gorm.DB) *gorm.DB {
			return db.Order("booked_at ASC")
		}).
		Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return event, ErrEventNotFound
		}
		return event, err
	}
	return event, nil
}

// ListEvents returns events newest-first. With activeOnly set, inactive events
// are excluded; they stay reachable by direct reference either way.
func (s *Store) ListEvents(ctx context.Context, activeOnly bool) ([]models.Event, error) {
	query := s.db.WithContext(ctx).Model(&models.Event{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var events []models.Event
	err := query.
		Preload("Attendees", func(db *gorm.DB) *gorm.DB {
			return db.Order("booked_at ASC")
		}).
		Order("created_at DESC").Find(&events).Error
	return events, err
}

// ReserveSeat commits one reservation as a single transaction: a conditional
// increment of booked_tickets and the insert of the ticket row. The increment
// is applied as a delta in the WHERE-guarded UPDATE, so concurrent
// reservations can never push the counter past total_tickets, and the
// (event_id, user_id) unique index rejects a duplicate holder inside the same
// snapshot, rolling the increment back.
func (s *Store) ReserveSeat(ctx context.Context, eventID uuid.UUID, ticket *models.Ticket) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Event{}).
			Where("id = ? AND booked_tickets < total_tickets", eventID).
			UpdateColumn("booked_tickets", gorm.Expr("booked_tickets + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// The event is full or missing. A holder whose earlier attempt
			// committed and filled the event must still see AlreadyBooked,
			// not SoldOut, so check holder presence first.
			var existing int64
			if err := tx.Model(&models.Ticket{}).
				Where("event_id = ? AND user_id = ?", eventID, ticket.UserID).
				Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				return ErrAlreadyBooked
			}
			var count int64
			if err := tx.Model(&models.Event{}).Where("id = ?", eventID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrEventNotFound
			}
			return ErrSoldOut
		}

		ticket.EventID = eventID
		if err := tx.Create(ticket).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyBooked
			}
			return err
		}
		return nil
	})
}

// ValidateTicket flips a ticket to validated with a conditional update keyed
// by ticket_id. Exactly one concurrent validator wins the flip; the others see
// zero rows affected and get ErrAlreadyValidated. The transition is one-way.
func (s *Store) ValidateTicket(ctx context.Context, ticketID string, at time.Time) (models.Ticket, error) {
	var ticket models.Ticket

	res := s.db.WithContext(ctx).Model(&models.Ticket{}).
		Where("ticket_id = ? AND validated = ?", ticketID, false).
		Updates(map[string]interface{}{"validated": true, "validated_at": at})
	if res.Error != nil {
		return ticket, res.Error
	}

	if err := s.db.WithContext(ctx).Where("ticket_id = ?", ticketID).First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ticket, ErrTicketNotFound
		}
		return ticket, err
	}

	if res.RowsAffected == 0 {
		return ticket, ErrAlreadyValidated
	}
	return ticket, nil
}

// GetTicket does an exact-match lookup by the scannable identifier.
func (s *Store) GetTicket(ctx context.Context, ticketID string) (models.Ticket, error) {
	var ticket models.Ticket
	err := s.db.WithContext(ctx).Where("ticket_id = ?", ticketID).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ticket, ErrTicketNotFound
		}
		return ticket, err
	}
	return ticket, nil
}

// HolderTicket is the registry view row: a ticket joined with the event it
// admits to.
type HolderTicket struct {
	models.Ticket
	EventTitle string    `json:"event_title"`
	EventDate  time.Time `json:"event_date"`
}

// TicketsByHolder lists every ticket a holder owns across all events.
func (s *Store) TicketsByHolder(ctx context.Context, userID uuid.UUID) ([]HolderTicket, error) {
	var tickets []HolderTicket
	err := s.db.WithContext(ctx).Model(&models.Ticket{}).
		Select("tickets.*, events.title AS event_title, events.date AS event_date").
		Joins("JOIN events ON events.id = tickets.event_id").
		Where("tickets.user_id = ?", userID).
		Order("tickets.booked_at DESC").
		Scan(&tickets).Error
	return tickets, err
}

// SetEventActive toggles listing visibility. Scoped to the owning organizer.
func (s *Store) SetEventActive(ctx context.Context, id, organizerID uuid.UUID, active bool) error {
	res := s.db.WithContext(ctx).Model(&models.Event{}).
		Where("id = ? AND organizer_id = ?", id, organizerID).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// DeleteEvent hard-deletes an event and, through the FK cascade, every ticket
// issued against it. Scoped to the owning organizer.
func (s *Store) DeleteEvent(ctx context.Context, id, organizerID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND organizer_id = ?", id, organizerID).
		Delete(&models.Event{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}
