package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/farellandr/gatepass/internal/clock"
	"github.com/farellandr/gatepass/internal/models"
	"github.com/farellandr/gatepass/internal/ticketid"
)

// ErrRoleNotPermitted rejects organizer accounts from booking. This is a
// policy rule, not a data-model constraint.
var ErrRoleNotPermitted = errors.New("role not permitted to book tickets")

// Store is the slice of the event store the reservation service needs. The
// ReserveSeat implementation must apply the counter increment and the ticket
// append atomically, as one durable operation.
type Store interface {
	GetEvent(ctx context.Context, id uuid.UUID) (models.Event, error)
	ReserveSeat(ctx context.Context, eventID uuid.UUID, ticket *models.Ticket) error
}

// Notifier pushes a record-change signal to the realtime layer. Delivery is
// best effort; the reservation itself is already durable when it fires.
type Notifier interface {
	EventUpdated(ctx context.Context, eventID uuid.UUID)
}

// Holder identifies who is booking. It is passed explicitly into every call
// rather than read from ambient session state.
type Holder struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  string
}

// Service serializes booking attempts against an event's capacity. It is the
// single write path for reservations.
type Service struct {
	store    Store
	notifier Notifier
	clock    clock.Clock
}

func NewService(st Store, notifier Notifier, clk clock.Clock) *Service {
	return &Service{store: st, notifier: notifier, clock: clk}
}

// Reserve consumes one unit of the event's capacity and issues a ticket.
// Capacity and duplicate-holder outcomes are decided by the store's
// conditional commit, which checks holder presence before reporting a full
// event: a retried request whose first attempt committed and filled the event
// gets ErrAlreadyBooked, never SoldOut and never a second ticket.
func (s *Service) Reserve(ctx context.Context, eventID uuid.UUID, holder Holder) (models.Ticket, error) {
	if holder.Role == models.RoleOrganizer {
		return models.Ticket{}, ErrRoleNotPermitted
	}

	if _, err := s.store.GetEvent(ctx, eventID); err != nil {
		return models.Ticket{}, err
	}

	id, err := ticketid.New()
	if err != nil {
		return models.Ticket{}, err
	}

	ticket := models.Ticket{
		TicketID: id,
		UserID:   holder.ID,
		Name:     holder.Name,
		Email:    holder.Email,
		BookedAt: s.clock.Now(),
	}
	if err := s.store.ReserveSeat(ctx, eventID, &ticket); err != nil {
		return models.Ticket{}, err
	}

	s.notifier.EventUpdated(ctx, eventID)
	return ticket, nil
}
