package checkin

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/farellandr/gatepass/internal/clock"
	"github.com/farellandr/gatepass/internal/models"
)

// Store is the slice of the event store the validator needs. ValidateTicket
// must commit the issued -> validated flip conditionally so that of two
// stations racing on the same ticket exactly one wins.
type Store interface {
	ValidateTicket(ctx context.Context, ticketID string, at time.Time) (models.Ticket, error)
	GetEvent(ctx context.Context, id uuid.UUID) (models.Event, error)
}

// Notifier pushes a record-change signal to the realtime layer.
type Notifier interface {
	EventUpdated(ctx context.Context, eventID uuid.UUID)
}

// Result is what a scanning station shows after a successful check-in.
type Result struct {
	Ticket     models.Ticket `json:"ticket"`
	EventTitle string        `json:"event_title"`
}

// Service performs the one-time check-in transition for scanned tickets.
type Service struct {
	store    Store
	notifier Notifier
	clock    clock.Clock
}

func NewService(st Store, notifier Notifier, clk clock.Clock) *Service {
	return &Service{store: st, notifier: notifier, clock: clk}
}

// Validate looks up the scanned identifier with an exact match and flips the
// ticket to validated. Outcomes are mutually exclusive: success here,
// store.ErrTicketNotFound when nothing matches, store.ErrAlreadyValidated when
// another scan got there first (including a retry of a timed-out scan that
// actually committed).
func (s *Service) Validate(ctx context.Context, ticketID string) (Result, error) {
	ticket, err := s.store.ValidateTicket(ctx, ticketID, s.clock.Now())
	if err != nil {
		return Result{}, err
	}

	event, err := s.store.GetEvent(ctx, ticket.EventID)
	if err != nil {
		return Result{}, err
	}

	s.notifier.EventUpdated(ctx, ticket.EventID)
	return Result{Ticket: ticket, EventTitle: event.Title}, nil
}
