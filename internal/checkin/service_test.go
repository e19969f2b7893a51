package checkin

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/farellandr/gatepass/internal/clock"
	"github.com/farellandr/gatepass/internal/models"
	"github.com/farellandr/gatepass/internal/store"
)

// fakeStore reproduces the store's conditional flip: the validated check and
// the write happen under one lock, so only one concurrent caller wins.
type fakeStore struct {
	mu      sync.Mutex
	events  map[uuid.UUID]models.Event
	tickets map[string]*models.Ticket
}

func newFakeStore(event models.Event, tickets ...*models.Ticket) *fakeStore {
	f := &fakeStore{
		events:  map[uuid.UUID]models.Event{event.ID: event},
		tickets: make(map[string]*models.Ticket),
	}
	for _, t := range tickets {
		t.EventID = event.ID
		f.tickets[t.TicketID] = t
	}
	return f
}

func (f *fakeStore) ValidateTicket(ctx context.Context, ticketID string, at time.Time) (models.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[ticketID]
	if !ok {
		return models.Ticket{}, store.ErrTicketNotFound
	}
	if ticket.Validated {
		return *ticket, store.ErrAlreadyValidated
	}
	ticket.Validated = true
	ticket.ValidatedAt = &at
	return *ticket, nil
}

func (f *fakeStore) GetEvent(ctx context.Context, id uuid.UUID) (models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ev, ok := f.events[id]
	if !ok {
		return models.Event{}, store.ErrEventNotFound
	}
	return ev, nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	notified []uuid.UUID
}

func (f *fakeNotifier) EventUpdated(ctx context.Context, eventID uuid.UUID) {
	f.mu.Lock()
	f.notified = append(f.notified, eventID)
	f.mu.Unlock()
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.notified)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)
	event := models.Event{ID: uuid.New(), Title: "Launch Night", TotalTickets: 10}

	t.Run("flips issued ticket exactly once", func(t *testing.T) {
		ticket := &models.Ticket{TicketID: "TIX-AAAA", UserID: uuid.New()}
		fs := newFakeStore(event, ticket)
		fn := &fakeNotifier{}
		svc := NewService(fs, fn, clock.NewFixed(now))

		result, err := svc.Validate(context.Background(), "TIX-AAAA")
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if !result.Ticket.Validated {
			t.Fatal("ticket not marked validated")
		}
		if result.Ticket.ValidatedAt == nil || !result.Ticket.ValidatedAt.Equal(now) {
			t.Fatalf("expected validatedAt %v, got %v", now, result.Ticket.ValidatedAt)
		}
		if result.EventTitle != event.Title {
			t.Fatalf("expected event title %q, got %q", event.Title, result.EventTitle)
		}
		if fn.count() != 1 {
			t.Fatalf("expected one realtime notification, got %d", fn.count())
		}

		// Second scan of the same payload is a conflict, not a success.
		if _, err := svc.Validate(context.Background(), "TIX-AAAA"); err != store.ErrAlreadyValidated {
			t.Fatalf("expected ErrAlreadyValidated, got %v", err)
		}
		if fn.count() != 1 {
			t.Fatalf("conflict must not notify, got %d notifications", fn.count())
		}
	})

	t.Run("unknown payload reports NotFound without mutation", func(t *testing.T) {
		ticket := &models.Ticket{TicketID: "TIX-AAAA", UserID: uuid.New()}
		fs := newFakeStore(event, ticket)
		svc := NewService(fs, &fakeNotifier{}, clock.NewFixed(now))

		if _, err := svc.Validate(context.Background(), "TIX-ZZZZ"); err != store.ErrTicketNotFound {
			t.Fatalf("expected ErrTicketNotFound, got %v", err)
		}
		if fs.tickets["TIX-AAAA"].Validated {
			t.Fatal("unrelated ticket mutated")
		}
	})

	t.Run("lookup is exact match", func(t *testing.T) {
		ticket := &models.Ticket{TicketID: "TIX-AAAA", UserID: uuid.New()}
		fs := newFakeStore(event, ticket)
		svc := NewService(fs, &fakeNotifier{}, clock.NewFixed(now))

		if _, err := svc.Validate(context.Background(), "TIX-AAA"); err != store.ErrTicketNotFound {
			t.Fatalf("prefix must not match, got %v", err)
		}
		if _, err := svc.Validate(context.Background(), "tix-aaaa"); err != store.ErrTicketNotFound {
			t.Fatalf("case variant must not match, got %v", err)
		}
	})
}

func TestValidateConcurrent(t *testing.T) {
	t.Parallel()

	event := models.Event{ID: uuid.New(), Title: "Launch Night"}
	ticket := &models.Ticket{TicketID: "TIX-RACE", UserID: uuid.New()}
	fs := newFakeStore(event, ticket)
	svc := NewService(fs, &fakeNotifier{}, clock.NewSystem())

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Validate(context.Background(), "TIX-RACE")
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		switch err {
		case nil:
			successes++
		case store.ErrAlreadyValidated:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || conflicts != 1 {
		t.Fatalf("expected exactly one success and one conflict, got %d/%d", successes, conflicts)
	}
	if !fs.tickets["TIX-RACE"].Validated {
		t.Fatal("ticket must end validated")
	}
}
