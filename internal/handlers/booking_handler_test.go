package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farellandr/gatepass/internal/booking"
	"github.com/farellandr/gatepass/internal/clock"
	"github.com/farellandr/gatepass/internal/models"
	"github.com/farellandr/gatepass/internal/store"
)

type bookingFakeStore struct {
	mu      sync.Mutex
	events  map[uuid.UUID]*models.Event
	tickets []models.Ticket
}

func (f *bookingFakeStore) GetEvent(ctx context.Context, id uuid.UUID) (models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ev, ok := f.events[id]
	if !ok {
		return models.Event{}, store.ErrEventNotFound
	}
	return *ev, nil
}

func (f *bookingFakeStore) ReserveSeat(ctx context.Context, eventID uuid.UUID, ticket *models.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ev, ok := f.events[eventID]
	if !ok {
		return store.ErrEventNotFound
	}
	for _, t := range f.tickets {
		if t.EventID == eventID && t.UserID == ticket.UserID {
			return store.ErrAlreadyBooked
		}
	}
	if ev.BookedTickets >= ev.TotalTickets {
		return store.ErrSoldOut
	}
	ev.BookedTickets++
	ticket.EventID = eventID
	f.tickets = append(f.tickets, *ticket)
	return nil
}

type noopNotifier struct{}

func (noopNotifier) EventUpdated(ctx context.Context, eventID uuid.UUID) {}

func bookingRouter(svc *booking.Service, identity gin.H) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("booking", svc)
		for k, v := range identity {
			c.Set(k, v)
		}
		c.Next()
	})
	r.POST("/v1/events/:id/book", BookTicket)
	return r
}

func TestBookTicketHandler(t *testing.T) {
	event := &models.Event{ID: uuid.New(), TotalTickets: 1}
	fs := &bookingFakeStore{events: map[uuid.UUID]*models.Event{event.ID: event}}
	svc := booking.NewService(fs, noopNotifier{}, clock.NewSystem())

	attendeeIdentity := gin.H{
		"user_id": uuid.New(),
		"name":    "Alice",
		"email":   "alice@example.com",
		"role":    models.RoleAttendee,
	}

	t.Run("books a seat", func(t *testing.T) {
		r := bookingRouter(svc, attendeeIdentity)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/events/"+event.ID.String()+"/book", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "TIX-") {
			t.Fatalf("response missing ticket id: %s", w.Body.String())
		}
	})

	t.Run("duplicate booking conflicts", func(t *testing.T) {
		r := bookingRouter(svc, attendeeIdentity)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/events/"+event.ID.String()+"/book", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("sold out conflicts for a new holder", func(t *testing.T) {
		other := gin.H{
			"user_id": uuid.New(),
			"name":    "Bob",
			"email":   "bob@example.com",
			"role":    models.RoleAttendee,
		}
		r := bookingRouter(svc, other)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/events/"+event.ID.String()+"/book", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("organizer role forbidden", func(t *testing.T) {
		organizer := gin.H{
			"user_id": uuid.New(),
			"name":    "Olga",
			"email":   "olga@example.com",
			"role":    models.RoleOrganizer,
		}
		r := bookingRouter(svc, organizer)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/events/"+event.ID.String()+"/book", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		r := bookingRouter(svc, attendeeIdentity)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/events/"+uuid.NewString()+"/book", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("malformed event id", func(t *testing.T) {
		r := bookingRouter(svc, attendeeIdentity)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/events/not-a-uuid/book", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}
