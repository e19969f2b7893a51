package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farellandr/gatepass/internal/helpers"
	"github.com/farellandr/gatepass/internal/models"
	"github.com/farellandr/gatepass/internal/store"
)

// EventStore is the slice of the store the read/admin handlers use. The
// booking and check-in write paths go through their services instead.
type EventStore interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEventDetail(ctx context.Context, id uuid.UUID) (models.Event, error)
	ListEvents(ctx context.Context, activeOnly bool) ([]models.Event, error)
	SetEventActive(ctx context.Context, id, organizerID uuid.UUID, active bool) error
	DeleteEvent(ctx context.Context, id, organizerID uuid.UUID) error
	TicketsByHolder(ctx context.Context, userID uuid.UUID) ([]store.HolderTicket, error)
	GetTicket(ctx context.Context, ticketID string) (models.Ticket, error)
}

func getEventStore(c *gin.Context) (EventStore, bool) {
	st, exists := c.Get("store")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Store not found.")
		return nil, false
	}
	return st.(EventStore), true
}

type CreateEventRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Date         string `json:"date" binding:"required"`
	TotalTickets int    `json:"total_tickets" binding:"required,gt=0"`
}

func CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid date format (use RFC3339 or YYYY-MM-DD).")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	eventStore, ok := getEventStore(c)
	if !ok {
		return
	}

	event := models.Event{
		ID:           uuid.New(),
		Title:        req.Title,
		Description:  req.Description,
		Date:         date,
		TotalTickets: req.TotalTickets,
		IsActive:     true,
		OrganizerID:  userID.(uuid.UUID),
	}

	if err := eventStore.CreateEvent(c.Request.Context(), &event); err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create event.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Event created successfully.",
		"event_id": event.ID,
	})
}

func GetEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	eventStore, ok := getEventStore(c)
	if !ok {
		return
	}

	event, err := eventStore.GetEventDetail(c.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusServiceUnavailable, "Error retrieving event. Please retry.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"event":     event,
		"remaining": event.Remaining(),
	})
}

// ListEvents serves the public feed: active events only. Organizers get the
// full list, inactive included, through /organizer/events.
func ListEvents(c *gin.Context) {
	eventStore, ok := getEventStore(c)
	if !ok {
		return
	}

	events, err := eventStore.ListEvents(c.Request.Context(), true)
	if err != nil {
		helpers.RespondWithError(c, http.StatusServiceUnavailable, "Error retrieving events. Please retry.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

func ListAllEvents(c *gin.Context) {
	eventStore, ok := getEventStore(c)
	if !ok {
		return
	}

	events, err := eventStore.ListEvents(c.Request.Context(), false)
	if err != nil {
		helpers.RespondWithError(c, http.StatusServiceUnavailable, "Error retrieving events. Please retry.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

func SetEventActive(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	eventStore, ok := getEventStore(c)
	if !ok {
		return
	}

	if err := eventStore.SetEventActive(c.Request.Context(), eventID, userID.(uuid.UUID), *req.IsActive); err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			helpers.RespondWithError(c, http.StatusForbidden, "Event not found or you don't have permission to update.")
			return
		}
		helpers.RespondWithError(c, http.StatusServiceUnavailable, "Failed to update event. Please retry.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully."})
}

func DeleteEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	eventStore, ok := getEventStore(c)
	if !ok {
		return
	}

	if err := eventStore.DeleteEvent(c.Request.Context(), eventID, userID.(uuid.UUID)); err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			helpers.RespondWithError(c, http.StatusForbidden, "Event not found or you don't have permission to delete.")
			return
		}
		helpers.RespondWithError(c, http.StatusServiceUnavailable, "Failed to delete event. Please retry.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully."})
}
