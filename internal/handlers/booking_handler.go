package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farellandr/gatepass/internal/booking"
	"github.com/farellandr/gatepass/internal/helpers"
	"github.com/farellandr/gatepass/internal/store"
)

func holderFromContext(c *gin.Context) (booking.Holder, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return booking.Holder{}, false
	}
	return booking.Holder{
		ID:    userID.(uuid.UUID),
		Name:  c.GetString("name"),
		Email: c.GetString("email"),
		Role:  c.GetString("role"),
	}, true
}

func BookTicket(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	holder, ok := holderFromContext(c)
	if !ok {
		return
	}

	svc, exists := c.Get("booking")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Booking service not found.")
		return
	}
	bookingService := svc.(*booking.Service)

	ticket, err := bookingService.Reserve(c.Request.Context(), eventID, holder)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrRoleNotPermitted):
			helpers.RespondWithError(c, http.StatusForbidden, "Organizers are restricted from booking tickets.")
		case errors.Is(err, store.ErrEventNotFound):
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		case errors.Is(err, store.ErrAlreadyBooked):
			helpers.RespondWithError(c, http.StatusConflict, "You already hold a ticket for this event.")
		case errors.Is(err, store.ErrSoldOut):
			helpers.RespondWithError(c, http.StatusConflict, "Event is sold out.")
		default:
			helpers.RespondWithError(c, http.StatusServiceUnavailable, "Booking failed. Please retry.")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Ticket booked successfully.",
		"ticket":  ticket,
	})
}
