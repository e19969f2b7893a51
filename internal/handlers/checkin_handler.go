package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/gatepass/internal/checkin"
	"github.com/farellandr/gatepass/internal/helpers"
	"github.com/farellandr/gatepass/internal/store"
)

type ValidateRequest struct {
	TicketID string `json:"ticket_id" binding:"required"`
}

// ValidateTicket performs the one-time check-in for a scanned payload. The
// three outcomes map to distinct statuses so a retried scan of a committed
// validation reports the conflict instead of a duplicate success.
func ValidateTicket(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	svc, exists := c.Get("checkin")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Check-in service not found.")
		return
	}
	checkinService := svc.(*checkin.Service)

	result, err := checkinService.Validate(c.Request.Context(), req.TicketID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrTicketNotFound):
			helpers.RespondWithError(c, http.StatusNotFound, "Ticket not found.")
		case errors.Is(err, store.ErrAlreadyValidated):
			helpers.RespondWithError(c, http.StatusConflict, "Ticket already used.")
		default:
			helpers.RespondWithError(c, http.StatusServiceUnavailable, "Validation failed. Please retry.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Ticket validated successfully.",
		"event_title": result.EventTitle,
		"ticket":      result.Ticket,
	})
}
