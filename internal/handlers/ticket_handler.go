package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/farellandr/gatepass/internal/helpers"
	"github.com/farellandr/gatepass/internal/store"
)

// GetMyTickets is the registry view: every ticket the caller holds across all
// events, joined with the event it admits to.
func GetMyTickets(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	eventStore, ok := getEventStore(c)
	if !ok {
		return
	}

	tickets, err := eventStore.TicketsByHolder(c.Request.Context(), userID.(uuid.UUID))
	if err != nil {
		helpers.RespondWithError(c, http.StatusServiceUnavailable, "Error retrieving tickets. Please retry.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

// GetTicketQR renders the holder's ticket identifier as a PNG. The QR payload
// is the bare identifier string; scanning stations post it back verbatim.
func GetTicketQR(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	ticketID := c.Param("ticketId")

	eventStore, ok := getEventStore(c)
	if !ok {
		return
	}

	ticket, err := eventStore.GetTicket(c.Request.Context(), ticketID)
	if err != nil {
		if errors.Is(err, store.ErrTicketNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Ticket not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusServiceUnavailable, "Error retrieving ticket. Please retry.")
		return
	}

	if ticket.UserID != userID.(uuid.UUID) {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to view this ticket.")
		return
	}

	qrImage, err := qrcode.Encode(ticket.TicketID, qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}
