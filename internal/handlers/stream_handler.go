package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/farellandr/gatepass/internal/helpers"
	"github.com/farellandr/gatepass/internal/models"
	"github.com/farellandr/gatepass/internal/realtime"
)

// StreamEvents is the long-lived projection stream. It sends the caller's
// filtered snapshot immediately, then again after every committed change,
// until the client disconnects. Organizers see all events; everyone else sees
// the active feed. Holder-membership views are derived client-side from the
// delivered records.
func StreamEvents(c *gin.Context) {
	role := c.GetString("role")

	eventStore, ok := getEventStore(c)
	if !ok {
		return
	}

	br, exists := c.Get("broker")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Broker not found.")
		return
	}
	broker := br.(*realtime.Broker)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	ch := broker.Subscribe()
	defer broker.Unsubscribe(ch)

	activeOnly := role != models.RoleOrganizer
	for {
		events, err := eventStore.ListEvents(ctx, activeOnly)
		if err != nil {
			log.Errorf("stream snapshot: %v", err)
			return
		}
		data, err := json.Marshal(gin.H{"events": events})
		if err != nil {
			log.Errorf("stream marshal: %v", err)
			return
		}
		if _, err := c.Writer.Write([]byte("data: ")); err != nil {
			return
		}
		if _, err := c.Writer.Write(data); err != nil {
			return
		}
		if _, err := c.Writer.Write([]byte("\n\n")); err != nil {
			return
		}
		c.Writer.Flush()

		select {
		case <-ctx.Done():
			return
		case <-ch:
			continue
		}
	}
}
