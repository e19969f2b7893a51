package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/farellandr/gatepass/internal/booking"
	"github.com/farellandr/gatepass/internal/checkin"
	"github.com/farellandr/gatepass/internal/realtime"
	"github.com/farellandr/gatepass/internal/store"
)

// Services bundles everything the handlers pull out of the gin context.
type Services struct {
	Store   *store.Store
	Booking *booking.Service
	Checkin *checkin.Service
	Broker  *realtime.Broker
}

func ServicesMiddleware(svcs Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("store", svcs.Store)
		c.Set("booking", svcs.Booking)
		c.Set("checkin", svcs.Checkin)
		c.Set("broker", svcs.Broker)
		c.Next()
	}
}
