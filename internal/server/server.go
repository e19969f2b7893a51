package server

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/farellandr/gatepass/config"
	"github.com/farellandr/gatepass/internal/booking"
	"github.com/farellandr/gatepass/internal/checkin"
	"github.com/farellandr/gatepass/internal/clock"
	"github.com/farellandr/gatepass/internal/handlers"
	"github.com/farellandr/gatepass/internal/middleware"
	"github.com/farellandr/gatepass/internal/models"
	"github.com/farellandr/gatepass/internal/realtime"
	"github.com/farellandr/gatepass/internal/store"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	redisCfg, err := config.LoadRedisConfig()
	if err != nil {
		return fmt.Errorf("failed to load redis config: %v", err)
	}
	rc := config.InitRedis(redisCfg)

	eventStore := store.New(db)
	broker := realtime.NewBroker()
	publisher := realtime.NewRedisPublisher(rc, redisCfg.UpdatesChannel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go realtime.SubscribeUpdates(ctx, rc, redisCfg.UpdatesChannel, broker)

	clk := clock.NewSystem()
	svcs := middleware.Services{
		Store:   eventStore,
		Booking: booking.NewService(eventStore, publisher, clk),
		Checkin: checkin.NewService(eventStore, publisher, clk),
		Broker:  broker,
	}

	r := gin.Default()

	setupRoutes(r, db, svcs)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, svcs middleware.Services) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.ServicesMiddleware(svcs))

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		eventPublic := public.Group("/events")
		{
			eventPublic.GET("", handlers.ListEvents)
			eventPublic.GET("/:id", handlers.GetEvent)
		}
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.POST("/events/:id/book", handlers.BookTicket)
		protected.GET("/tickets", handlers.GetMyTickets)
		protected.GET("/tickets/:ticketId/qr", handlers.GetTicketQR)
		protected.GET("/stream", handlers.StreamEvents)

		organizer := protected.Group("")
		organizer.Use(middleware.RequireRole(models.RoleOrganizer))
		{
			organizer.POST("/events", handlers.CreateEvent)
			organizer.PATCH("/events/:id/active", handlers.SetEventActive)
			organizer.DELETE("/events/:id", handlers.DeleteEvent)
			organizer.GET("/organizer/events", handlers.ListAllEvents)
			organizer.POST("/checkin", handlers.ValidateTicket)
		}
	}
}
