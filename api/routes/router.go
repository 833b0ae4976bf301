package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"staychain/internal/guests"
	"staychain/internal/notifications"
	"staychain/internal/reservations"
	"staychain/internal/rooms"
	"staychain/internal/shared/config"
	"staychain/internal/shared/database"
	"staychain/pkg/cache"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	verifier reservations.BookingVerifier
	producer notifications.Producer

	// roomService is shared between the catalog routes and the
	// reservation routes, which drive the mirror through it.
	roomService rooms.Service
}

// NewRouter creates a new router instance. producer may be nil when the
// event stream is disabled.
func NewRouter(cfg *config.Config, db *database.DB, verifier reservations.BookingVerifier, producer notifications.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		verifier: verifier,
		producer: producer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Room routes first: the reservation module depends on the
		// catalog service built here.
		r.setupRoomRoutes(api)
		r.setupReservationRoutes(api)
		r.setupGuestRoutes(api)
	}
}

// RoomService exposes the catalog service for out-of-band consumers such
// as the mirror reconciler.
func (r *Router) RoomService() rooms.Service {
	if r.roomService == nil {
		r.buildRoomService()
	}
	return r.roomService
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "staychain-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "staychain-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

func (r *Router) buildRoomService() {
	roomRepo := rooms.NewRepository(r.db.GetPostgreSQL())

	var cacheService cache.Service
	if redisClient := r.db.GetRedisClient(); redisClient != nil {
		cacheService = cache.NewService(redisClient)
	}

	r.roomService = rooms.NewService(roomRepo, cacheService, r.config.Redis.RoomCacheTTL)
}

// setupRoomRoutes configures room catalog routes
func (r *Router) setupRoomRoutes(rg *gin.RouterGroup) {
	if r.roomService == nil {
		r.buildRoomService()
	}

	roomController := rooms.NewController(r.roomService)
	rooms.SetupRoomRoutes(rg, roomController)
}

// setupReservationRoutes configures booking ledger routes
func (r *Router) setupReservationRoutes(rg *gin.RouterGroup) {
	reservationRepo := reservations.NewRepository(r.db.GetPostgreSQL())
	reservationService := reservations.NewService(reservationRepo, r.roomService, r.verifier, r.producer)
	reservationController := reservations.NewController(reservationService)

	reservations.SetupReservationRoutes(rg, reservationController)
}

// setupGuestRoutes configures guest profile routes
func (r *Router) setupGuestRoutes(rg *gin.RouterGroup) {
	guestRepo := guests.NewRepository(r.db.GetPostgreSQL())
	guestService := guests.NewService(guestRepo)
	guestController := guests.NewController(guestService)

	guests.SetupGuestRoutes(rg, guestController)
}
