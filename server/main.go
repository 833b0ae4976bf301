package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"staychain/api/routes"
	"staychain/internal/chain"
	"staychain/internal/notifications"
	"staychain/internal/rooms"
	"staychain/internal/shared/config"
	"staychain/internal/shared/database"
	"staychain/internal/shared/middleware"
	"staychain/internal/shared/utils/validation"
	"staychain/pkg/logger"
	"staychain/pkg/ratelimit"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)
	validation.RegisterCustomValidators()

	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("failed to connect", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Chain verifier: every reservation commit is checked against the
	// payment contract before it is recorded.
	dialCtx, dialCancel := context.WithTimeout(context.Background(), 10*time.Second)
	verifier, err := chain.Dial(dialCtx, cfg.Chain)
	dialCancel()
	if err != nil {
		appLogger.Error("failed to connect to chain rpc", slog.Any("error", err))
		os.Exit(1)
	}
	appLogger.Info("Chain verifier initialized",
		slog.String("contract", cfg.Chain.ContractAddress),
		slog.Bool("enforce_paid_amount", cfg.Chain.EnforcePaidAmount),
	)

	// Rate limiter
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = ratelimit.NewRateLimiter(db.GetRedisClient(), &ratelimit.Config{
			Enabled:                 cfg.RateLimit.Enabled,
			WindowDuration:          cfg.RateLimit.WindowDuration,
			DefaultRequests:         cfg.RateLimit.DefaultRequests,
			PublicRequests:          cfg.RateLimit.PublicRequests,
			BookingRequests:         cfg.RateLimit.BookingRequests,
			BookingCriticalRequests: cfg.RateLimit.BookingCriticalRequests,
			AdminRequests:           cfg.RateLimit.AdminRequests,
			HealthRequests:          cfg.RateLimit.HealthRequests,
			WhitelistedIPs:          cfg.RateLimit.WhitelistedIPs,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	// Reservation event stream + mirror reconciler
	var producer notifications.Producer
	var reconciler *notifications.Reconciler
	reconcileCtx, reconcileCancel := context.WithCancel(context.Background())
	defer reconcileCancel()

	appRouter := routes.NewRouter(cfg, db, verifier, nil)

	if cfg.Kafka.Enabled {
		kafkaProducer, err := notifications.NewKafkaProducer(cfg.Kafka)
		if err != nil {
			appLogger.Error("Failed to initialize kafka producer", slog.Any("error", err))
			appLogger.Info("Continuing without event stream - reservation events will not be published")
		} else {
			producer = kafkaProducer
			defer kafkaProducer.Close()
			appRouter = routes.NewRouter(cfg, db, verifier, producer)

			reconciler, err = notifications.NewReconciler(cfg.Kafka, mirrorStoreAdapter{appRouter.RoomService()}, appLogger)
			if err != nil {
				appLogger.Error("Failed to initialize mirror reconciler", slog.Any("error", err))
			} else {
				go func() {
					if err := reconciler.Start(reconcileCtx); err != nil && err != context.Canceled {
						appLogger.Error("Mirror reconciler stopped", slog.Any("error", err))
					}
				}()
				defer reconciler.Close()
				appLogger.Info("Mirror reconciler started", slog.String("topic", cfg.Kafka.ReservationTopic))
			}
		}
	}

	router := setupRouter(appRouter, rateLimiter, appLogger)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("api_status", fmt.Sprintf("http://localhost:%s%s/status", cfg.Port, cfg.GetAPIBasePath())),
			slog.String("version", Version),
			slog.Bool("redis_cache", db.GetRedisClient() != nil),
			slog.Bool("rate_limiting", cfg.RateLimit.Enabled),
			slog.Bool("event_stream", producer != nil),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func setupRouter(appRouter *routes.Router, rateLimiter *ratelimit.RateLimiter, appLogger *logger.Logger) *gin.Engine {
	engine := gin.New()

	engine.Use(middleware.RequestLogger(appLogger), gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true // allow every origin dynamically
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "X-RateLimit-*"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
		appLogger.Info("Rate limiting middleware applied to all routes")
	}

	appRouter.SetupRoutes(engine)

	return engine
}

// mirrorStoreAdapter exposes the room catalog as the reconciler's store.
type mirrorStoreAdapter struct {
	catalog rooms.Service
}

func (a mirrorStoreAdapter) AppendSummary(ctx context.Context, event notifications.ReservationEvent) error {
	return a.catalog.AppendSummary(ctx, rooms.BookingSummary{
		RoomID:       event.RoomID,
		UserID:       event.HolderAddress,
		CheckInDate:  event.CheckIn,
		CheckOutDate: event.CheckOut,
		TxHash:       event.TxHash,
		BookingHash:  event.BookingHash,
		Status:       "BOOKED",
	})
}

func (a mirrorStoreAdapter) UpdateSummaryStatus(ctx context.Context, roomID int, txHash string, status string) error {
	return a.catalog.UpdateSummaryStatus(ctx, roomID, txHash, status)
}
