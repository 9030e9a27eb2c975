package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/jwalitptl/hms-api/internal/config"
	authHandler "github.com/jwalitptl/hms-api/internal/handler/auth"
	bookingHandler "github.com/jwalitptl/hms-api/internal/handler/booking"
	healthHandler "github.com/jwalitptl/hms-api/internal/handler/health"
	requestHandler "github.com/jwalitptl/hms-api/internal/handler/surgeryrequest"
	theaterHandler "github.com/jwalitptl/hms-api/internal/handler/theater"
	"github.com/jwalitptl/hms-api/internal/middleware"
	"github.com/jwalitptl/hms-api/internal/repository/postgres"
	"github.com/jwalitptl/hms-api/internal/router"
	authService "github.com/jwalitptl/hms-api/internal/service/auth"
	bookingService "github.com/jwalitptl/hms-api/internal/service/booking"
	eventService "github.com/jwalitptl/hms-api/internal/service/event"
	schedulerService "github.com/jwalitptl/hms-api/internal/service/scheduler"
	requestService "github.com/jwalitptl/hms-api/internal/service/surgeryrequest"
	theaterService "github.com/jwalitptl/hms-api/internal/service/theater"
	"github.com/jwalitptl/hms-api/pkg/auth"
	"github.com/jwalitptl/hms-api/pkg/logger"
	"github.com/jwalitptl/hms-api/pkg/metrics"
	"github.com/jwalitptl/hms-api/pkg/validator"
)

func main() {
	log := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	m := metrics.NewMetrics("hms", "api")

	// Repositories
	theaterRepo := postgres.NewTheaterRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	requestRepo := postgres.NewSurgeryRequestRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	clinicianRepo := postgres.NewClinicianRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Services
	eventSvc := eventService.NewService(outboxRepo, log)
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	authSvc := authService.NewService(clinicianRepo, jwtSvc)
	theaterSvc := theaterService.NewService(theaterRepo)
	requestSvc := requestService.NewService(requestRepo, patientRepo)
	bookingSvc := bookingService.NewService(bookingRepo, requestRepo, eventSvc, m, log)
	schedulerSvc := schedulerService.NewService(theaterRepo, bookingRepo, requestRepo, m, log)

	// Handlers
	validate := validator.New()
	authH := authHandler.NewHandler(authSvc, validate)
	theaterH := theaterHandler.NewHandler(theaterSvc, validate)
	bookingH := bookingHandler.NewHandler(bookingSvc, validate)
	requestH := requestHandler.NewHandler(requestSvc, schedulerSvc, validate)
	healthH := healthHandler.NewHandler(db)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	r := router.NewRouter(
		authMiddleware,
		authH,
		theaterH,
		bookingH,
		requestH,
		healthH,
		router.Config{
			RateLimit:     rate.Limit(cfg.RateLimit.RPS),
			RateBurst:     cfg.RateLimit.Burst,
			Timeout:       time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			CacheTTL:      time.Duration(cfg.Cache.TTLSeconds) * time.Second,
			CacheCleanup:  time.Duration(cfg.Cache.CleanupSeconds) * time.Second,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "hms_api",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	log.Info("server exited properly")
}
