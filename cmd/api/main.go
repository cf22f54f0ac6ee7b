package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Saranya396/projectt/internal/adapters/database"
	"github.com/Saranya396/projectt/internal/adapters/events"
	"github.com/Saranya396/projectt/internal/adapters/storage"
	"github.com/Saranya396/projectt/internal/api/handlers"
	"github.com/Saranya396/projectt/internal/api/routes"
	"github.com/Saranya396/projectt/internal/application/services"
	"github.com/Saranya396/projectt/internal/application/session"
	"github.com/Saranya396/projectt/internal/infrastructure/observability"
	"github.com/Saranya396/projectt/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.App.Name, cfg.App.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Open the record store
	store, err := storage.New(ctx, cfg, metrics)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("failed to open record store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("error closing record store")
		}
	}()

	// Open the event bus feeding live dashboards
	eventBus, closeEvents, err := events.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Events.Backend).Msg("failed to open event bus")
	}
	log.Info().Str("backend", cfg.Events.Backend).Msg("event bus ready")

	// Initialize repositories
	userRepo := database.NewUserRepository(store.Store)
	appointmentRepo := database.NewAppointmentRepository(store.Store)
	historyRepo := database.NewMedicalHistoryRepository(store.Store)
	prescriptionRepo := database.NewPrescriptionRepository(store.Store)
	inventoryRepo := database.NewInventoryRepository(store.Store)

	// Initialize services
	clock := services.SystemClock{}
	ids := services.NewIDGenerator(clock)
	withEvents := services.WithEventBus(eventBus)
	accountService := services.NewAccountService(userRepo, ids, withEvents)
	patientService := services.NewPatientService(accountService, appointmentRepo, historyRepo, prescriptionRepo, ids, clock, withEvents)
	doctorService := services.NewDoctorService(appointmentRepo, historyRepo, prescriptionRepo, ids, clock, withEvents)
	pharmacistService := services.NewPharmacistService(prescriptionRepo, inventoryRepo, ids, clock, withEvents)
	adminService := services.NewAdminService(accountService, services.NewPlatformSettings(cfg.Platform))

	sessions := session.NewRegistry()

	// Initialize handlers and router
	router := routes.NewRouter(
		handlers.NewAuthHandler(accountService, sessions),
		handlers.NewPatientHandler(patientService),
		handlers.NewDoctorHandler(doctorService),
		handlers.NewPharmacistHandler(pharmacistService),
		handlers.NewAdminHandler(adminService),
		handlers.NewSSEHandler(eventBus),
		sessions,
		metrics,
	)

	server := &http.Server{
		Addr:         cfg.Server.ServerAddr(),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Closing the bus ends open event streams so Shutdown is not held up
	server.RegisterOnShutdown(func() {
		if err := closeEvents(); err != nil {
			log.Error().Err(err).Msg("error closing event bus")
		}
	})

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Int("open_sessions", sessions.Len()).Msg("server stopped")
}
