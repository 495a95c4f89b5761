package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hrdesk/hrdesk-backend/internal/hr/access"
	"github.com/hrdesk/hrdesk-backend/internal/hr/events"
	"github.com/hrdesk/hrdesk-backend/internal/hr/handler"
	"github.com/hrdesk/hrdesk-backend/internal/hr/repository"
	"github.com/hrdesk/hrdesk-backend/internal/hr/service"
	"github.com/hrdesk/hrdesk-backend/pkg/activity"
	"github.com/hrdesk/hrdesk-backend/pkg/auth"
	"github.com/hrdesk/hrdesk-backend/pkg/config"
	"github.com/hrdesk/hrdesk-backend/pkg/database"
	"github.com/hrdesk/hrdesk-backend/pkg/httputil"
	"github.com/hrdesk/hrdesk-backend/pkg/logger"
	"github.com/hrdesk/hrdesk-backend/pkg/messaging"
)

func main() {
	// Load configuration with validation (fails fast in production if required config is missing)
	cfg, err := config.LoadWithValidation("hr-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("hr-service", cfg.Server.Environment)
	log.Info().Msg("starting HR Service")

	// Connect to database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := repository.EnsureSchema(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure schema")
	}

	// Connect to RabbitMQ
	rmq, err := messaging.New(&cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer rmq.Close()

	// Initialize event publisher
	publisher, err := events.NewHREventPublisher(rmq, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event publisher")
	}

	// Initialize repositories
	employeeRepo := repository.NewEmployeeRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	salaryRepo := repository.NewSalaryRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	ruleRepo := repository.NewAccessRuleRepository(db)
	statementRepo := repository.NewStatementRepository(db)
	trackerRepo := repository.NewTrackerRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	certificateRepo := repository.NewCertificateRepository(db)

	// Access scope resolver
	resolver := access.NewResolver(employeeRepo, teamRepo, ruleRepo, log)

	// Bounded intent log shared across services
	intents := activity.NewLog(activity.DefaultCapacity)

	// Initialize services
	profileService := service.NewProfileService(employeeRepo, salaryRepo, leaveRepo, resolver, publisher, intents, log)
	directoryService := service.NewDirectoryService(employeeRepo, intents, log)
	teamService := service.NewTeamService(teamRepo, employeeRepo, salaryRepo, resolver, publisher, intents, log)
	leaveService := service.NewLeaveService(leaveRepo, employeeRepo, intents, log)
	salaryService := service.NewSalaryService(salaryRepo, employeeRepo, resolver, publisher, intents, log)
	statementService := service.NewStatementService(statementRepo, employeeRepo, resolver, publisher, intents, log)
	workspaceService := service.NewWorkspaceService(trackerRepo, calendarRepo, certificateRepo, employeeRepo, intents, log)

	// Initialize handlers
	profileHandler := handler.NewProfileHandler(profileService, log)
	directoryHandler := handler.NewDirectoryHandler(directoryService, log)
	teamHandler := handler.NewTeamHandler(teamService, log)
	leaveHandler := handler.NewLeaveHandler(leaveService, log)
	salaryHandler := handler.NewSalaryHandler(salaryService, log)
	statementHandler := handler.NewStatementHandler(statementService, log)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceService, log)
	activityHandler := handler.NewActivityHandler(intents, log)

	// Authentication middleware
	jwtManager := auth.NewManager(&cfg.JWT)
	authMiddleware := auth.NewMiddleware(jwtManager, log, cfg.HR.DefaultRequesterID)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]interface{}{
			"status":   "healthy",
			"service":  "hr-service",
			"database": db.Health(r.Context()),
			"rabbitmq": rmq.Health(),
		})
	})

	// API routes (actor required)
	r.Route("/api/v1/hr", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Route("/employees", func(r chi.Router) {
			r.Get("/me", profileHandler.GetOwn)
			r.Get("/search", directoryHandler.Search)
			r.Get("/{id}/profile", profileHandler.Get)
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/overview", teamHandler.Overview)
			r.Get("/search", teamHandler.Search)
		})

		r.Route("/leave", func(r chi.Router) {
			r.Get("/history", leaveHandler.History)
			r.Get("/balance", leaveHandler.Balance)
			r.Post("/forecast", leaveHandler.Forecast)
		})

		r.Get("/salary/team-stats", salaryHandler.TeamStats)

		r.Route("/statements", func(r chi.Router) {
			r.Post("/", statementHandler.Create)
			r.Get("/", statementHandler.List)
			r.Delete("/{id}", statementHandler.Cancel)
		})

		r.Route("/workspace", func(r chi.Router) {
			r.Get("/tasks", workspaceHandler.Tasks)
			r.Get("/calendar", workspaceHandler.Calendar)
			r.Post("/certificates", workspaceHandler.OrderCertificate)
		})

		r.Get("/activity/recent", activityHandler.Recent)
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
