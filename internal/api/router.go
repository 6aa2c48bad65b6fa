package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/meditrack/clinic-system/internal/api/handler"
	"github.com/meditrack/clinic-system/internal/api/middleware"
	"github.com/meditrack/clinic-system/internal/core/domain"
	"github.com/meditrack/clinic-system/internal/core/ports"
	"github.com/meditrack/clinic-system/internal/core/service"
	"github.com/meditrack/clinic-system/internal/infrastructure/billing"
	"github.com/meditrack/clinic-system/internal/infrastructure/config"
	mongodb "github.com/meditrack/clinic-system/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The billing dispatcher and demo session store are owned by the caller so
// their lifecycles can be tied to the process context; sessionStore is nil
// outside demo deployments and its routes are then not registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, dispatcher handler.BillingDispatcher, sessionStore *service.SessionStore, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("clinic"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	patientRepo := mongodb.NewPatientRepository(db)
	appointmentRepo := mongodb.NewAppointmentRepository(db)
	subscriptionRepo := mongodb.NewSubscriptionRepository(db)

	var verifier ports.CredentialVerifier
	if cfg.DemoAuth {
		verifier = service.NewMockVerifier()
	} else {
		verifier = service.NewRepositoryVerifier(userRepo)
	}

	authService := service.NewAuthService(verifier, userRepo, cfg.JWTSecret, 24*time.Hour)
	patientService := service.NewPatientService(patientRepo, log)
	appointmentService := service.NewAppointmentService(appointmentRepo, log)
	reportService := service.NewReportService(patientRepo, appointmentRepo, log)
	checkout := billing.NewClient(cfg.Billing.APIURL, cfg.Billing.APIKey, cfg.Billing.CheckoutURL)

	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(authService)
	patientHandler := handler.NewPatientHandler(patientService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	reportHandler := handler.NewReportHandler(reportService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionRepo, checkout)
	webhookHandler := handler.NewWebhookHandler(dispatcher, cfg.Billing.WebhookSecret)

	authMW := middleware.Auth(cfg.JWTSecret)
	staffOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleDoctor, domain.RoleNurse, domain.RoleReceptionist)
	reportersOnly := middleware.RBAC(domain.RoleAdmin, domain.RoleDoctor)

	// --- Auth routes ---
	e.POST("/v1/auth/login", authHandler.Login)
	e.POST("/v1/auth/logout", authHandler.Logout, authMW)
	e.GET("/v1/auth/me", authHandler.Me, authMW)

	// --- Patient routes (staff only) ---
	patients := e.Group("/v1/patients", authMW, staffOnly)
	patients.POST("", patientHandler.Create)
	patients.GET("", patientHandler.List)
	patients.GET("/:id", patientHandler.Get)
	patients.PUT("/:id", patientHandler.Update)
	patients.DELETE("/:id", patientHandler.Delete)
	patients.POST("/:id/medical-records", patientHandler.AddMedicalRecord)
	patients.GET("/:id/medical-records", patientHandler.ListMedicalRecords)

	// --- Appointment routes (any authenticated role) ---
	appointments := e.Group("/v1/appointments", authMW)
	appointments.POST("", appointmentHandler.Create)
	appointments.GET("", appointmentHandler.List)
	appointments.GET("/available-slots", appointmentHandler.AvailableSlots)
	appointments.GET("/:id", appointmentHandler.Get)
	appointments.PATCH("/:id/status", appointmentHandler.UpdateStatus)
	appointments.DELETE("/:id", appointmentHandler.Delete)

	// --- Report routes (admin and doctors) ---
	reports := e.Group("/v1/reports", authMW, reportersOnly)
	reports.GET("/patient-summary/:id", reportHandler.PatientSummary)
	reports.GET("/analytics", reportHandler.Analytics)

	// --- Admin routes (guarded by the admin-prefix rule) ---
	admin := e.Group("/v1/admin", authMW, middleware.Guard())
	admin.POST("/users", adminHandler.RegisterUser)
	admin.GET("/users", adminHandler.ListUsers)

	// --- Demo session routes (single shared front-desk session) ---
	if sessionStore != nil {
		sessionHandler := handler.NewSessionHandler(sessionStore)
		session := e.Group("/v1/session")
		session.GET("", sessionHandler.Show)
		session.GET("/guard", sessionHandler.CheckPath)
		session.POST("/login", sessionHandler.Login)
		session.POST("/logout", sessionHandler.Logout)
	}

	// --- Subscription routes (patients) ---
	subscriptions := e.Group("/v1/subscriptions", authMW)
	subscriptions.GET("/me", subscriptionHandler.Me)
	subscriptions.POST("/checkout", subscriptionHandler.Checkout)

	// --- Billing webhook (signature-authenticated, no bearer token) ---
	e.POST("/v1/webhooks/billing", webhookHandler.Receive)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
