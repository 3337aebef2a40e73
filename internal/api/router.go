package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/optigov/ndpr-portal/internal/api/handler"
	"github.com/optigov/ndpr-portal/internal/api/middleware"
	"github.com/optigov/ndpr-portal/internal/core/domain"
	"github.com/optigov/ndpr-portal/internal/core/ports"
	"github.com/optigov/ndpr-portal/internal/core/service"
	mongostore "github.com/optigov/ndpr-portal/internal/infrastructure/db/mongo"
	redisstore "github.com/optigov/ndpr-portal/internal/infrastructure/db/redis"
	"github.com/optigov/ndpr-portal/internal/infrastructure/http/handlers"
	"github.com/optigov/ndpr-portal/internal/infrastructure/registration"
)

// Options carries the settings the router needs beyond its storage handles.
type Options struct {
	JWTSecret       string
	SessionTTL      time.Duration
	RegistrationURL string
	AuditTrail      ports.AuditTrail
	Log             zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Dependencies ---
	directory := mongostore.NewUserDirectory(db)
	sessionStore := redisstore.NewSessionStore(rdb, opts.SessionTTL)
	sessions := service.NewSessionService(sessionStore, opts.JWTSecret, opts.SessionTTL)
	registrar := registration.NewClient(opts.RegistrationURL, nil)
	authService := service.NewAuthService(directory, registrar, sessions, opts.AuditTrail, opts.Log)

	authHandler := handler.NewAuthHandler(authService, opts.SessionTTL)
	dashboards := handler.NewDashboardHandler(directory)
	portal := handler.NewPortalHandler()

	e.Use(middleware.Session(sessions))

	// --- Public surface ---
	e.GET("/", portal.Landing)
	e.GET("/login", portal.LoginEntry)
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/session", authHandler.Session)

	// --- Role-guarded dashboards ---
	e.GET("/citizen-dashboard", dashboards.Citizen, middleware.Guard(domain.RoleCitizen))
	e.GET("/company-dashboard", dashboards.Company, middleware.Guard(domain.RoleCompany))
	e.GET("/admin-dashboard", dashboards.Admin, middleware.Guard(domain.RoleAdmin))
	e.GET("/company/:id", dashboards.CompanyDetail, middleware.Guard(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational surface ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
