package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/bookworks/book-app/docs"
	"github.com/bookworks/book-app/internal/api/handler"
	"github.com/bookworks/book-app/internal/api/middleware"
	"github.com/bookworks/book-app/internal/core/domain"
	"github.com/bookworks/book-app/internal/core/ports"
	"github.com/bookworks/book-app/internal/core/service"
)

// Services groups the application services exposed over HTTP.
type Services struct {
	Auth  ports.AuthService
	Admin ports.AdminService
	Books ports.BookService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svcs Services, tokens *service.TokenIssuer, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// HTTP metrics live in a per-router registry; /metrics exposes them
	// together with the default registry (domain counters, Go runtime).
	httpMetrics := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "bookapp",
		Registerer: httpMetrics,
	}))

	authHandler := handler.NewAuthHandler(svcs.Auth)
	adminHandler := handler.NewAdminHandler(svcs.Admin)
	bookHandler := handler.NewBookHandler(svcs.Books)
	authMiddleware := middleware.Auth(tokens)

	app := e.Group("/api/book-app")

	// --- Public auth routes ---
	app.POST("/author/register", authHandler.RegisterAuthor)
	app.POST("/author/login", authHandler.LoginAuthor)
	app.POST("/reader/register", authHandler.RegisterReader)
	app.POST("/reader/login", authHandler.LoginReader)
	app.POST("/admin/login", authHandler.LoginAdmin)

	// --- Admin operations ---
	admin := app.Group("/admin", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	admin.DELETE("/author/:authorId", adminHandler.DeleteAuthor)
	admin.DELETE("/reader/:readerId", adminHandler.DeleteReader)

	// --- Authenticated catalog routes ---
	authed := app.Group("", authMiddleware)
	authed.GET("/author/:authorId", adminHandler.GetAuthor)
	authed.GET("/author/:authorId/books", bookHandler.ListByAuthor)
	authed.POST("/book", bookHandler.Create, middleware.RBAC(domain.RoleAuthor))
	authed.GET("/book", bookHandler.List)
	authed.GET("/book/:bookId", bookHandler.Get)
	authed.DELETE("/book/:bookId", bookHandler.Delete, middleware.RBAC(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, httpMetrics},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
