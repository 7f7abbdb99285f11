package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/feedback-portal/portal-api/docs"
	"github.com/feedback-portal/portal-api/internal/api/handler"
	"github.com/feedback-portal/portal-api/internal/api/middleware"
	"github.com/feedback-portal/portal-api/internal/core/domain"
	"github.com/feedback-portal/portal-api/internal/core/ports"
)

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Auth       ports.AuthService
	Categories ports.CategoryService
	Feedback   ports.FeedbackService
	Tokens     ports.TokenVerifier

	// Checks are the readiness probes, keyed by dependency name.
	Checks map[string]handler.Check
	Logger zerolog.Logger

	// Registerer receives the HTTP request metrics. Nil means the default registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "portal",
		Registerer: d.Registerer,
	}))

	// --- Dependencies ---
	schemas := handler.NewSchemas(d.Auth, d.Categories)
	authHandler := handler.NewAuthHandler(d.Auth)
	categoryHandler := handler.NewCategoryHandler(d.Categories)
	feedbackHandler := handler.NewFeedbackHandler(d.Feedback)

	authenticate := middleware.Authenticate(d.Tokens)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	validate := middleware.Validate

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register, middleware.Pipeline(validate(schemas.Register)))
	auth.POST("/login", authHandler.Login, middleware.Pipeline(validate(schemas.Login)))
	auth.GET("/profile", authHandler.Profile, middleware.Pipeline(authenticate))
	auth.PATCH("/profile", authHandler.UpdateProfile, middleware.Pipeline(authenticate, validate(schemas.Profile)))
	auth.POST("/admin", authHandler.CreateAdmin, middleware.Pipeline(authenticate, adminOnly, validate(schemas.Register)))
	auth.PATCH("/users/:id/role", authHandler.UpdateRole, middleware.Pipeline(authenticate, adminOnly, validate(schemas.Role)))

	// --- Category routes ---
	e.GET("/category", categoryHandler.List)
	e.POST("/category", categoryHandler.Create, middleware.Pipeline(authenticate, adminOnly, validate(schemas.Category)))

	// --- Feedback routes ---
	e.GET("/feedback", feedbackHandler.List)
	e.POST("/feedback", feedbackHandler.Create, middleware.Pipeline(validate(schemas.Feedback)))
	e.DELETE("/feedback/:id", feedbackHandler.Delete, middleware.Pipeline(authenticate, adminOnly))
	e.PATCH("/feedback/:id/reviewed", feedbackHandler.MarkReviewed, middleware.Pipeline(authenticate, adminOnly))

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler(d.Checks)
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one structured line per request. HandleError renders
// errors before the line is written so the logged status is the one sent.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Warn()
			}
			ev.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
