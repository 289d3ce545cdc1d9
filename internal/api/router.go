package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/teampulse/feedback-system/docs"
	"github.com/teampulse/feedback-system/internal/api/handler"
	"github.com/teampulse/feedback-system/internal/api/middleware"
	"github.com/teampulse/feedback-system/internal/core/ports"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Auth        ports.AuthService
	Resolver    ports.IdentityResolver
	Feedback    ports.FeedbackService
	Readiness   []handler.DependencyCheck
	CORSOrigins []string
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.CORSOrigins,
		AllowCredentials: true,
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
		},
	}))

	authHandler := handler.NewAuthHandler(d.Auth)
	feedbackHandler := handler.NewFeedbackHandler(d.Feedback)
	authenticated := middleware.Auth(d.Resolver)

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.GET("/me", authHandler.Me, authenticated)

	// --- Manager routes ---
	// Gates are attached per route so unmatched paths still answer 404.
	managerOnly := []echo.MiddlewareFunc{authenticated, middleware.RequireManager()}
	e.GET("/dashboard", feedbackHandler.Dashboard, managerOnly...)
	e.GET("/feedback/:employee_id", feedbackHandler.EmployeeFeedback, managerOnly...)
	e.POST("/feedback", feedbackHandler.Create, managerOnly...)

	// --- Employee routes ---
	employeeOnly := []echo.MiddlewareFunc{authenticated, middleware.RequireEmployee()}
	e.GET("/employee-dashboard", feedbackHandler.Timeline, employeeOnly...)
	e.POST("/acknowledge/:feedback_id", feedbackHandler.Acknowledge, employeeOnly...)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Readiness...)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
