package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/restaurante/reservations-api/internal/api/handler"
	"github.com/restaurante/reservations-api/internal/api/metrics"
	"github.com/restaurante/reservations-api/internal/api/middleware"
	"github.com/restaurante/reservations-api/internal/core/domain"
	"github.com/restaurante/reservations-api/internal/core/policy"
	"github.com/restaurante/reservations-api/internal/core/ports"
	"github.com/restaurante/reservations-api/internal/pkg/i18n"
)

// Dependencies carries everything the HTTP surface needs.
type Dependencies struct {
	Auth         ports.AuthService
	Users        ports.UserService
	Reservations ports.ReservationService
	Tokens       ports.TokenCodec
	Identities   ports.IdentityResolver

	Messages     *i18n.Catalog
	HealthChecks map[string]handler.Check

	// Registerer receives the custom and HTTP metrics; nil disables both
	// registration and the /metrics endpoint.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	m := metrics.New(d.Registerer)
	msgs := d.Messages
	if msgs == nil {
		msgs = i18n.New("en")
	}

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(msgs, m, d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	if d.Registerer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "reservations",
			Registerer: d.Registerer,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: d.Gatherer,
		}))
	}
	// Errors are rendered here, before the metrics middleware reads the status.
	e.Use(requestLogger(d.Logger))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth, msgs, m)
	userHandler := handler.NewUserHandler(d.Users, msgs)
	reservationHandler := handler.NewReservationHandler(d.Reservations, msgs, m)
	authenticate := middleware.Authenticate(d.Tokens, d.Identities, m, d.Logger)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)
	members := middleware.Require(policy.Members)

	// --- Users ---
	users := e.Group("/usuarios", authenticate)
	users.POST("/registro", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.GET("", userHandler.List, adminOnly)
	users.GET("/:cedula", userHandler.Get, middleware.Require(policy.AnyAuthenticated))
	users.PUT("/:cedula", userHandler.Update, adminOnly)
	users.DELETE("/:cedula", userHandler.Delete, adminOnly)

	// --- Reservations (ownership is checked by the service) ---
	reservations := e.Group("/reservas", authenticate, middleware.Require(policy.AnyAuthenticated))
	reservations.GET("", reservationHandler.List, adminOnly)
	reservations.GET("/mias", reservationHandler.Mine, members)
	reservations.POST("", reservationHandler.Create, members)
	reservations.GET("/:id", reservationHandler.Get)
	reservations.PUT("/:id", reservationHandler.Update)
	reservations.DELETE("/:id", reservationHandler.Delete)

	// --- Health probes and docs (no auth required) ---
	health := handler.NewHealthHandler(d.HealthChecks)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			if p := domain.PrincipalFromContext(c.Request().Context()); p != nil {
				evt = evt.Str("username", p.Username())
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
