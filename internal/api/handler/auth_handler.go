package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/restaurante/reservations-api/internal/api/metrics"
	"github.com/restaurante/reservations-api/internal/core/domain"
	"github.com/restaurante/reservations-api/internal/core/ports"
	"github.com/restaurante/reservations-api/internal/pkg/i18n"
)

type AuthHandler struct {
	authService ports.AuthService
	msgs        *i18n.Catalog
	metrics     *metrics.Metrics
}

func NewAuthHandler(authService ports.AuthService, msgs *i18n.Catalog, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{authService: authService, msgs: msgs, metrics: m}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /usuarios/registro [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrMalformed
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	_, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		CitizenID: req.CitizenID,
		Username:  req.Username,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: message(c, h.msgs, i18n.UserRegistered)})
}

// Login exchanges HTTP Basic credentials for a bearer token.
//
// @Summary      Login
// @Tags         usuarios
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  tokenResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      429  {object}  ErrorResponse
// @Router       /usuarios/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Basic realm="reservations"`)
		return domain.ErrUnauthenticated
	}
	username, password, ok := c.Request().BasicAuth()
	if !ok {
		return domain.ErrMalformed
	}

	token, err := h.authService.Login(c.Request().Context(), username, password)
	h.metrics.LoginAttempts.WithLabelValues(loginResult(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

func loginResult(err error) string {
	switch {
	case err == nil:
		return metrics.LoginSuccess
	case errors.Is(err, domain.ErrInvalidCredentials):
		return metrics.LoginInvalid
	case errors.Is(err, domain.ErrTooManyAttempts):
		return metrics.LoginThrottled
	default:
		return metrics.LoginError
	}
}
