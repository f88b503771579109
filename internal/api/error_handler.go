package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/restaurante/reservations-api/internal/api/handler"
	"github.com/restaurante/reservations-api/internal/api/metrics"
	"github.com/restaurante/reservations-api/internal/core/domain"
	"github.com/restaurante/reservations-api/internal/core/policy"
	"github.com/restaurante/reservations-api/internal/pkg/i18n"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Localizes the message from the request's Accept-Language.
//   - Counts authorization denials.
//   - Logs unexpected errors without leaking details to the client.
func NewHTTPErrorHandler(msgs *i18n.Catalog, m *metrics.Metrics, log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if d := policy.Classify(err); d != policy.Proceed {
			m.AuthzDenials.WithLabelValues(d.String()).Inc()
		}

		code, key, details := resolveError(err)
		if code == http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}
		if code == http.StatusUnauthorized && errors.Is(err, domain.ErrUnauthenticated) &&
			c.Response().Header().Get(echo.HeaderWWWAuthenticate) == "" {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		}

		resp := handler.ErrorResponse{Details: details}
		if key != "" {
			resp.Error = msgs.Message(c.Request().Header.Get(handler.HeaderAcceptLanguage), key)
		} else {
			resp.Error = details
			resp.Details = ""
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

// resolveError returns the status, the catalog key (empty for messages that
// are passed through verbatim) and optional details.
func resolveError(err error) (int, i18n.Key, string) {
	// Echo's own errors (validation, unknown routes, bad methods, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := fmt.Sprintf("%v", he.Message)
		if he.Code == http.StatusUnprocessableEntity {
			return he.Code, i18n.ValidationFailed, msg
		}
		return he.Code, "", msg
	}

	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, i18n.Unauthenticated, ""
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, i18n.InvalidCredentials, ""
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, i18n.AccessDenied, ""
	case errors.Is(err, domain.ErrReservationNotFound):
		return http.StatusNotFound, i18n.ReservationNotFound, ""
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, i18n.UserNotFound, ""
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, i18n.UserExists, ""
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, i18n.Conflict, ""
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, i18n.InvalidRole, ""
	case errors.Is(err, domain.ErrMalformed):
		details := ""
		if err != domain.ErrMalformed {
			details = err.Error()
		}
		return http.StatusBadRequest, i18n.MalformedRequest, details
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, i18n.TooManyAttempts, ""
	}

	return http.StatusInternalServerError, i18n.InternalError, ""
}
