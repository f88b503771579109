package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/restaurante/reservations-api/internal/api/metrics"
	"github.com/restaurante/reservations-api/internal/core/domain"
	"github.com/restaurante/reservations-api/internal/core/ports"
)

// Authenticate attaches the caller's principal to the request context.
//
// Requests without a bearer token, or whose token yields no subject, continue
// anonymously; route and policy checks reject them later if needed. A token
// whose subject no longer resolves to a user, or that fails full validation
// against the resolved user, ends the request with ErrUnauthenticated.
func Authenticate(tokens ports.TokenCodec, identities ports.IdentityResolver, m *metrics.Metrics, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				m.GateDecisions.WithLabelValues(metrics.GateAnonymous).Inc()
				return next(c)
			}

			subject, ok := tokens.ExtractSubject(token)
			if !ok {
				m.GateDecisions.WithLabelValues(metrics.GateAnonymous).Inc()
				return next(c)
			}

			ctx := c.Request().Context()
			principal, err := identities.Resolve(ctx, subject)
			if errors.Is(err, domain.ErrUserNotFound) {
				m.GateDecisions.WithLabelValues(metrics.GateRejected).Inc()
				log.Info().Str("subject", subject).Msg("token subject no longer exists")
				return domain.ErrUnauthenticated
			}
			if err != nil {
				m.GateDecisions.WithLabelValues(metrics.GateError).Inc()
				return fmt.Errorf("resolve identity: %w", err)
			}

			if !tokens.Validate(token, principal.Username()) {
				m.GateDecisions.WithLabelValues(metrics.GateRejected).Inc()
				log.Info().Str("subject", subject).Msg("token failed validation")
				return domain.ErrUnauthenticated
			}

			c.SetRequest(c.Request().WithContext(domain.WithPrincipal(ctx, principal)))
			m.GateDecisions.WithLabelValues(metrics.GateAuthenticated).Inc()
			return next(c)
		}
	}
}

// bearerToken returns the credential of a "Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
