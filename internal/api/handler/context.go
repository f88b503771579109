package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/restaurante/reservations-api/internal/core/domain"
	"github.com/restaurante/reservations-api/internal/pkg/i18n"
)

// HeaderAcceptLanguage selects the locale of user-facing messages.
const HeaderAcceptLanguage = "Accept-Language"

// principal returns the identity attached by the Authenticate middleware,
// or nil for anonymous requests. Services reject nil where a caller is
// required.
func principal(c echo.Context) *domain.Principal {
	return domain.PrincipalFromContext(c.Request().Context())
}

type messageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

func message(c echo.Context, msgs *i18n.Catalog, key i18n.Key) string {
	return msgs.Message(c.Request().Header.Get(HeaderAcceptLanguage), key)
}
