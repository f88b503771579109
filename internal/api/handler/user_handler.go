package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/restaurante/reservations-api/internal/core/domain"
	"github.com/restaurante/reservations-api/internal/core/ports"
	"github.com/restaurante/reservations-api/internal/pkg/i18n"
)

// UserHandler handles HTTP requests for account management.
type UserHandler struct {
	service ports.UserService
	msgs    *i18n.Catalog
}

func NewUserHandler(service ports.UserService, msgs *i18n.Catalog) *UserHandler {
	return &UserHandler{service: service, msgs: msgs}
}

// List handles GET /usuarios.
//
// @Summary      List users
// @Tags         usuarios
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /usuarios [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context(), principal(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /usuarios/:cedula.
//
// @Summary      Get a user by cedula
// @Tags         usuarios
// @Produce      json
// @Security     BearerAuth
// @Param        cedula  path      string  true  "Citizen id"
// @Success      200     {object}  domain.User
// @Failure      403     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /usuarios/{cedula} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), principal(c), c.Param("cedula"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /usuarios/:cedula.
//
// @Summary      Update a user
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        cedula  path      string             true  "Citizen id"
// @Param        body    body      updateUserRequest  true  "New account data"
// @Success      200     {object}  messageResponse
// @Failure      403     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Failure      409     {object}  ErrorResponse
// @Router       /usuarios/{cedula} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrMalformed
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	err := h.service.Update(c.Request().Context(), principal(c), c.Param("cedula"), ports.UpdateUserInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: message(c, h.msgs, i18n.UserUpdated)})
}

// Delete handles DELETE /usuarios/:cedula. The user's reservations are
// removed with the account.
//
// @Summary      Delete a user
// @Tags         usuarios
// @Produce      json
// @Security     BearerAuth
// @Param        cedula  path      string  true  "Citizen id"
// @Success      200     {object}  messageResponse
// @Failure      403     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /usuarios/{cedula} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), principal(c), c.Param("cedula")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: message(c, h.msgs, i18n.UserDeleted)})
}
