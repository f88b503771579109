package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/restaurante/reservations-api/internal/api/metrics"
	"github.com/restaurante/reservations-api/internal/core/domain"
	"github.com/restaurante/reservations-api/internal/core/ports"
	"github.com/restaurante/reservations-api/internal/pkg/i18n"
)

// ReservationHandler handles HTTP requests for reservation operations.
type ReservationHandler struct {
	service ports.ReservationService
	msgs    *i18n.Catalog
	metrics *metrics.Metrics
}

func NewReservationHandler(service ports.ReservationService, msgs *i18n.Catalog, m *metrics.Metrics) *ReservationHandler {
	return &ReservationHandler{service: service, msgs: msgs, metrics: m}
}

// List handles GET /reservas.
//
// @Summary      List all reservations
// @Tags         reservas
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Reservation
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /reservas [get]
func (h *ReservationHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context(), principal(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Mine handles GET /reservas/mias.
//
// @Summary      List the caller's reservations
// @Tags         reservas
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Reservation
// @Failure      401  {object}  ErrorResponse
// @Router       /reservas/mias [get]
func (h *ReservationHandler) Mine(c echo.Context) error {
	items, err := h.service.ListMine(c.Request().Context(), principal(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /reservas/:id.
//
// @Summary      Get a reservation
// @Tags         reservas
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Reservation id"
// @Success      200  {object}  domain.Reservation
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /reservas/{id} [get]
func (h *ReservationHandler) Get(c echo.Context) error {
	r, err := h.service.Get(c.Request().Context(), principal(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// Create handles POST /reservas. The owner is always the caller.
//
// @Summary      Create a reservation
// @Tags         reservas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      reservationRequest  true  "Reservation"
// @Success      201   {object}  messageResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /reservas [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	in, err := bindReservation(c)
	if err != nil {
		return err
	}

	r, err := h.service.Create(c.Request().Context(), principal(c), in)
	if err != nil {
		return err
	}

	h.metrics.ReservationsCreated.Inc()
	return c.JSON(http.StatusCreated, messageResponse{
		Message: message(c, h.msgs, i18n.ReservationCreated),
		ID:      r.ID,
	})
}

// Update handles PUT /reservas/:id.
//
// @Summary      Update a reservation
// @Tags         reservas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Reservation id"
// @Param        body  body      reservationRequest  true  "Reservation"
// @Success      200   {object}  messageResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /reservas/{id} [put]
func (h *ReservationHandler) Update(c echo.Context) error {
	in, err := bindReservation(c)
	if err != nil {
		return err
	}

	if err := h.service.Update(c.Request().Context(), principal(c), c.Param("id"), in); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: message(c, h.msgs, i18n.ReservationUpdated)})
}

// Delete handles DELETE /reservas/:id.
//
// @Summary      Delete a reservation
// @Tags         reservas
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Reservation id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /reservas/{id} [delete]
func (h *ReservationHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), principal(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: message(c, h.msgs, i18n.ReservationDeleted)})
}

func bindReservation(c echo.Context) (ports.ReservationInput, error) {
	var req reservationRequest
	if err := c.Bind(&req); err != nil {
		return ports.ReservationInput{}, domain.ErrMalformed
	}
	if err := c.Validate(&req); err != nil {
		return ports.ReservationInput{}, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return ports.ReservationInput{
		CitizenID:    req.CitizenID,
		CustomerName: req.CustomerName,
		Date:         req.Date,
		PartySize:    req.PartySize,
	}, nil
}
