package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rentdesk/property-system/internal/core/domain"
	"github.com/rentdesk/property-system/internal/core/ports"
)

// PaymentHandler handles HTTP requests for rental payments.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type paymentRequest struct {
	RentalID    int       `json:"rental_id"      validate:"required,gt=0"`
	PaymentDate time.Time `json:"payment_date"   validate:"required"`
	Amount      float64   `json:"amount"         validate:"required,gt=0"`
	Method      string    `json:"payment_method" validate:"required,oneof=cash credit_card bank_transfer"`
	Status      string    `json:"status"         validate:"omitempty,oneof=pending completed failed"`
}

// List handles GET /payments.
//
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        skip   query     int  false  "Items to skip"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {array}   domain.Payment
// @Failure      403    {object}  errorResponse
// @Router       /payments [get]
func (h *PaymentHandler) List(c echo.Context) error {
	skip, limit, err := paging(c)
	if err != nil {
		return err
	}

	payments, err := h.service.List(c.Request().Context(), skip, limit)
	if err != nil {
		return err
	}
	if payments == nil {
		payments = []*domain.Payment{}
	}
	return c.JSON(http.StatusOK, payments)
}

// Get handles GET /payments/:id.
//
// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Payment ID"
// @Success      200  {object}  domain.Payment
// @Failure      404  {object}  errorResponse
// @Router       /payments/{id} [get]
func (h *PaymentHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	payment, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

// Create handles POST /payments. The referenced rental must exist.
//
// @Summary      Record a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      paymentRequest  true  "Payment details"
// @Success      201   {object}  domain.Payment
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /payments [post]
func (h *PaymentHandler) Create(c echo.Context) error {
	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payment, err := h.service.Create(c.Request().Context(), ports.PaymentInput{
		RentalID:    req.RentalID,
		PaymentDate: req.PaymentDate,
		Amount:      req.Amount,
		Method:      domain.PaymentMethod(req.Method),
		Status:      domain.PaymentStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, payment)
}

// Update handles PUT /payments/:id.
//
// @Summary      Update a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Payment ID"
// @Param        body  body      paymentRequest  true  "Payment details"
// @Success      200   {object}  domain.Payment
// @Failure      404   {object}  errorResponse
// @Router       /payments/{id} [put]
func (h *PaymentHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payment, err := h.service.Update(c.Request().Context(), id, ports.PaymentInput{
		RentalID:    req.RentalID,
		PaymentDate: req.PaymentDate,
		Amount:      req.Amount,
		Method:      domain.PaymentMethod(req.Method),
		Status:      domain.PaymentStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

// Delete handles DELETE /payments/:id.
//
// @Summary      Delete a payment
// @Tags         payments
// @Security     BearerAuth
// @Param        id  path  int  true  "Payment ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /payments/{id} [delete]
func (h *PaymentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
