package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rentdesk/property-system/internal/core/domain"
	"github.com/rentdesk/property-system/internal/core/ports"
)

// RentalHandler handles HTTP requests for rental agreements.
type RentalHandler struct {
	service ports.RentalService
}

func NewRentalHandler(service ports.RentalService) *RentalHandler {
	return &RentalHandler{service: service}
}

type createRentalRequest struct {
	ApartmentID int       `json:"apartment_id" validate:"required,gt=0"`
	TenantID    int       `json:"tenant_id"    validate:"required,gt=0"`
	StartDate   time.Time `json:"start_date"   validate:"required"`
	EndDate     time.Time `json:"end_date"     validate:"required,gtfield=StartDate"`
	Status      string    `json:"status"       validate:"omitempty,oneof=active ended cancelled"`
	TotalAmount float64   `json:"total_amount" validate:"required,gt=0"`
}

type updateRentalRequest struct {
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Status      *string    `json:"status"       validate:"omitempty,oneof=active ended cancelled"`
	TotalAmount *float64   `json:"total_amount" validate:"omitempty,gt=0"`
}

// List handles GET /rentals.
//
// @Summary      List rentals
// @Tags         rentals
// @Produce      json
// @Security     BearerAuth
// @Param        skip   query     int  false  "Items to skip"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {array}   domain.Rental
// @Failure      403    {object}  errorResponse
// @Router       /rentals [get]
func (h *RentalHandler) List(c echo.Context) error {
	skip, limit, err := paging(c)
	if err != nil {
		return err
	}

	rentals, err := h.service.List(c.Request().Context(), skip, limit)
	if err != nil {
		return err
	}
	if rentals == nil {
		rentals = []*domain.Rental{}
	}
	return c.JSON(http.StatusOK, rentals)
}

// Get handles GET /rentals/:id.
//
// @Summary      Get a rental
// @Tags         rentals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Rental ID"
// @Success      200  {object}  domain.Rental
// @Failure      404  {object}  errorResponse
// @Router       /rentals/{id} [get]
func (h *RentalHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	rental, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rental)
}

// Create handles POST /rentals. Both the apartment and the tenant must
// exist.
//
// @Summary      Create a rental
// @Tags         rentals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRentalRequest  true  "Rental details"
// @Success      201   {object}  domain.Rental
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /rentals [post]
func (h *RentalHandler) Create(c echo.Context) error {
	var req createRentalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rental, err := h.service.Create(c.Request().Context(), ports.CreateRentalInput{
		ApartmentID: req.ApartmentID,
		TenantID:    req.TenantID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      domain.RentalStatus(req.Status),
		TotalAmount: req.TotalAmount,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rental)
}

// Update handles PUT /rentals/:id. Absent fields are left untouched.
//
// @Summary      Update a rental
// @Tags         rentals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Rental ID"
// @Param        body  body      updateRentalRequest  true  "Fields to change"
// @Success      200   {object}  domain.Rental
// @Failure      404   {object}  errorResponse
// @Router       /rentals/{id} [put]
func (h *RentalHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateRentalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var status *domain.RentalStatus
	if req.Status != nil {
		s := domain.RentalStatus(*req.Status)
		status = &s
	}

	rental, err := h.service.Update(c.Request().Context(), id, ports.UpdateRentalInput{
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      status,
		TotalAmount: req.TotalAmount,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rental)
}

// Delete handles DELETE /rentals/:id.
//
// @Summary      Delete a rental
// @Tags         rentals
// @Security     BearerAuth
// @Param        id  path  int  true  "Rental ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /rentals/{id} [delete]
func (h *RentalHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
