package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rentdesk/property-system/internal/core/domain"
	"github.com/rentdesk/property-system/internal/core/ports"
)

// MaintenanceHandler handles HTTP requests for maintenance requests.
type MaintenanceHandler struct {
	service ports.MaintenanceService
}

func NewMaintenanceHandler(service ports.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{service: service}
}

type maintenanceRequest struct {
	ApartmentID int       `json:"apartment_id" validate:"required,gt=0"`
	TenantID    int       `json:"tenant_id"    validate:"required,gt=0"`
	Description string    `json:"description"  validate:"required"`
	RequestDate time.Time `json:"request_date"`
	Status      string    `json:"status"       validate:"omitempty,oneof=pending in_progress completed"`
}

// List handles GET /maintenance.
//
// @Summary      List maintenance requests
// @Tags         maintenance
// @Produce      json
// @Security     BearerAuth
// @Param        skip   query     int  false  "Items to skip"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {array}   domain.MaintenanceRequest
// @Failure      403    {object}  errorResponse
// @Router       /maintenance [get]
func (h *MaintenanceHandler) List(c echo.Context) error {
	skip, limit, err := paging(c)
	if err != nil {
		return err
	}

	requests, err := h.service.List(c.Request().Context(), skip, limit)
	if err != nil {
		return err
	}
	if requests == nil {
		requests = []*domain.MaintenanceRequest{}
	}
	return c.JSON(http.StatusOK, requests)
}

// Get handles GET /maintenance/:id.
//
// @Summary      Get a maintenance request
// @Tags         maintenance
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Request ID"
// @Success      200  {object}  domain.MaintenanceRequest
// @Failure      404  {object}  errorResponse
// @Router       /maintenance/{id} [get]
func (h *MaintenanceHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	request, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, request)
}

// Create handles POST /maintenance. Creation emits an audit event that is
// processed off the request path.
//
// @Summary      File a maintenance request
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      maintenanceRequest  true  "Request details"
// @Success      201   {object}  domain.MaintenanceRequest
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /maintenance [post]
func (h *MaintenanceHandler) Create(c echo.Context) error {
	var req maintenanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	request, err := h.service.Create(c.Request().Context(), ports.MaintenanceInput{
		ApartmentID: req.ApartmentID,
		TenantID:    req.TenantID,
		Description: req.Description,
		RequestDate: req.RequestDate,
		Status:      domain.MaintenanceStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, request)
}

// Update handles PUT /maintenance/:id. A status change emits an audit event.
//
// @Summary      Update a maintenance request
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true  "Request ID"
// @Param        body  body      maintenanceRequest  true  "Request details"
// @Success      200   {object}  domain.MaintenanceRequest
// @Failure      404   {object}  errorResponse
// @Router       /maintenance/{id} [put]
func (h *MaintenanceHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req maintenanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	request, err := h.service.Update(c.Request().Context(), id, ports.MaintenanceInput{
		ApartmentID: req.ApartmentID,
		TenantID:    req.TenantID,
		Description: req.Description,
		RequestDate: req.RequestDate,
		Status:      domain.MaintenanceStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, request)
}

// Delete handles DELETE /maintenance/:id.
//
// @Summary      Delete a maintenance request
// @Tags         maintenance
// @Security     BearerAuth
// @Param        id  path  int  true  "Request ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /maintenance/{id} [delete]
func (h *MaintenanceHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
