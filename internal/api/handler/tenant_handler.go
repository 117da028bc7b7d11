package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentdesk/property-system/internal/core/domain"
	"github.com/rentdesk/property-system/internal/core/ports"
)

// TenantHandler handles HTTP requests for tenant profiles.
type TenantHandler struct {
	service ports.TenantService
}

func NewTenantHandler(service ports.TenantService) *TenantHandler {
	return &TenantHandler{service: service}
}

type createTenantRequest struct {
	UserID  int    `json:"user_id" validate:"required,gt=0"`
	Phone   string `json:"phone"   validate:"required"`
	Address string `json:"address"`
}

type updateTenantRequest struct {
	UserID  *int    `json:"user_id" validate:"omitempty,gt=0"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// List handles GET /tenants.
//
// @Summary      List tenants
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Param        skip   query     int  false  "Items to skip"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {array}   domain.Tenant
// @Failure      403    {object}  errorResponse
// @Router       /tenants [get]
func (h *TenantHandler) List(c echo.Context) error {
	skip, limit, err := paging(c)
	if err != nil {
		return err
	}

	tenants, err := h.service.List(c.Request().Context(), skip, limit)
	if err != nil {
		return err
	}
	if tenants == nil {
		tenants = []*domain.Tenant{}
	}
	return c.JSON(http.StatusOK, tenants)
}

// Get handles GET /tenants/:id.
//
// @Summary      Get a tenant
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Tenant ID"
// @Success      200  {object}  domain.Tenant
// @Failure      404  {object}  errorResponse
// @Router       /tenants/{id} [get]
func (h *TenantHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	tenant, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tenant)
}

// Create handles POST /tenants.
//
// @Summary      Create a tenant profile
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTenantRequest  true  "Tenant details"
// @Success      201   {object}  domain.Tenant
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /tenants [post]
func (h *TenantHandler) Create(c echo.Context) error {
	var req createTenantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenant, err := h.service.Create(c.Request().Context(), ports.CreateTenantInput{
		UserID:  req.UserID,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tenant)
}

// Update handles PUT /tenants/:id. Absent fields are left untouched.
//
// @Summary      Update a tenant profile
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Tenant ID"
// @Param        body  body      updateTenantRequest  true  "Fields to change"
// @Success      200   {object}  domain.Tenant
// @Failure      404   {object}  errorResponse
// @Router       /tenants/{id} [put]
func (h *TenantHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateTenantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenant, err := h.service.Update(c.Request().Context(), id, ports.UpdateTenantInput{
		UserID:  req.UserID,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tenant)
}

// Delete handles DELETE /tenants/:id.
//
// @Summary      Delete a tenant profile
// @Tags         tenants
// @Security     BearerAuth
// @Param        id  path  int  true  "Tenant ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /tenants/{id} [delete]
func (h *TenantHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
