package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentdesk/property-system/internal/core/domain"
	"github.com/rentdesk/property-system/internal/core/ports"
)

// ApartmentHandler handles HTTP requests for apartment listings.
type ApartmentHandler struct {
	service ports.ApartmentService
}

func NewApartmentHandler(service ports.ApartmentService) *ApartmentHandler {
	return &ApartmentHandler{service: service}
}

type apartmentRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Address     string  `json:"address"     validate:"required"`
	RentPrice   float64 `json:"rent_price"  validate:"required,gt=0"`
	Description string  `json:"description"`
	Status      string  `json:"status"      validate:"omitempty,oneof=available rented maintenance"`
}

// List handles GET /apartments.
//
// @Summary      List apartments
// @Tags         apartments
// @Produce      json
// @Security     BearerAuth
// @Param        skip   query     int  false  "Items to skip"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {array}   domain.Apartment
// @Failure      403    {object}  errorResponse
// @Router       /apartments [get]
func (h *ApartmentHandler) List(c echo.Context) error {
	skip, limit, err := paging(c)
	if err != nil {
		return err
	}

	apartments, err := h.service.List(c.Request().Context(), skip, limit)
	if err != nil {
		return err
	}
	if apartments == nil {
		apartments = []*domain.Apartment{}
	}
	return c.JSON(http.StatusOK, apartments)
}

// Get handles GET /apartments/:id.
//
// @Summary      Get an apartment
// @Tags         apartments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Apartment ID"
// @Success      200  {object}  domain.Apartment
// @Failure      404  {object}  errorResponse
// @Router       /apartments/{id} [get]
func (h *ApartmentHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	apartment, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apartment)
}

// Create handles POST /apartments. The owner is always the caller;
// only landlords may create listings.
//
// @Summary      Create an apartment
// @Tags         apartments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      apartmentRequest  true  "Apartment details"
// @Success      201   {object}  domain.Apartment
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /apartments [post]
func (h *ApartmentHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req apartmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	apartment, err := h.service.Create(c.Request().Context(), actor, ports.CreateApartmentInput{
		Name:        req.Name,
		Address:     req.Address,
		RentPrice:   req.RentPrice,
		Description: req.Description,
		Status:      domain.ApartmentStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, apartment)
}

// Update handles PUT /apartments/:id. Only the owning landlord or an
// Admin may modify a listing; ownership never changes.
//
// @Summary      Update an apartment
// @Tags         apartments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int               true  "Apartment ID"
// @Param        body  body      apartmentRequest  true  "Apartment details"
// @Success      200   {object}  domain.Apartment
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /apartments/{id} [put]
func (h *ApartmentHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req apartmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	apartment, err := h.service.Update(c.Request().Context(), actor, id, ports.CreateApartmentInput{
		Name:        req.Name,
		Address:     req.Address,
		RentPrice:   req.RentPrice,
		Description: req.Description,
		Status:      domain.ApartmentStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apartment)
}

// Delete handles DELETE /apartments/:id.
//
// @Summary      Delete an apartment
// @Tags         apartments
// @Security     BearerAuth
// @Param        id  path  int  true  "Apartment ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /apartments/{id} [delete]
func (h *ApartmentHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
