package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/akumarujon/imf-gadget-api/internal/errors"
	"github.com/akumarujon/imf-gadget-api/internal/response"
	"github.com/akumarujon/imf-gadget-api/internal/service"
)

// GadgetHandler handles gadget endpoints.
type GadgetHandler struct {
	gadgetService service.GadgetService
}

// NewGadgetHandler creates a new gadget handler.
func NewGadgetHandler(gadgetService service.GadgetService) *GadgetHandler {
	return &GadgetHandler{gadgetService: gadgetService}
}

// CreateGadgetRequest represents a gadget creation request.
type CreateGadgetRequest struct {
	Name   string `json:"name" validate:"required,max=255"`
	Status string `json:"status" validate:"required"`
}

// UpdateGadgetRequest represents an administrative gadget update. Either
// field may be omitted; at least one must be present.
type UpdateGadgetRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Status *string `json:"status,omitempty"`
}

// List godoc
// @Summary List gadgets, optionally filtered by status
// @Tags gadgets
// @Produce json
// @Security BearerAuth
// @Param status query string false "Lifecycle status filter (case-insensitive)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /gadgets [get]
func (h *GadgetHandler) List(c echo.Context) error {
	status := c.QueryParam("status")

	var (
		gadgets []service.GadgetView
		err     error
	)
	if status != "" {
		gadgets, err = h.gadgetService.ListByStatus(c.Request().Context(), status)
	} else {
		gadgets, err = h.gadgetService.List(c.Request().Context())
	}
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return response.Fail(c, httpErr.StatusCode, httpErr.Message)
	}

	return response.OK(c, http.StatusOK, "gadgets retrieved", gadgets)
}

// Get godoc
// @Summary Get a gadget by id
// @Tags gadgets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Gadget ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /gadgets/{id} [get]
func (h *GadgetHandler) Get(c echo.Context) error {
	gadget, err := h.gadgetService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return response.Fail(c, httpErr.StatusCode, httpErr.Message)
	}

	return response.OK(c, http.StatusOK, "gadget retrieved", gadget)
}

// Create godoc
// @Summary Add a gadget to the armory
// @Tags gadgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGadgetRequest true "Gadget data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /gadgets [post]
func (h *GadgetHandler) Create(c echo.Context) error {
	var req CreateGadgetRequest
	if err := c.Bind(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, err.Error())
	}

	gadget, err := h.gadgetService.Create(c.Request().Context(), req.Name, req.Status)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return response.Fail(c, httpErr.StatusCode, httpErr.Message)
	}

	return response.OK(c, http.StatusCreated, "gadget created", gadget)
}

// Update godoc
// @Summary Administrative update of name and/or status
// @Tags gadgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Gadget ID"
// @Param request body UpdateGadgetRequest true "Fields to update"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /gadgets/{id} [patch]
func (h *GadgetHandler) Update(c echo.Context) error {
	var req UpdateGadgetRequest
	if err := c.Bind(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, err.Error())
	}
	if req.Name == nil && req.Status == nil {
		return response.Fail(c, http.StatusBadRequest, "nothing to update")
	}

	gadget, err := h.gadgetService.Update(c.Request().Context(), c.Param("id"), req.Name, req.Status)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return response.Fail(c, httpErr.StatusCode, httpErr.Message)
	}

	return response.OK(c, http.StatusOK, "gadget updated", gadget)
}

// Decommission godoc
// @Summary Decommission a gadget (soft delete)
// @Tags gadgets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Gadget ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /gadgets/{id} [delete]
func (h *GadgetHandler) Decommission(c echo.Context) error {
	gadget, err := h.gadgetService.Decommission(c.Request().Context(), c.Param("id"))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return response.Fail(c, httpErr.StatusCode, httpErr.Message)
	}

	return response.OK(c, http.StatusOK, "gadget decommissioned", gadget)
}

// SelfDestruct godoc
// @Summary Trigger a gadget's self-destruct sequence
// @Tags gadgets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Gadget ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /gadgets/{id}/self-destruct [post]
func (h *GadgetHandler) SelfDestruct(c echo.Context) error {
	result, err := h.gadgetService.Destroy(c.Request().Context(), c.Param("id"))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return response.Fail(c, httpErr.StatusCode, httpErr.Message)
	}

	return response.OK(c, http.StatusOK, "self-destruct sequence complete", result)
}
