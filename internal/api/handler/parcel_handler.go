package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/colisdirect/delivery-system/internal/api/metrics"
	"github.com/colisdirect/delivery-system/internal/core/domain"
	"github.com/colisdirect/delivery-system/internal/core/ports"
)

// ParcelHandler handles HTTP requests for parcel operations.
type ParcelHandler struct {
	service ports.ParcelService
}

func NewParcelHandler(service ports.ParcelService) *ParcelHandler {
	return &ParcelHandler{service: service}
}

// Create handles POST /v1/parcels.
//
// @Summary      Register a new parcel
// @Tags         parcels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createParcelRequest  true  "Parcel details"
// @Success      201   {object}  parcelResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/parcels [post]
func (h *ParcelHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createParcelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	parcel, err := h.service.Create(c.Request().Context(), toCreateInput(req), actor)
	if err != nil {
		return err
	}

	metrics.ParcelsCreatedTotal.WithLabelValues(string(parcel.Priority)).Inc()
	return c.JSON(http.StatusCreated, toParcelResponse(parcel, actor))
}

// Get handles GET /v1/parcels/:id.
//
// @Summary      Get a parcel by id
// @Tags         parcels
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Parcel id"
// @Success      200  {object}  parcelResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/parcels/{id} [get]
func (h *ParcelHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	parcel, err := h.service.Get(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toParcelResponse(parcel, actor))
}

// List handles GET /v1/parcels.
//
// @Summary      List parcels visible to the caller
// @Tags         parcels
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Filter by status"
// @Param        priority  query     string  false  "Filter by priority"
// @Param        search    query     string  false  "Search in reference, description, destination"
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Page size (default 20, max 100)"
// @Success      200  {object}  listParcelsResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/parcels [get]
func (h *ParcelHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListParcelsInput{
		Status:   c.QueryParam("status"),
		Priority: c.QueryParam("priority"),
		Search:   c.QueryParam("search"),
		Page:     page,
		Limit:    limit,
	}, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result, actor))
}

// Update handles PUT /v1/parcels/:id. Manager only.
//
// @Summary      Update parcel details
// @Tags         parcels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Parcel id"
// @Param        body  body      updateParcelRequest  true  "New parcel details"
// @Success      200   {object}  parcelResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/parcels/{id} [put]
func (h *ParcelHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateParcelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	parcel, err := h.service.Update(c.Request().Context(), c.Param("id"), toUpdateInput(req), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toParcelResponse(parcel, actor))
}

// Delete handles DELETE /v1/parcels/:id. Manager only.
//
// @Summary      Delete a parcel
// @Tags         parcels
// @Security     BearerAuth
// @Param        id  path  string  true  "Parcel id"
// @Success      204  "deleted"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/parcels/{id} [delete]
func (h *ParcelHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), actor); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateStatus handles PATCH /v1/parcels/:id/status, the authoritative status
// transition. The response body is the committed parcel; clients replace their
// cached copy with it rather than assuming the transition they asked for.
//
// @Summary      Update parcel status
// @Tags         parcels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Parcel id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  parcelResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/parcels/{id}/status [patch]
func (h *ParcelHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	parcel, err := h.service.UpdateStatus(c.Request().Context(), ports.UpdateStatusInput{
		ParcelID:  c.Param("id"),
		NewStatus: req.Status,
		Comment:   req.Comment,
	}, actor)
	if err != nil {
		countDeniedTransition(err)
		return err
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(parcel.Status)).Inc()
	return c.JSON(http.StatusOK, toParcelResponse(parcel, actor))
}

func countDeniedTransition(err error) {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		metrics.TransitionsDeniedTotal.WithLabelValues("forbidden").Inc()
	case errors.Is(err, domain.ErrInvalidTransition):
		metrics.TransitionsDeniedTotal.WithLabelValues("invalid_transition").Inc()
	case errors.Is(err, domain.ErrParcelNotFound):
		metrics.TransitionsDeniedTotal.WithLabelValues("not_found").Inc()
	}
}

// History handles GET /v1/parcels/:id/history.
//
// @Summary      Get the status change log of a parcel
// @Tags         parcels
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Parcel id"
// @Success      200  {array}   statusChangeResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/parcels/{id}/history [get]
func (h *ParcelHandler) History(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	changes, err := h.service.History(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHistoryResponse(changes))
}

// Statistics handles GET /v1/parcels/stats.
//
// @Summary      Parcel counts per status for the caller's scope
// @Tags         parcels
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.StatusCounts
// @Failure      401  {object}  errorResponse
// @Router       /v1/parcels/stats [get]
func (h *ParcelHandler) Statistics(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	counts, err := h.service.Statistics(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, counts)
}

// Overdue handles GET /v1/parcels/overdue.
//
// @Summary      Parcels past their due date and not yet delivered
// @Tags         parcels
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   parcelResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/parcels/overdue [get]
func (h *ParcelHandler) Overdue(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	parcels, err := h.service.Overdue(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	out := make([]parcelResponse, len(parcels))
	for i, p := range parcels {
		out[i] = toParcelResponse(p, actor)
	}
	return c.JSON(http.StatusOK, out)
}
