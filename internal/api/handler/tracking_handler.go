package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/colisdirect/delivery-system/internal/api/metrics"
	"github.com/colisdirect/delivery-system/internal/core/domain"
	"github.com/colisdirect/delivery-system/internal/core/ports"
)

// TrackingHandler serves the public tracking lookup. No authentication; the
// response is redacted to what a recipient holding the reference may see.
type TrackingHandler struct {
	service ports.ParcelService
}

func NewTrackingHandler(service ports.ParcelService) *TrackingHandler {
	return &TrackingHandler{service: service}
}

// Track handles GET /tracking/:reference.
//
// @Summary      Public tracking lookup by reference
// @Tags         tracking
// @Produce      json
// @Param        reference  path      string  true  "Parcel reference (e.g. CD-7A8B9C2D)"
// @Success      200  {object}  trackingResponse
// @Failure      404  {object}  errorResponse
// @Router       /tracking/{reference} [get]
func (h *TrackingHandler) Track(c echo.Context) error {
	view, err := h.service.Track(c.Request().Context(), c.Param("reference"))
	if err != nil {
		if errors.Is(err, domain.ErrParcelNotFound) {
			metrics.TrackingLookupsTotal.WithLabelValues("not_found").Inc()
		}
		return err
	}

	metrics.TrackingLookupsTotal.WithLabelValues("found").Inc()
	return c.JSON(http.StatusOK, toTrackingResponse(view))
}
