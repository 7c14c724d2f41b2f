package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/colisdirect/delivery-system/internal/core/domain"
	"github.com/colisdirect/delivery-system/internal/core/service"
)

// DirectoryHandler exposes CRUD endpoints for the console's reference data.
// Reads are open to any authenticated role; writes are limited to managers by
// the RBAC middleware on the route group.
type DirectoryHandler struct {
	service *service.DirectoryService
}

func NewDirectoryHandler(service *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

// --- Couriers ---

type courierRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Phone     string `json:"phone,omitempty"`
	Vehicle   string `json:"vehicle"    validate:"required,oneof=bike scooter car van"`
	ZoneID    string `json:"zone_id,omitempty"`
	Active    bool   `json:"active"`
}

// CreateCourier handles POST /v1/couriers.
//
// @Summary      Create a courier
// @Tags         directory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      courierRequest  true  "Courier details"
// @Success      201   {object}  domain.Courier
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/couriers [post]
func (h *DirectoryHandler) CreateCourier(c echo.Context) error {
	var req courierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	courier, err := h.service.CreateCourier(c.Request().Context(), &domain.Courier{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Vehicle:   req.Vehicle,
		ZoneID:    req.ZoneID,
		Active:    req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, courier)
}

// GetCourier handles GET /v1/couriers/:id.
//
// @Summary      Get a courier
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Courier id"
// @Success      200  {object}  domain.Courier
// @Failure      404  {object}  errorResponse
// @Router       /v1/couriers/{id} [get]
func (h *DirectoryHandler) GetCourier(c echo.Context) error {
	courier, err := h.service.GetCourier(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courier)
}

// ListCouriers handles GET /v1/couriers.
//
// @Summary      List couriers
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Courier
// @Router       /v1/couriers [get]
func (h *DirectoryHandler) ListCouriers(c echo.Context) error {
	couriers, err := h.service.ListCouriers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, couriers)
}

// UpdateCourier handles PUT /v1/couriers/:id.
//
// @Summary      Update a courier
// @Tags         directory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Courier id"
// @Param        body  body      courierRequest  true  "Courier details"
// @Success      200   {object}  domain.Courier
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/couriers/{id} [put]
func (h *DirectoryHandler) UpdateCourier(c echo.Context) error {
	var req courierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	courier, err := h.service.UpdateCourier(c.Request().Context(), &domain.Courier{
		ID:        c.Param("id"),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Vehicle:   req.Vehicle,
		ZoneID:    req.ZoneID,
		Active:    req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courier)
}

// DeleteCourier handles DELETE /v1/couriers/:id.
//
// @Summary      Delete a courier
// @Tags         directory
// @Security     BearerAuth
// @Param        id  path  string  true  "Courier id"
// @Success      204  "deleted"
// @Failure      404  {object}  errorResponse
// @Router       /v1/couriers/{id} [delete]
func (h *DirectoryHandler) DeleteCourier(c echo.Context) error {
	if err := h.service.DeleteCourier(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Zones ---

type zoneRequest struct {
	Name       string `json:"name"        validate:"required"`
	City       string `json:"city"        validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
}

// CreateZone handles POST /v1/zones.
//
// @Summary      Create a delivery zone
// @Tags         directory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      zoneRequest  true  "Zone details"
// @Success      201   {object}  domain.Zone
// @Failure      400   {object}  errorResponse
// @Router       /v1/zones [post]
func (h *DirectoryHandler) CreateZone(c echo.Context) error {
	var req zoneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	zone, err := h.service.CreateZone(c.Request().Context(), &domain.Zone{
		Name:       req.Name,
		City:       req.City,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, zone)
}

// GetZone handles GET /v1/zones/:id.
//
// @Summary      Get a zone
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Zone id"
// @Success      200  {object}  domain.Zone
// @Failure      404  {object}  errorResponse
// @Router       /v1/zones/{id} [get]
func (h *DirectoryHandler) GetZone(c echo.Context) error {
	zone, err := h.service.GetZone(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, zone)
}

// ListZones handles GET /v1/zones.
//
// @Summary      List zones
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Zone
// @Router       /v1/zones [get]
func (h *DirectoryHandler) ListZones(c echo.Context) error {
	zones, err := h.service.ListZones(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, zones)
}

// UpdateZone handles PUT /v1/zones/:id.
//
// @Summary      Update a zone
// @Tags         directory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Zone id"
// @Param        body  body      zoneRequest  true  "Zone details"
// @Success      200   {object}  domain.Zone
// @Failure      404   {object}  errorResponse
// @Router       /v1/zones/{id} [put]
func (h *DirectoryHandler) UpdateZone(c echo.Context) error {
	var req zoneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	zone, err := h.service.UpdateZone(c.Request().Context(), &domain.Zone{
		ID:         c.Param("id"),
		Name:       req.Name,
		City:       req.City,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, zone)
}

// DeleteZone handles DELETE /v1/zones/:id.
//
// @Summary      Delete a zone
// @Tags         directory
// @Security     BearerAuth
// @Param        id  path  string  true  "Zone id"
// @Success      204  "deleted"
// @Failure      404  {object}  errorResponse
// @Router       /v1/zones/{id} [delete]
func (h *DirectoryHandler) DeleteZone(c echo.Context) error {
	if err := h.service.DeleteZone(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Recipients ---

type recipientRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	Phone     string `json:"phone"      validate:"required"`
	Address   string `json:"address"    validate:"required"`
}

// CreateRecipient handles POST /v1/recipients.
//
// @Summary      Create a recipient
// @Tags         directory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recipientRequest  true  "Recipient details"
// @Success      201   {object}  domain.Recipient
// @Failure      400   {object}  errorResponse
// @Router       /v1/recipients [post]
func (h *DirectoryHandler) CreateRecipient(c echo.Context) error {
	var req recipientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rec, err := h.service.CreateRecipient(c.Request().Context(), &domain.Recipient{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rec)
}

// GetRecipient handles GET /v1/recipients/:id.
//
// @Summary      Get a recipient
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Recipient id"
// @Success      200  {object}  domain.Recipient
// @Failure      404  {object}  errorResponse
// @Router       /v1/recipients/{id} [get]
func (h *DirectoryHandler) GetRecipient(c echo.Context) error {
	rec, err := h.service.GetRecipient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// ListRecipients handles GET /v1/recipients.
//
// @Summary      List recipients
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Recipient
// @Router       /v1/recipients [get]
func (h *DirectoryHandler) ListRecipients(c echo.Context) error {
	recs, err := h.service.ListRecipients(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recs)
}

// UpdateRecipient handles PUT /v1/recipients/:id.
//
// @Summary      Update a recipient
// @Tags         directory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Recipient id"
// @Param        body  body      recipientRequest  true  "Recipient details"
// @Success      200   {object}  domain.Recipient
// @Failure      404   {object}  errorResponse
// @Router       /v1/recipients/{id} [put]
func (h *DirectoryHandler) UpdateRecipient(c echo.Context) error {
	var req recipientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rec, err := h.service.UpdateRecipient(c.Request().Context(), &domain.Recipient{
		ID:        c.Param("id"),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// DeleteRecipient handles DELETE /v1/recipients/:id.
//
// @Summary      Delete a recipient
// @Tags         directory
// @Security     BearerAuth
// @Param        id  path  string  true  "Recipient id"
// @Success      204  "deleted"
// @Failure      404  {object}  errorResponse
// @Router       /v1/recipients/{id} [delete]
func (h *DirectoryHandler) DeleteRecipient(c echo.Context) error {
	if err := h.service.DeleteRecipient(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Client accounts ---

type clientRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address"    validate:"required"`
}

// CreateClient handles POST /v1/clients.
//
// @Summary      Create a client account
// @Tags         directory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      clientRequest  true  "Client details"
// @Success      201   {object}  domain.ClientAccount
// @Failure      400   {object}  errorResponse
// @Router       /v1/clients [post]
func (h *DirectoryHandler) CreateClient(c echo.Context) error {
	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := h.service.CreateClient(c.Request().Context(), &domain.ClientAccount{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, client)
}

// GetClient handles GET /v1/clients/:id.
//
// @Summary      Get a client account
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Client id"
// @Success      200  {object}  domain.ClientAccount
// @Failure      404  {object}  errorResponse
// @Router       /v1/clients/{id} [get]
func (h *DirectoryHandler) GetClient(c echo.Context) error {
	client, err := h.service.GetClient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// ListClients handles GET /v1/clients.
//
// @Summary      List client accounts
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.ClientAccount
// @Router       /v1/clients [get]
func (h *DirectoryHandler) ListClients(c echo.Context) error {
	clients, err := h.service.ListClients(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clients)
}

// UpdateClient handles PUT /v1/clients/:id.
//
// @Summary      Update a client account
// @Tags         directory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Client id"
// @Param        body  body      clientRequest  true  "Client details"
// @Success      200   {object}  domain.ClientAccount
// @Failure      404   {object}  errorResponse
// @Router       /v1/clients/{id} [put]
func (h *DirectoryHandler) UpdateClient(c echo.Context) error {
	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := h.service.UpdateClient(c.Request().Context(), &domain.ClientAccount{
		ID:        c.Param("id"),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// DeleteClient handles DELETE /v1/clients/:id.
//
// @Summary      Delete a client account
// @Tags         directory
// @Security     BearerAuth
// @Param        id  path  string  true  "Client id"
// @Success      204  "deleted"
// @Failure      404  {object}  errorResponse
// @Router       /v1/clients/{id} [delete]
func (h *DirectoryHandler) DeleteClient(c echo.Context) error {
	if err := h.service.DeleteClient(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Products ---

type productRequest struct {
	Name     string  `json:"name"      validate:"required"`
	Category string  `json:"category"  validate:"required"`
	WeightKg float64 `json:"weight_kg" validate:"required,gt=0"`
	Price    float64 `json:"price"     validate:"gte=0"`
}

// CreateProduct handles POST /v1/products.
//
// @Summary      Create a product
// @Tags         directory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product details"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Router       /v1/products [post]
func (h *DirectoryHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.CreateProduct(c.Request().Context(), &domain.Product{
		Name:     req.Name,
		Category: req.Category,
		WeightKg: req.WeightKg,
		Price:    req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// GetProduct handles GET /v1/products/:id.
//
// @Summary      Get a product
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorResponse
// @Router       /v1/products/{id} [get]
func (h *DirectoryHandler) GetProduct(c echo.Context) error {
	product, err := h.service.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// ListProducts handles GET /v1/products.
//
// @Summary      List products
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Product
// @Router       /v1/products [get]
func (h *DirectoryHandler) ListProducts(c echo.Context) error {
	products, err := h.service.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// UpdateProduct handles PUT /v1/products/:id.
//
// @Summary      Update a product
// @Tags         directory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product id"
// @Param        body  body      productRequest  true  "Product details"
// @Success      200   {object}  domain.Product
// @Failure      404   {object}  errorResponse
// @Router       /v1/products/{id} [put]
func (h *DirectoryHandler) UpdateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.UpdateProduct(c.Request().Context(), &domain.Product{
		ID:       c.Param("id"),
		Name:     req.Name,
		Category: req.Category,
		WeightKg: req.WeightKg,
		Price:    req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /v1/products/:id.
//
// @Summary      Delete a product
// @Tags         directory
// @Security     BearerAuth
// @Param        id  path  string  true  "Product id"
// @Success      204  "deleted"
// @Failure      404  {object}  errorResponse
// @Router       /v1/products/{id} [delete]
func (h *DirectoryHandler) DeleteProduct(c echo.Context) error {
	if err := h.service.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
