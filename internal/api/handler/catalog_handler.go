package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careloop/booking-platform/internal/core/ports"
)

// CatalogHandler serves the public service listing.
type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List returns all active services.
//
// @Summary      List active services
// @Tags         services
// @Produce      json
// @Success      200  {array}  domain.ServiceCategory
// @Router       /services [get]
func (h *CatalogHandler) List(c echo.Context) error {
	services, err := h.catalog.ListActive(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, services)
}
