// internal/handlers/catalog/catalog_handler.go
package catalog

import (
	"net/http"
	"strconv"

	"flotaops-service/internal/pkg/response"
	service "flotaops-service/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService *service.Service
}

func NewCatalogHandler(catalogService *service.Service) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// Catalogo returns every reference list in one payload
func (h *CatalogHandler) Catalogo(c *gin.Context) {
	cat, err := h.catalogService.Catalogo(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to load catalog", err)
		return
	}
	response.Success(c, http.StatusOK, "catalog retrieved", cat)
}

// Marcas lists vehicle makes
func (h *CatalogHandler) Marcas(c *gin.Context) {
	items, err := h.catalogService.Marcas(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list marcas", err)
		return
	}
	response.Success(c, http.StatusOK, "marcas retrieved", items)
}

// Modelos lists models, optionally scoped by ?marca_id=
func (h *CatalogHandler) Modelos(c *gin.Context) {
	var marcaID int64
	if raw := c.Query("marca_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid marca_id", err)
			return
		}
		marcaID = parsed
	}

	items, err := h.catalogService.Modelos(c.Request.Context(), marcaID)
	if err != nil {
		response.FromError(c, "failed to list modelos", err)
		return
	}
	response.Success(c, http.StatusOK, "modelos retrieved", items)
}

// TiposVehiculo lists vehicle types
func (h *CatalogHandler) TiposVehiculo(c *gin.Context) {
	items, err := h.catalogService.TiposVehiculo(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list tipos de vehiculo", err)
		return
	}
	response.Success(c, http.StatusOK, "tipos de vehiculo retrieved", items)
}

// TiposInfraccion lists infraction types
func (h *CatalogHandler) TiposInfraccion(c *gin.Context) {
	items, err := h.catalogService.TiposInfraccion(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list tipos de infraccion", err)
		return
	}
	response.Success(c, http.StatusOK, "tipos de infraccion retrieved", items)
}

// Invalidate drops the cached reference lists (admin only)
func (h *CatalogHandler) Invalidate(c *gin.Context) {
	if err := h.catalogService.Invalidate(c.Request.Context()); err != nil {
		response.FromError(c, "failed to invalidate catalog cache", err)
		return
	}
	response.Success(c, http.StatusOK, "catalog cache invalidated", nil)
}
