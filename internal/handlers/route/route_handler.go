// internal/handlers/route/route_handler.go
package route

import (
	"net/http"
	"strconv"

	"flotaops-service/internal/domain/route"
	"flotaops-service/internal/pkg/response"
	service "flotaops-service/internal/service/route"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouteHandler struct {
	routeService *service.Service
	logger       *zap.Logger
}

func NewRouteHandler(routeService *service.Service, logger *zap.Logger) *RouteHandler {
	return &RouteHandler{
		routeService: routeService,
		logger:       logger,
	}
}

// Create registers a new trip order
func (h *RouteHandler) Create(c *gin.Context) {
	var req route.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	o, err := h.routeService.Create(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("route order creation failed", zap.String("placa", req.Placa), zap.Error(err))
		response.FromError(c, "failed to create route order", err)
		return
	}

	response.Success(c, http.StatusCreated, "route order created", o)
}

// List retrieves trip orders with optional filters
func (h *RouteHandler) List(c *gin.Context) {
	var filters route.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	items, total, err := h.routeService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list route orders", err)
		return
	}

	response.Success(c, http.StatusOK, "route orders retrieved", gin.H{
		"items": items,
		"total": total,
	})
}

// Get retrieves one trip order by id
func (h *RouteHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid route order id", err)
		return
	}

	o, err := h.routeService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to get route order", err)
		return
	}

	response.Success(c, http.StatusOK, "route order retrieved", o)
}

// GetByNumeroViaje retrieves one trip order by its trip number
func (h *RouteHandler) GetByNumeroViaje(c *gin.Context) {
	o, err := h.routeService.GetByNumeroViaje(c.Request.Context(), c.Param("numero"))
	if err != nil {
		response.FromError(c, "failed to get route order", err)
		return
	}

	response.Success(c, http.StatusOK, "route order retrieved", o)
}

// Update applies a partial update to a trip order
func (h *RouteHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid route order id", err)
		return
	}

	var req route.UpdateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	o, err := h.routeService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update route order", err)
		return
	}

	response.Success(c, http.StatusOK, "route order updated", o)
}

// Delete removes a trip order
func (h *RouteHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid route order id", err)
		return
	}

	if err := h.routeService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete route order", err)
		return
	}

	response.Success(c, http.StatusOK, "route order deleted", nil)
}

// Stats returns the trip aggregate counters and financial totals
func (h *RouteHandler) Stats(c *gin.Context) {
	stats, err := h.routeService.Stats(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to compute route stats", err)
		return
	}

	response.Success(c, http.StatusOK, "route stats", stats)
}
