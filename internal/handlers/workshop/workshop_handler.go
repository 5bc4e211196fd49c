// internal/handlers/workshop/workshop_handler.go
package workshop

import (
	"net/http"
	"strconv"

	"flotaops-service/internal/domain/workshop"
	"flotaops-service/internal/pkg/response"
	service "flotaops-service/internal/service/workshop"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type WorkshopHandler struct {
	workshopService *service.Service
	logger          *zap.Logger
}

func NewWorkshopHandler(workshopService *service.Service, logger *zap.Logger) *WorkshopHandler {
	return &WorkshopHandler{
		workshopService: workshopService,
		logger:          logger,
	}
}

// Create registers a new workshop
func (h *WorkshopHandler) Create(c *gin.Context) {
	var req workshop.CreateWorkshopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	t, err := h.workshopService.Create(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("workshop creation failed", zap.String("nombre", req.Nombre), zap.Error(err))
		response.FromError(c, "failed to create workshop", err)
		return
	}

	response.Success(c, http.StatusCreated, "workshop created", t)
}

// List retrieves workshops with optional filters
func (h *WorkshopHandler) List(c *gin.Context) {
	var filters workshop.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	items, total, err := h.workshopService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list workshops", err)
		return
	}

	response.Success(c, http.StatusOK, "workshops retrieved", gin.H{
		"items": items,
		"total": total,
	})
}

// Get retrieves one workshop by id
func (h *WorkshopHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid workshop id", err)
		return
	}

	t, err := h.workshopService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to get workshop", err)
		return
	}

	response.Success(c, http.StatusOK, "workshop retrieved", t)
}

// Update applies a partial update to a workshop
func (h *WorkshopHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid workshop id", err)
		return
	}

	var req workshop.UpdateWorkshopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	t, err := h.workshopService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update workshop", err)
		return
	}

	response.Success(c, http.StatusOK, "workshop updated", t)
}

// Delete removes a workshop
func (h *WorkshopHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid workshop id", err)
		return
	}

	if err := h.workshopService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete workshop", err)
		return
	}

	response.Success(c, http.StatusOK, "workshop deleted", nil)
}

// Stats returns the workshop aggregate counters
func (h *WorkshopHandler) Stats(c *gin.Context) {
	stats, err := h.workshopService.Stats(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to compute workshop stats", err)
		return
	}

	response.Success(c, http.StatusOK, "workshop stats", stats)
}
