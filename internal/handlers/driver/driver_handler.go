// internal/handlers/driver/driver_handler.go
package driver

import (
	"net/http"
	"strconv"

	"flotaops-service/internal/domain/driver"
	"flotaops-service/internal/pkg/response"
	service "flotaops-service/internal/service/driver"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DriverHandler struct {
	driverService *service.Service
	logger        *zap.Logger
}

func NewDriverHandler(driverService *service.Service, logger *zap.Logger) *DriverHandler {
	return &DriverHandler{
		driverService: driverService,
		logger:        logger,
	}
}

// Create registers a new driver
func (h *DriverHandler) Create(c *gin.Context) {
	var req driver.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	d, err := h.driverService.Create(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("driver creation failed", zap.String("documento", req.Documento), zap.Error(err))
		response.FromError(c, "failed to create driver", err)
		return
	}

	response.Success(c, http.StatusCreated, "driver created", d)
}

// List retrieves drivers with optional filters
func (h *DriverHandler) List(c *gin.Context) {
	var filters driver.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	items, total, err := h.driverService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list drivers", err)
		return
	}

	response.Success(c, http.StatusOK, "drivers retrieved", gin.H{
		"items": items,
		"total": total,
	})
}

// Get retrieves one driver by id
func (h *DriverHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid driver id", err)
		return
	}

	d, err := h.driverService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to get driver", err)
		return
	}

	response.Success(c, http.StatusOK, "driver retrieved", d)
}

// Update applies a partial update to a driver
func (h *DriverHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid driver id", err)
		return
	}

	var req driver.UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	d, err := h.driverService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update driver", err)
		return
	}

	response.Success(c, http.StatusOK, "driver updated", d)
}

// Delete removes a driver
func (h *DriverHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid driver id", err)
		return
	}

	if err := h.driverService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete driver", err)
		return
	}

	response.Success(c, http.StatusOK, "driver deleted", nil)
}

// Stats returns the driver aggregate counters
func (h *DriverHandler) Stats(c *gin.Context) {
	stats, err := h.driverService.Stats(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to compute driver stats", err)
		return
	}

	response.Success(c, http.StatusOK, "driver stats", stats)
}
