// internal/handlers/fine/fine_handler.go
package fine

import (
	"net/http"
	"strconv"

	"flotaops-service/internal/domain/fine"
	"flotaops-service/internal/pkg/response"
	service "flotaops-service/internal/service/fine"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FineHandler struct {
	fineService *service.Service
	logger      *zap.Logger
}

func NewFineHandler(fineService *service.Service, logger *zap.Logger) *FineHandler {
	return &FineHandler{
		fineService: fineService,
		logger:      logger,
	}
}

type paymentRequest struct {
	Importe float64 `json:"importe" binding:"required,gt=0"`
}

// Create registers a new fine
func (h *FineHandler) Create(c *gin.Context) {
	var req fine.CreateFineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	m, err := h.fineService.Create(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("fine creation failed", zap.String("placa", req.Placa), zap.Error(err))
		response.FromError(c, "failed to create fine", err)
		return
	}

	response.Success(c, http.StatusCreated, "fine created", m)
}

// List retrieves fines with optional filters
func (h *FineHandler) List(c *gin.Context) {
	var filters fine.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	items, total, err := h.fineService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list fines", err)
		return
	}

	response.Success(c, http.StatusOK, "fines retrieved", gin.H{
		"items": items,
		"total": total,
	})
}

// Get retrieves one fine by id
func (h *FineHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid fine id", err)
		return
	}

	m, err := h.fineService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to get fine", err)
		return
	}

	response.Success(c, http.StatusOK, "fine retrieved", m)
}

// ListByPlaca retrieves every fine on a plate
func (h *FineHandler) ListByPlaca(c *gin.Context) {
	items, err := h.fineService.ListByPlaca(c.Request.Context(), c.Param("placa"))
	if err != nil {
		response.FromError(c, "failed to list fines", err)
		return
	}

	response.Success(c, http.StatusOK, "fines retrieved", items)
}

// Update applies a partial update to a fine
func (h *FineHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid fine id", err)
		return
	}

	var req fine.UpdateFineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	m, err := h.fineService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update fine", err)
		return
	}

	response.Success(c, http.StatusOK, "fine updated", m)
}

// RegisterPayment adds a payment against a fine
func (h *FineHandler) RegisterPayment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid fine id", err)
		return
	}

	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	m, err := h.fineService.RegisterPayment(c.Request.Context(), id, req.Importe)
	if err != nil {
		response.FromError(c, "failed to register payment", err)
		return
	}

	response.Success(c, http.StatusOK, "payment registered", m)
}

// Delete removes a fine
func (h *FineHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid fine id", err)
		return
	}

	if err := h.fineService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete fine", err)
		return
	}

	response.Success(c, http.StatusOK, "fine deleted", nil)
}

// Stats returns the fine aggregate counters
func (h *FineHandler) Stats(c *gin.Context) {
	stats, err := h.fineService.Stats(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to compute fine stats", err)
		return
	}

	response.Success(c, http.StatusOK, "fine stats", stats)
}
