// internal/handlers/tax/tax_handler.go
package tax

import (
	"net/http"
	"strconv"

	"flotaops-service/internal/domain/tax"
	"flotaops-service/internal/pkg/response"
	service "flotaops-service/internal/service/tax"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TaxHandler struct {
	taxService *service.Service
	logger     *zap.Logger
}

func NewTaxHandler(taxService *service.Service, logger *zap.Logger) *TaxHandler {
	return &TaxHandler{
		taxService: taxService,
		logger:     logger,
	}
}

// Create registers a new tax record
func (h *TaxHandler) Create(c *gin.Context) {
	var req tax.CreateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	i, err := h.taxService.Create(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("tax record creation failed", zap.String("placa", req.Placa), zap.Error(err))
		response.FromError(c, "failed to create tax record", err)
		return
	}

	response.Success(c, http.StatusCreated, "tax record created", i)
}

// List retrieves tax records with optional filters
func (h *TaxHandler) List(c *gin.Context) {
	var filters tax.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	items, total, err := h.taxService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list tax records", err)
		return
	}

	response.Success(c, http.StatusOK, "tax records retrieved", gin.H{
		"items": items,
		"total": total,
	})
}

// Get retrieves one tax record by id
func (h *TaxHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid tax record id", err)
		return
	}

	i, err := h.taxService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to get tax record", err)
		return
	}

	response.Success(c, http.StatusOK, "tax record retrieved", i)
}

// ListByPlaca retrieves every tax record on a plate
func (h *TaxHandler) ListByPlaca(c *gin.Context) {
	items, err := h.taxService.ListByPlaca(c.Request.Context(), c.Param("placa"))
	if err != nil {
		response.FromError(c, "failed to list tax records", err)
		return
	}

	response.Success(c, http.StatusOK, "tax records retrieved", items)
}

// Update applies a partial update to a tax record
func (h *TaxHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid tax record id", err)
		return
	}

	var req tax.UpdateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	i, err := h.taxService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update tax record", err)
		return
	}

	response.Success(c, http.StatusOK, "tax record updated", i)
}

// MarkPaid settles a tax record
func (h *TaxHandler) MarkPaid(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid tax record id", err)
		return
	}

	i, err := h.taxService.MarkPaid(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to mark tax record paid", err)
		return
	}

	response.Success(c, http.StatusOK, "tax record paid", i)
}

// Delete removes a tax record
func (h *TaxHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid tax record id", err)
		return
	}

	if err := h.taxService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete tax record", err)
		return
	}

	response.Success(c, http.StatusOK, "tax record deleted", nil)
}

// Stats returns the tax aggregate counters
func (h *TaxHandler) Stats(c *gin.Context) {
	stats, err := h.taxService.Stats(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to compute tax stats", err)
		return
	}

	response.Success(c, http.StatusOK, "tax stats", stats)
}
