// internal/handlers/insurance/insurance_handler.go
package insurance

import (
	"net/http"
	"strconv"

	"flotaops-service/internal/domain/insurance"
	"flotaops-service/internal/pkg/response"
	service "flotaops-service/internal/service/insurance"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type InsuranceHandler struct {
	insuranceService *service.Service
	logger           *zap.Logger
}

func NewInsuranceHandler(insuranceService *service.Service, logger *zap.Logger) *InsuranceHandler {
	return &InsuranceHandler{
		insuranceService: insuranceService,
		logger:           logger,
	}
}

// Create registers a new insurance policy
func (h *InsuranceHandler) Create(c *gin.Context) {
	var req insurance.CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	p, err := h.insuranceService.Create(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("policy creation failed", zap.String("placa", req.Placa), zap.Error(err))
		response.FromError(c, "failed to create policy", err)
		return
	}

	response.Success(c, http.StatusCreated, "policy created", p)
}

// List retrieves policies with optional filters
func (h *InsuranceHandler) List(c *gin.Context) {
	var filters insurance.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	items, total, err := h.insuranceService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list policies", err)
		return
	}

	response.Success(c, http.StatusOK, "policies retrieved", gin.H{
		"items": items,
		"total": total,
	})
}

// Get retrieves one policy by id
func (h *InsuranceHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid policy id", err)
		return
	}

	p, err := h.insuranceService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to get policy", err)
		return
	}

	response.Success(c, http.StatusOK, "policy retrieved", p)
}

// ListByPlaca retrieves every policy on a plate
func (h *InsuranceHandler) ListByPlaca(c *gin.Context) {
	items, err := h.insuranceService.ListByPlaca(c.Request.Context(), c.Param("placa"))
	if err != nil {
		response.FromError(c, "failed to list policies", err)
		return
	}

	response.Success(c, http.StatusOK, "policies retrieved", items)
}

// Update applies a partial update to a policy
func (h *InsuranceHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid policy id", err)
		return
	}

	var req insurance.UpdatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	p, err := h.insuranceService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update policy", err)
		return
	}

	response.Success(c, http.StatusOK, "policy updated", p)
}

// Delete removes a policy
func (h *InsuranceHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid policy id", err)
		return
	}

	if err := h.insuranceService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete policy", err)
		return
	}

	response.Success(c, http.StatusOK, "policy deleted", nil)
}

// Stats returns the policy aggregate counters
func (h *InsuranceHandler) Stats(c *gin.Context) {
	stats, err := h.insuranceService.Stats(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to compute policy stats", err)
		return
	}

	response.Success(c, http.StatusOK, "policy stats", stats)
}
