// internal/handlers/vehicle/vehicle_handler.go
package vehicle

import (
	"errors"
	"net/http"
	"strconv"

	"flotaops-service/internal/client/registro"
	"flotaops-service/internal/domain/vehicle"
	xerrors "flotaops-service/internal/pkg/errors"
	"flotaops-service/internal/pkg/response"
	service "flotaops-service/internal/service/vehicle"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type VehicleHandler struct {
	vehicleService *service.Service
	registryClient *registro.Client
	logger         *zap.Logger
}

func NewVehicleHandler(vehicleService *service.Service, registryClient *registro.Client, logger *zap.Logger) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
		registryClient: registryClient,
		logger:         logger,
	}
}

// Create registers a new vehicle
func (h *VehicleHandler) Create(c *gin.Context) {
	var req vehicle.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	v, err := h.vehicleService.Create(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("vehicle creation failed", zap.String("placa", req.Placa), zap.Error(err))
		response.FromError(c, "failed to create vehicle", err)
		return
	}

	response.Success(c, http.StatusCreated, "vehicle created", v)
}

// List retrieves vehicles with optional filters
func (h *VehicleHandler) List(c *gin.Context) {
	var filters vehicle.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	items, total, err := h.vehicleService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list vehicles", err)
		return
	}

	response.Success(c, http.StatusOK, "vehicles retrieved", gin.H{
		"items": items,
		"total": total,
	})
}

// Get retrieves one vehicle by id
func (h *VehicleHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid vehicle id", err)
		return
	}

	v, err := h.vehicleService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to get vehicle", err)
		return
	}

	response.Success(c, http.StatusOK, "vehicle retrieved", v)
}

// GetByPlaca retrieves one vehicle by plate
func (h *VehicleHandler) GetByPlaca(c *gin.Context) {
	v, err := h.vehicleService.GetByPlaca(c.Request.Context(), c.Param("placa"))
	if err != nil {
		response.FromError(c, "failed to get vehicle", err)
		return
	}

	response.Success(c, http.StatusOK, "vehicle retrieved", v)
}

// Update applies a partial update to a vehicle
func (h *VehicleHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid vehicle id", err)
		return
	}

	var req vehicle.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	v, err := h.vehicleService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update vehicle", err)
		return
	}

	response.Success(c, http.StatusOK, "vehicle updated", v)
}

// RegisterMaintenance closes the current maintenance cycle
func (h *VehicleHandler) RegisterMaintenance(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid vehicle id", err)
		return
	}

	v, err := h.vehicleService.RegisterMaintenance(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to register maintenance", err)
		return
	}

	response.Success(c, http.StatusOK, "maintenance registered", v)
}

// Delete removes a vehicle
func (h *VehicleHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid vehicle id", err)
		return
	}

	if err := h.vehicleService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete vehicle", err)
		return
	}

	response.Success(c, http.StatusOK, "vehicle deleted", nil)
}

// Stats returns the fleet aggregate counters
func (h *VehicleHandler) Stats(c *gin.Context) {
	stats, err := h.vehicleService.Stats(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to compute vehicle stats", err)
		return
	}

	response.Success(c, http.StatusOK, "vehicle stats", stats)
}

// RegistryLookup queries the external vehicle registry for a plate, used to
// prefill the registration form.
func (h *VehicleHandler) RegistryLookup(c *gin.Context) {
	if h.registryClient == nil {
		response.Error(c, http.StatusServiceUnavailable, "registry lookup not configured", nil)
		return
	}

	record, err := h.registryClient.Lookup(c.Request.Context(), c.Param("placa"))
	if err != nil {
		if errors.Is(err, xerrors.ErrPlacaNoEncontrada) {
			response.NotFound(c, "placa no registrada")
			return
		}
		response.Error(c, http.StatusBadGateway, "registry lookup failed", err)
		return
	}

	response.Success(c, http.StatusOK, "registry record retrieved", record)
}
