// internal/app/router.go
package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authHandler "flotaops-service/internal/handlers/auth"
	catalogHandler "flotaops-service/internal/handlers/catalog"
	driverHandler "flotaops-service/internal/handlers/driver"
	fineHandler "flotaops-service/internal/handlers/fine"
	insuranceHandler "flotaops-service/internal/handlers/insurance"
	routeHandler "flotaops-service/internal/handlers/route"
	taxHandler "flotaops-service/internal/handlers/tax"
	vehicleHandler "flotaops-service/internal/handlers/vehicle"
	workshopHandler "flotaops-service/internal/handlers/workshop"
	wsHandler "flotaops-service/internal/handlers/ws"
	"flotaops-service/internal/middleware"
	"flotaops-service/internal/permissions"
)

type Handlers struct {
	AuthHandler      *authHandler.AuthHandler
	VehicleHandler   *vehicleHandler.VehicleHandler
	DriverHandler    *driverHandler.DriverHandler
	RouteHandler     *routeHandler.RouteHandler
	FineHandler      *fineHandler.FineHandler
	InsuranceHandler *insuranceHandler.InsuranceHandler
	TaxHandler       *taxHandler.TaxHandler
	WorkshopHandler  *workshopHandler.WorkshopHandler
	CatalogHandler   *catalogHandler.CatalogHandler
	AlertHandler     *wsHandler.AlertHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// SetupRouter mounts every route. Each entity group is guarded by the
// role/module permission matrix, one middleware per HTTP verb.
func SetupRouter(r *gin.Engine, h *Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// WebSocket alert stream. The token travels in the query string
	// because browsers cannot set headers on the WS handshake.
	r.GET("/ws", h.AlertHandler.HandleConnection)

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/login", h.AuthHandler.Login)
		auth.POST("/forgot-password", h.AuthHandler.ForgotPassword)
		auth.POST("/reset-password", h.AuthHandler.ResetPassword)

		authed := auth.Group("", h.AuthMiddleware.Auth())
		{
			authed.POST("/logout", h.AuthHandler.Logout)
			authed.POST("/logout-all", h.AuthHandler.LogoutAll)
			authed.POST("/change-password", h.AuthHandler.ChangePassword)
			authed.GET("/me", h.AuthHandler.GetProfile)
			authed.PUT("/me", h.AuthHandler.UpdateProfile)
		}
	}

	vehiculos := api.Group("/vehiculos", h.AuthMiddleware.Auth())
	{
		view := h.AuthMiddleware.RequireModule(permissions.ModuleVehiculos, permissions.ActionView)
		vehiculos.GET("", view, h.VehicleHandler.List)
		vehiculos.GET("/stats", view, h.VehicleHandler.Stats)
		vehiculos.GET("/placa/:placa", view, h.VehicleHandler.GetByPlaca)
		vehiculos.GET("/registro/:placa", view, h.VehicleHandler.RegistryLookup)
		vehiculos.GET("/:id", view, h.VehicleHandler.Get)
		vehiculos.POST("", h.AuthMiddleware.RequireModule(permissions.ModuleVehiculos, permissions.ActionCreate), h.VehicleHandler.Create)
		vehiculos.PUT("/:id", h.AuthMiddleware.RequireModule(permissions.ModuleVehiculos, permissions.ActionEdit), h.VehicleHandler.Update)
		vehiculos.POST("/:id/mantenimiento", h.AuthMiddleware.RequireModule(permissions.ModuleVehiculos, permissions.ActionEdit), h.VehicleHandler.RegisterMaintenance)
		vehiculos.DELETE("/:id", h.AuthMiddleware.RequireModule(permissions.ModuleVehiculos, permissions.ActionDelete), h.VehicleHandler.Delete)
	}

	conductores := api.Group("/conductores", h.AuthMiddleware.Auth())
	{
		view := h.AuthMiddleware.RequireModule(permissions.ModuleConductores, permissions.ActionView)
		conductores.GET("", view, h.DriverHandler.List)
		conductores.GET("/stats", view, h.DriverHandler.Stats)
		conductores.GET("/:id", view, h.DriverHandler.Get)
		conductores.POST("", h.AuthMiddleware.RequireModule(permissions.ModuleConductores, permissions.ActionCreate), h.DriverHandler.Create)
		conductores.PUT("/:id", h.AuthMiddleware.RequireModule(permissions.ModuleConductores, permissions.ActionEdit), h.DriverHandler.Update)
		conductores.DELETE("/:id", h.AuthMiddleware.RequireModule(permissions.ModuleConductores, permissions.ActionDelete), h.DriverHandler.Delete)
	}

	ordenes := api.Group("/ordenes", h.AuthMiddleware.Auth())
	{
		view := h.AuthMiddleware.RequireModule(permissions.ModuleOrdenes, permissions.ActionView)
		ordenes.GET("", view, h.RouteHandler.List)
		ordenes.GET("/stats", view, h.RouteHandler.Stats)
		ordenes.GET("/numero/:numero", view, h.RouteHandler.GetByNumeroViaje)
		ordenes.GET("/:id", view, h.RouteHandler.Get)
		ordenes.POST("", h.AuthMiddleware.RequireModule(permissions.ModuleOrdenes, permissions.ActionCreate), h.RouteHandler.Create)
		ordenes.PUT("/:id", h.AuthMiddleware.RequireModule(permissions.ModuleOrdenes, permissions.ActionEdit), h.RouteHandler.Update)
		ordenes.DELETE("/:id", h.AuthMiddleware.RequireModule(permissions.ModuleOrdenes, permissions.ActionDelete), h.RouteHandler.Delete)
	}

	multas := api.Group("/multas", h.AuthMiddleware.Auth())
	{
		view := h.AuthMiddleware.RequireModule(permissions.ModuleMultas, permissions.ActionView)
		multas.GET("", view, h.FineHandler.List)
		multas.GET("/stats", view, h.FineHandler.Stats)
		multas.GET("/placa/:placa", view, h.FineHandler.ListByPlaca)
		multas.GET("/:id", view, h.FineHandler.Get)
		multas.POST("", h.AuthMiddleware.RequireModule(permissions.ModuleMultas, permissions.ActionCreate), h.FineHandler.Create)
		multas.PUT("/:id", h.AuthMiddleware.RequireModule(permissions.ModuleMultas, permissions.ActionEdit), h.FineHandler.Update)
		multas.POST("/:id/pagos", h.AuthMiddleware.RequireModule(permissions.ModuleMultas, permissions.ActionEdit), h.FineHandler.RegisterPayment)
		multas.DELETE("/:id", h.AuthMiddleware.RequireModule(permissions.ModuleMultas, permissions.ActionDelete), h.FineHandler.Delete)
	}

	seguros := api.Group("/seguros", h.AuthMiddleware.Auth())
	{
		view := h.AuthMiddleware.RequireModule(permissions.ModuleSeguros, permissions.ActionView)
		seguros.GET("", view, h.InsuranceHandler.List)
		seguros.GET("/stats", view, h.InsuranceHandler.Stats)
		seguros.GET("/placa/:placa", view, h.InsuranceHandler.ListByPlaca)
		seguros.GET("/:id", view, h.InsuranceHandler.Get)
		seguros.POST("", h.AuthMiddleware.RequireModule(permissions.ModuleSeguros, permissions.ActionCreate), h.InsuranceHandler.Create)
		seguros.PUT("/:id", h.AuthMiddleware.RequireModule(permissions.ModuleSeguros, permissions.ActionEdit), h.InsuranceHandler.Update)
		seguros.DELETE("/:id", h.AuthMiddleware.RequireModule(permissions.ModuleSeguros, permissions.ActionDelete), h.InsuranceHandler.Delete)
	}

	impuestos := api.Group("/impuestos", h.AuthMiddleware.Auth())
	{
		view := h.AuthMiddleware.RequireModule(permissions.ModuleImpuestos, permissions.ActionView)
		impuestos.GET("", view, h.TaxHandler.List)
		impuestos.GET("/stats", view, h.TaxHandler.Stats)
		impuestos.GET("/placa/:placa", view, h.TaxHandler.ListByPlaca)
		impuestos.GET("/:id", view, h.TaxHandler.Get)
		impuestos.POST("", h.AuthMiddleware.RequireModule(permissions.ModuleImpuestos, permissions.ActionCreate), h.TaxHandler.Create)
		impuestos.PUT("/:id", h.AuthMiddleware.RequireModule(permissions.ModuleImpuestos, permissions.ActionEdit), h.TaxHandler.Update)
		impuestos.POST("/:id/pagar", h.AuthMiddleware.RequireModule(permissions.ModuleImpuestos, permissions.ActionEdit), h.TaxHandler.MarkPaid)
		impuestos.DELETE("/:id", h.AuthMiddleware.RequireModule(permissions.ModuleImpuestos, permissions.ActionDelete), h.TaxHandler.Delete)
	}

	talleres := api.Group("/talleres", h.AuthMiddleware.Auth())
	{
		view := h.AuthMiddleware.RequireModule(permissions.ModuleTalleres, permissions.ActionView)
		talleres.GET("", view, h.WorkshopHandler.List)
		talleres.GET("/stats", view, h.WorkshopHandler.Stats)
		talleres.GET("/:id", view, h.WorkshopHandler.Get)
		talleres.POST("", h.AuthMiddleware.RequireModule(permissions.ModuleTalleres, permissions.ActionCreate), h.WorkshopHandler.Create)
		talleres.PUT("/:id", h.AuthMiddleware.RequireModule(permissions.ModuleTalleres, permissions.ActionEdit), h.WorkshopHandler.Update)
		talleres.DELETE("/:id", h.AuthMiddleware.RequireModule(permissions.ModuleTalleres, permissions.ActionDelete), h.WorkshopHandler.Delete)
	}

	// Catalogs back every entity form, so any authenticated user can read them.
	catalogos := api.Group("/catalogos", h.AuthMiddleware.Auth())
	{
		catalogos.GET("", h.CatalogHandler.Catalogo)
		catalogos.GET("/marcas", h.CatalogHandler.Marcas)
		catalogos.GET("/modelos", h.CatalogHandler.Modelos)
		catalogos.GET("/tipos-vehiculo", h.CatalogHandler.TiposVehiculo)
		catalogos.GET("/tipos-infraccion", h.CatalogHandler.TiposInfraccion)
		catalogos.POST("/invalidate", h.AuthMiddleware.RequireRole(permissions.RoleAdmin), h.CatalogHandler.Invalidate)
	}

	usuarios := api.Group("/usuarios", h.AuthMiddleware.Auth())
	{
		view := h.AuthMiddleware.RequireModule(permissions.ModuleUsuarios, permissions.ActionView)
		usuarios.GET("", view, h.AuthHandler.ListUsers)
		usuarios.POST("", h.AuthMiddleware.RequireModule(permissions.ModuleUsuarios, permissions.ActionCreate), h.AuthHandler.CreateUser)
		usuarios.PUT("/:id/rol", h.AuthMiddleware.RequireModule(permissions.ModuleUsuarios, permissions.ActionEdit), h.AuthHandler.UpdateUserRole)
		usuarios.DELETE("/:id", h.AuthMiddleware.RequireModule(permissions.ModuleUsuarios, permissions.ActionDelete), h.AuthHandler.DeactivateUser)
	}

	// Connection count for the alert stream, admin only.
	api.GET("/ws/stats", h.AuthMiddleware.Auth(), h.AuthMiddleware.RequireRole(permissions.RoleAdmin), h.AlertHandler.Stats)
}
