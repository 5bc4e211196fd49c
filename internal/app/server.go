// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"flotaops-service/internal/client/registro"
	"flotaops-service/internal/config"
	"flotaops-service/internal/db"
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
	"flotaops-service/internal/pkg/jwt"
	"flotaops-service/internal/pkg/session"
	"flotaops-service/internal/repository/postgres"
	authService "flotaops-service/internal/service/auth"
	catalogService "flotaops-service/internal/service/catalog"
	driverService "flotaops-service/internal/service/driver"
	"flotaops-service/internal/service/email"
	fineService "flotaops-service/internal/service/fine"
	insuranceService "flotaops-service/internal/service/insurance"
	routeService "flotaops-service/internal/service/route"
	taxService "flotaops-service/internal/service/tax"
	vehicleService "flotaops-service/internal/service/vehicle"
	workshopService "flotaops-service/internal/service/workshop"
	"flotaops-service/internal/store"
	"flotaops-service/internal/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger

	httpServer *http.Server
	shutdowns  []func()
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	s.logger = logger
	s.shutdowns = append(s.shutdowns, func() { _ = logger.Sync() })

	if err := permissions.Validate(); err != nil {
		return err
	}

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	s.shutdowns = append(s.shutdowns, pool.Close)

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	s.shutdowns = append(s.shutdowns, func() { _ = redisClient.Close() })
	logger.Info("datastores connected")

	// ----- JWT / sessions -----
	jwtManager, err := jwt.LoadAndBuild(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to load jwt manager: %w", err)
	}
	sessionManager := session.NewManager(redisClient, logger)
	rateLimiter := session.NewRateLimiter(redisClient)

	// ----- Email -----
	emailSender := email.NewEmailSender(
		s.cfg.SMTPHost,
		s.cfg.SMTPPort,
		s.cfg.SMTPUser,
		s.cfg.SMTPPass,
		s.cfg.SMTPFromName,
		s.cfg.SMTPSecure,
	)

	// ----- Repositories -----
	authRepo := postgres.NewAuthRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	driverRepo := postgres.NewDriverRepository(pool)
	routeRepo := postgres.NewRouteRepository(pool)
	fineRepo := postgres.NewFineRepository(pool)
	insuranceRepo := postgres.NewInsuranceRepository(pool)
	taxRepo := postgres.NewTaxRepository(pool)
	workshopRepo := postgres.NewWorkshopRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)

	// ----- In-memory stores -----
	vehicleStore := store.NewVehicleStore()
	driverStore := store.NewDriverStore(time.Now)
	routeStore := store.NewRouteStore()
	fineStore := store.NewFineStore()
	insuranceStore := store.NewInsuranceStore(time.Now)
	taxStore := store.NewTaxStore()
	workshopStore := store.NewWorkshopStore()

	// ----- Alert hub -----
	hub := ws.NewHub(jwtManager.Verifier, sessionManager, logger)
	go hub.Run(ctx)

	// ----- External registry -----
	var registryClient *registro.Client
	if s.cfg.RegistryURL != "" {
		registryClient = registro.New(s.cfg.RegistryURL, s.cfg.RegistryAPIKey, logger)
	}

	// ----- Services -----
	authSvc := authService.NewAuthService(
		authRepo, jwtManager, sessionManager, rateLimiter,
		emailSender, s.cfg.BaseURL, logger,
	)
	vehicleSvc := vehicleService.NewService(vehicleRepo, vehicleStore, hub, logger)
	driverSvc := driverService.NewService(driverRepo, driverStore, hub, logger)
	routeSvc := routeService.NewService(routeRepo, vehicleRepo, routeStore, logger)
	fineSvc := fineService.NewService(fineRepo, fineStore, logger)
	insuranceSvc := insuranceService.NewService(insuranceRepo, insuranceStore, hub, logger)
	taxSvc := taxService.NewService(taxRepo, taxStore, logger)
	workshopSvc := workshopService.NewService(workshopRepo, workshopStore, logger)
	catalogSvc := catalogService.NewService(catalogRepo, redisClient, logger)

	// ----- Bootstrap admin -----
	adminCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	if err := authSvc.EnsureAdminExists(adminCtx, s.cfg.AdminEmail, s.cfg.AdminPassword); err != nil {
		logger.Error("failed to ensure admin account", zap.Error(err))
	}
	cancel()

	// ----- Handlers -----
	handlers := &Handlers{
		AuthHandler:      authHandler.NewAuthHandler(authSvc, logger),
		VehicleHandler:   vehicleHandler.NewVehicleHandler(vehicleSvc, registryClient, logger),
		DriverHandler:    driverHandler.NewDriverHandler(driverSvc, logger),
		RouteHandler:     routeHandler.NewRouteHandler(routeSvc, logger),
		FineHandler:      fineHandler.NewFineHandler(fineSvc, logger),
		InsuranceHandler: insuranceHandler.NewInsuranceHandler(insuranceSvc, logger),
		TaxHandler:       taxHandler.NewTaxHandler(taxSvc, logger),
		WorkshopHandler:  workshopHandler.NewWorkshopHandler(workshopSvc, logger),
		CatalogHandler:   catalogHandler.NewCatalogHandler(catalogSvc),
		AlertHandler:     wsHandler.NewAlertHandler(hub, logger),
		AuthMiddleware:   middleware.NewAuthMiddleware(authSvc),
	}

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(s.cfg.AllowedOrigins),
	)
	SetupRouter(s.engine, handlers)

	logger.Info("server starting", zap.String("addr", s.cfg.HTTPAddr))
	s.httpServer = &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the HTTP listener and releases the datastore connections.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}
	for i := len(s.shutdowns) - 1; i >= 0; i-- {
		s.shutdowns[i]()
	}
	return err
}
