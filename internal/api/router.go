package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/colisdirect/delivery-system/docs"
	"github.com/colisdirect/delivery-system/internal/api/handler"
	"github.com/colisdirect/delivery-system/internal/api/middleware"
	"github.com/colisdirect/delivery-system/internal/core/domain"
	"github.com/colisdirect/delivery-system/internal/core/service"
	"github.com/colisdirect/delivery-system/internal/infrastructure/config"
	mongodb "github.com/colisdirect/delivery-system/internal/infrastructure/db/mongo"
	redisdb "github.com/colisdirect/delivery-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("delivery"))

	// --- Repositories ---
	parcelRepo := mongodb.NewParcelRepository(db)
	historyRepo := mongodb.NewHistoryRepository(db)
	authRepo := mongodb.NewAuthRepository(db)
	courierRepo := mongodb.NewCourierRepository(db)
	zoneRepo := mongodb.NewZoneRepository(db)
	recipientRepo := mongodb.NewRecipientRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	productRepo := mongodb.NewProductRepository(db)

	// --- Services ---
	statsCache := redisdb.NewStatsCache(rdb)
	parcelService := service.NewParcelService(parcelRepo, historyRepo, statsCache, log)
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, cfg.TokenTTL)
	directoryService := service.NewDirectoryService(courierRepo, zoneRepo, recipientRepo, clientRepo, productRepo, log)

	// --- Handlers ---
	parcelHandler := handler.NewParcelHandler(parcelService)
	trackingHandler := handler.NewTrackingHandler(parcelService)
	authHandler := handler.NewAuthHandler(authService)
	directoryHandler := handler.NewDirectoryHandler(directoryService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	authMW := middleware.Auth(cfg.JWTSecret)
	managerOnly := middleware.RBAC(domain.RoleManager)
	managerOrClient := middleware.RBAC(domain.RoleManager, domain.RoleClient)
	managerOrCourier := middleware.RBAC(domain.RoleManager, domain.RoleCourier)

	// --- Public surface ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)
	e.GET("/tracking/:reference", trackingHandler.Track)

	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated surface ---
	v1 := e.Group("/v1", authMW)

	parcels := v1.Group("/parcels")
	parcels.POST("", parcelHandler.Create, managerOrClient)
	parcels.GET("", parcelHandler.List)
	parcels.GET("/stats", parcelHandler.Statistics)
	parcels.GET("/overdue", parcelHandler.Overdue)
	parcels.GET("/:id", parcelHandler.Get)
	parcels.PUT("/:id", parcelHandler.Update, managerOnly)
	parcels.DELETE("/:id", parcelHandler.Delete, managerOnly)
	parcels.PATCH("/:id/status", parcelHandler.UpdateStatus, managerOrCourier)
	parcels.GET("/:id/history", parcelHandler.History)

	users := v1.Group("/users", managerOnly)
	users.GET("", authHandler.ListUsers)
	users.PUT("/:id/active", authHandler.SetActive)

	couriers := v1.Group("/couriers")
	couriers.GET("", directoryHandler.ListCouriers)
	couriers.GET("/:id", directoryHandler.GetCourier)
	couriers.POST("", directoryHandler.CreateCourier, managerOnly)
	couriers.PUT("/:id", directoryHandler.UpdateCourier, managerOnly)
	couriers.DELETE("/:id", directoryHandler.DeleteCourier, managerOnly)

	zones := v1.Group("/zones")
	zones.GET("", directoryHandler.ListZones)
	zones.GET("/:id", directoryHandler.GetZone)
	zones.POST("", directoryHandler.CreateZone, managerOnly)
	zones.PUT("/:id", directoryHandler.UpdateZone, managerOnly)
	zones.DELETE("/:id", directoryHandler.DeleteZone, managerOnly)

	recipients := v1.Group("/recipients")
	recipients.GET("", directoryHandler.ListRecipients)
	recipients.GET("/:id", directoryHandler.GetRecipient)
	recipients.POST("", directoryHandler.CreateRecipient, managerOnly)
	recipients.PUT("/:id", directoryHandler.UpdateRecipient, managerOnly)
	recipients.DELETE("/:id", directoryHandler.DeleteRecipient, managerOnly)

	clients := v1.Group("/clients")
	clients.GET("", directoryHandler.ListClients)
	clients.GET("/:id", directoryHandler.GetClient)
	clients.POST("", directoryHandler.CreateClient, managerOnly)
	clients.PUT("/:id", directoryHandler.UpdateClient, managerOnly)
	clients.DELETE("/:id", directoryHandler.DeleteClient, managerOnly)

	products := v1.Group("/products")
	products.GET("", directoryHandler.ListProducts)
	products.GET("/:id", directoryHandler.GetProduct)
	products.POST("", directoryHandler.CreateProduct, managerOnly)
	products.PUT("/:id", directoryHandler.UpdateProduct, managerOnly)
	products.DELETE("/:id", directoryHandler.DeleteProduct, managerOnly)

	return e
}
