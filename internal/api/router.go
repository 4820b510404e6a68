package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/digiloka/marketplace-api/docs"
	"github.com/digiloka/marketplace-api/internal/api/handler"
	"github.com/digiloka/marketplace-api/internal/api/middleware"
	"github.com/digiloka/marketplace-api/internal/core/domain"
	"github.com/digiloka/marketplace-api/internal/core/ports"
	"github.com/digiloka/marketplace-api/internal/core/service"
	mongorepo "github.com/digiloka/marketplace-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/digiloka/marketplace-api/internal/infrastructure/db/redis"
	"github.com/digiloka/marketplace-api/internal/infrastructure/storage"
	"github.com/digiloka/marketplace-api/pkg/logger"
)

// uploadBodyLimit caps multipart payloads on the upload routes.
const uploadBodyLimit = "50M"

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, blobs ports.BlobStore, jwtSecret string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	log := logger.Get()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db)
	productRepo := mongorepo.NewProductRepository(db)
	orderRepo := mongorepo.NewOrderRepository(db)
	guard := redisinfra.NewCheckoutGuard(rdb)

	authService := service.NewAuthService(userRepo, jwtSecret)
	catalogService := service.NewCatalogService(productRepo, userRepo, blobs, log)
	cartService := service.NewCartService(userRepo, productRepo, orderRepo, guard, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService, blobs)
	productHandler := handler.NewProductHandler(catalogService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(cartService)

	authRequired := middleware.Auth(jwtSecret)
	sellerOnly := middleware.RequireActiveRole(domain.RoleSeller)
	uploadLimit := echomiddleware.BodyLimit(uploadBodyLimit)

	// --- Auth ---
	api := e.Group("/api")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	// --- User profile and roles ---
	user := api.Group("/user", authRequired)
	user.PUT("/apply-seller", userHandler.ApplySeller)
	user.PUT("/switch-role", userHandler.SwitchRole)
	user.PUT("/profile-picture", userHandler.UploadProfilePicture, uploadLimit)
	user.PUT("/banner-picture", userHandler.UploadBannerPicture, uploadLimit)

	// --- Catalog ---
	api.GET("/products", productHandler.List)
	api.GET("/products/my-products", productHandler.ListMine, authRequired)
	api.GET("/products/:id", productHandler.Get)
	api.POST("/products", productHandler.Create, authRequired, sellerOnly, uploadLimit)
	api.PUT("/products/:id", productHandler.Update, authRequired)
	api.DELETE("/products/:id", productHandler.Delete, authRequired)

	// --- Cart and orders ---
	cart := api.Group("/cart", authRequired)
	cart.POST("/add", cartHandler.Add)
	cart.GET("", cartHandler.List)
	cart.DELETE("/remove/:productId", cartHandler.Remove)

	orders := api.Group("/orders", authRequired)
	orders.POST("/create", orderHandler.Checkout)
	orders.GET("/my-orders", orderHandler.ListMine)

	// --- Uploaded assets (disk backend only; MinIO serves its own URLs) ---
	if disk, ok := blobs.(*storage.DiskStore); ok {
		e.Static(disk.PublicPrefix(), disk.Dir())
	}

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
