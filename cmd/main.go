package main

import (
	"net/http"

	"jebella-admin/internal/handler"
	mid "jebella-admin/internal/middleware"
	"jebella-admin/internal/storage"
	"jebella-admin/pkg/config"
	"jebella-admin/pkg/database"
	"jebella-admin/pkg/jwtutil"
	"jebella-admin/pkg/logger"
	"jebella-admin/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting jebella-admin",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Seed the bootstrap admin account on an empty database
	if err := database.SeedAdmin(appConfig); err != nil {
		log.Fatal("Failed to seed admin account", zap.Error(err))
	}

	// Initialize object storage for uploaded images
	handler.SetStore(storage.NewStore(
		appConfig.Storage.Dir,
		appConfig.Storage.BaseURL,
		appConfig.Storage.MaxUploadSize))
	log.Info("Object storage initialized", zap.String("dir", appConfig.Storage.Dir))

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Stored images are served from the storage directory
	e.Static(appConfig.Storage.BaseURL, appConfig.Storage.Dir)

	// Auth routes
	auth := e.Group("/api/auth")
	auth.POST("/login", handler.Login)
	auth.GET("/me", handler.Me, mid.AuthMiddleware)
	auth.POST("/logout", handler.Logout, mid.AuthMiddleware)
	auth.POST("/password", handler.UpdatePassword, mid.AuthMiddleware)
	auth.POST("/invite", handler.InviteSeller, mid.AuthMiddleware, mid.RequireAdmin)

	// Notifications are visible to any signed-in account
	e.GET("/api/notifications", handler.ListNotifications, mid.AuthMiddleware)
	e.DELETE("/api/notifications/:id", handler.DismissNotification, mid.AuthMiddleware)

	// Admin area - taxonomy management and seller accounts
	admin := e.Group("/api", mid.AuthMiddleware, mid.RequireAdmin)

	brands := admin.Group("/brands")
	brands.GET("", handler.ListBrands)
	brands.GET("/:id", handler.GetBrand)
	brands.POST("", handler.CreateBrand)
	brands.PUT("/:id", handler.UpdateBrand)
	brands.DELETE("/:id", handler.DeleteBrand)

	categories := admin.Group("/categories")
	categories.GET("", handler.ListCategories)
	categories.GET("/:id", handler.GetCategory)
	categories.POST("", handler.CreateCategory)
	categories.PUT("/:id", handler.UpdateCategory)
	categories.DELETE("/:id", handler.DeleteCategory)

	subcategories := admin.Group("/subcategories")
	subcategories.GET("", handler.ListSubcategories)
	subcategories.GET("/:id", handler.GetSubcategory)
	subcategories.POST("", handler.CreateSubcategory)
	subcategories.PUT("/:id", handler.UpdateSubcategory)
	subcategories.DELETE("/:id", handler.DeleteSubcategory)

	audiences := admin.Group("/audiences")
	audiences.GET("", handler.ListAudiences)
	audiences.GET("/:id", handler.GetAudience)
	audiences.POST("", handler.CreateAudience)
	audiences.PUT("/:id", handler.UpdateAudience)
	audiences.DELETE("/:id", handler.DeleteAudience)

	colors := admin.Group("/colors")
	colors.GET("", handler.ListColors)
	colors.GET("/:id", handler.GetColor)
	colors.POST("", handler.CreateColor)
	colors.PUT("/:id", handler.UpdateColor)
	colors.DELETE("/:id", handler.DeleteColor)

	sizes := admin.Group("/sizes")
	sizes.GET("", handler.ListSizes)
	sizes.GET("/:id", handler.GetSize)
	sizes.POST("", handler.CreateSize)
	sizes.PUT("/:id", handler.UpdateSize)
	sizes.DELETE("/:id", handler.DeleteSize)

	sellers := admin.Group("/sellers")
	sellers.GET("", handler.ListSellers)
	sellers.GET("/:id", handler.GetSeller)
	sellers.POST("", handler.CreateSeller)
	sellers.PUT("/:id", handler.UpdateSeller)
	sellers.DELETE("/:id", handler.DeleteSeller)

	uploads := admin.Group("/uploads")
	uploads.POST("/:bucket", handler.UploadImage)
	uploads.DELETE("/:bucket/:name", handler.RemoveImage)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
