package http

import (
	"github.com/gin-gonic/gin"
	"github.com/nutriscope/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		search := v1.Group("/search")
		{
			search.GET("/ingredients", handler.SearchIngredients)
			search.GET("/foods", handler.SearchFoodsAndDrinks)
			search.POST("/advanced", handler.AdvancedSearch)
		}

		v1.GET("/barcode/:code", handler.LookupBarcode)
		v1.GET("/items/:id", handler.GetItemByID)
		v1.POST("/products", handler.UploadProduct)
		v1.POST("/nutrition/summary", handler.NutritionSummary)

		energy := v1.Group("/energy")
		{
			energy.POST("/targets", handler.EnergyTargets)
			energy.POST("/adjust", handler.AdjustMacro)
		}

		v1.POST("/cache/clear", handler.ClearCaches)
		v1.GET("/status", handler.ServiceStatus)
	}

	return router
}
