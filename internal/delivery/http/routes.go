package http

import (
	"github.com/gin-gonic/gin"
	"github.com/macrotrack/backend/config"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the Gin router. A nil limiter disables
// per-client rate limiting
func SetupRouter(cfg *config.Config, handler *Handler, limiter RateLimiter, logger *zap.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	if limiter != nil {
		v1.Use(RateLimitMiddleware(limiter, logger))
	}
	{
		foodItems := v1.Group("/food-items")
		{
			foodItems.GET("", handler.ListFoodItems)
			foodItems.GET("/meal", handler.ListFoodItemsByMeal)
			foodItems.GET("/summary", handler.DailySummary)
			foodItems.POST("", handler.CreateFoodItem)
			foodItems.POST("/from-search", handler.LogFromSearch)
			foodItems.DELETE("/:id", handler.DeleteFoodItem)
		}

		goals := v1.Group("/user-goals")
		{
			goals.GET("/:userId", handler.GetUserGoals)
			goals.POST("", handler.UpsertUserGoals)
			goals.PATCH("/:userId", handler.PatchUserGoals)
		}

		// USDA proxy
		nutrition := v1.Group("/nutrition")
		{
			nutrition.GET("/search", handler.SearchNutrition)
			nutrition.GET("/food/:fdcId", handler.GetNutritionFood)
		}

		foods := v1.Group("/foods")
		{
			foods.GET("/search", handler.SearchFoods)
			foods.GET("/serving", handler.ServingPreview)
		}

		indianFoods := v1.Group("/indian-foods")
		{
			indianFoods.GET("", handler.ListIndianFoods)
			indianFoods.GET("/search", handler.SearchIndianFoods)
			indianFoods.GET("/:id", handler.GetIndianFood)
			indianFoods.POST("", handler.CreateIndianFood)
			indianFoods.POST("/batch", handler.CreateIndianFoodBatch)
		}

		customFoods := v1.Group("/custom-foods")
		{
			customFoods.GET("", handler.ListCustomFoods)
			customFoods.GET("/search", handler.SearchCustomFoods)
			customFoods.GET("/:id", handler.GetCustomFood)
			customFoods.POST("", handler.CreateCustomFood)
			customFoods.DELETE("/:id", handler.DeleteCustomFood)
		}

		water := v1.Group("/water-intake")
		{
			water.GET("", handler.GetWaterIntake)
			water.POST("", handler.UpsertWaterIntake)
			water.PATCH("/:id", handler.PatchWaterIntake)
		}
	}

	return router
}
