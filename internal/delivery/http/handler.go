package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/macrotrack/backend/internal/logger"
	"github.com/macrotrack/backend/internal/usecase"
	"go.uber.org/zap"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// PingFunc checks a backing store
type PingFunc func(ctx context.Context) error

// Services bundles the use cases the handlers call
type Services struct {
	Nutrition *usecase.NutritionService
	Search    *usecase.SearchService
	Resolver  *usecase.FoodResolver
	FoodLog   *usecase.FoodLogService
	Goals     *usecase.GoalService
	Water     *usecase.WaterService
	Catalog   *usecase.CatalogService
	// Ping checks the database for /health; nil skips the check
	Ping PingFunc
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	nutrition *usecase.NutritionService
	search    *usecase.SearchService
	resolver  *usecase.FoodResolver
	foodLog   *usecase.FoodLogService
	goals     *usecase.GoalService
	water     *usecase.WaterService
	catalog   *usecase.CatalogService
	ping      PingFunc
	logger    *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(services Services, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		nutrition: services.Nutrition,
		search:    services.Search,
		resolver:  services.Resolver,
		foodLog:   services.FoodLog,
		goals:     services.Goals,
		water:     services.Water,
		catalog:   services.Catalog,
		ping:      services.Ping,
		logger:    log,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	status, code, database := "healthy", http.StatusOK, "skipped"

	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		database = "up"
		if err := h.ping(ctx); err != nil {
			h.logger.Error("database health check failed", zap.Error(err))
			status, code, database = "unhealthy", http.StatusServiceUnavailable, "down"
		}
	}

	c.JSON(code, gin.H{
		"status":   status,
		"service":  logger.ServiceName,
		"version":  Version,
		"database": database,
	})
}
