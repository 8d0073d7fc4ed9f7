package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jdwhitaker/dfs-portfolio/internal/api/handlers"
	"github.com/jdwhitaker/dfs-portfolio/internal/api/middleware"
	"github.com/jdwhitaker/dfs-portfolio/pkg/cache"
	"github.com/jdwhitaker/dfs-portfolio/pkg/config"
)

// SetupRoutes configures all API routes on the given router group.
func SetupRoutes(group *gin.RouterGroup, cacheService *cache.Service, cfg *config.Config) {
	optimizeHandler := handlers.NewOptimizeHandler(cacheService, cfg)

	optimize := group.Group("/optimize")
	optimize.Use(middleware.RateLimit(cfg.RateLimitRPS))
	{
		optimize.POST("", optimizeHandler.Optimize)
		optimize.POST("/validate", optimizeHandler.Validate)
		optimize.GET("/presets", optimizeHandler.Presets)
	}
}
