package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	redis *redis.Client
}

func NewHealthHandler(redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{redis: redisClient}
}

// GetHealth is the liveness probe: 200 whenever the server is running.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"service":   "dfs-portfolio",
	})
}

// GetReady reports readiness, including the cache connection. Optimization
// still works without redis, so a cache failure is reported but not fatal.
func (h *HealthHandler) GetReady(c *gin.Context) {
	cacheStatus := "ok"
	if h.redis != nil {
		if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
			cacheStatus = "unavailable"
		}
	} else {
		cacheStatus = "disabled"
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"cache":  cacheStatus,
	})
}
