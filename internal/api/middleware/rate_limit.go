package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jdwhitaker/dfs-portfolio/pkg/utils"
)

// RateLimit caps optimize throughput for the whole process. Solves are CPU
// heavy, so a small global budget protects latency for everyone.
func RateLimit(rps int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), rps*2)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			utils.SendError(c, http.StatusTooManyRequests,
				utils.NewAppError(utils.ErrCodeRateLimited, "too many optimization requests, slow down"))
			c.Abort()
			return
		}
		c.Next()
	}
}
