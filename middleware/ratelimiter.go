package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimiter limits requests per client IP. The public confirmation
// endpoint is the main reason this exists: codes are guessable enough
// that unthrottled probing is not acceptable.
func RateLimiter() gin.HandlerFunc {
	store := memory.NewStore()
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  100,
	}

	instance := limiter.New(store, rate)

	return ginlimiter.NewMiddleware(instance)
}
