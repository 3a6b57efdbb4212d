package middleware

import (
	"log"
	"strconv"
	"sync"
	"time"

	"marketplace/internal/apperror"

	"github.com/go-redis/redis_rate/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const rateLimitMessage = "Too many requests, please try again later."

// RateLimit allows max requests per window for each client IP. Counters live
// in Redis when rdb is set so every instance shares them; otherwise each
// process keeps its own.
func RateLimit(rdb *redis.Client, max int, window time.Duration) fiber.Handler {
	if rdb != nil {
		return redisRateLimit(redis_rate.NewLimiter(rdb), max, window)
	}
	return localRateLimit(max, window)
}

func redisRateLimit(limiter *redis_rate.Limiter, max int, window time.Duration) fiber.Handler {
	limit := redis_rate.Limit{Rate: max, Burst: max, Period: window}
	return func(c *fiber.Ctx) error {
		res, err := limiter.Allow(c.UserContext(), "rate:"+c.Path()+":"+c.IP(), limit)
		if err != nil {
			// Redis unavailable: let the request through.
			log.Printf("Rate limiter error: %v", err)
			return c.Next()
		}
		c.Set("RateLimit-Limit", strconv.Itoa(max))
		c.Set("RateLimit-Remaining", strconv.Itoa(res.Remaining))
		if res.Allowed == 0 {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(res.RetryAfter.Seconds()+0.5)))
			return apperror.NewRateLimited(rateLimitMessage)
		}
		return c.Next()
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func localRateLimit(max int, window time.Duration) fiber.Handler {
	var (
		mu        sync.Mutex
		visitors  = make(map[string]*visitor)
		lastSweep = time.Now()
	)
	every := rate.Every(window / time.Duration(max))

	return func(c *fiber.Ctx) error {
		now := time.Now()
		key := c.Path() + ":" + c.IP()

		mu.Lock()
		if now.Sub(lastSweep) > window {
			for k, v := range visitors {
				if now.Sub(v.lastSeen) > window {
					delete(visitors, k)
				}
			}
			lastSweep = now
		}
		v, ok := visitors[key]
		if !ok {
			v = &visitor{limiter: rate.NewLimiter(every, max)}
			visitors[key] = v
		}
		v.lastSeen = now
		allowed := v.limiter.AllowN(now, 1)
		mu.Unlock()

		c.Set("RateLimit-Limit", strconv.Itoa(max))
		if !allowed {
			return apperror.NewRateLimited(rateLimitMessage)
		}
		return c.Next()
	}
}
