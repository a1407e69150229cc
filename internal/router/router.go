package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cinema-box-office/internal/config"
	"github.com/iliyamo/cinema-box-office/internal/handler"
	"github.com/iliyamo/cinema-box-office/internal/middleware"
)

// RegisterRoutes registers routes that carry no business logic on the
// provided Echo instance. Currently it exposes only a health check,
// which load balancers and monitoring can use to verify the service
// is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI wires the booking API under /v1. The public browse
// endpoints for films and showings go through the Redis response
// cache; the purchase endpoint goes through the rate limiter. Seat
// availability and recommendations are deliberately uncached: the
// former changes with every hold and the latter mutates view counts.
// Both middlewares degrade to pass-throughs when rdb is nil.
func RegisterAPI(e *echo.Echo, admin *handler.AdminHandler, public *handler.PublicHandler, purchase *handler.PurchaseHandler, rdb *redis.Client, rlCfg config.RateLimitConfig, cacheCfg config.CacheConfig) {
	cached := middleware.NewRedisCache(cacheCfg, rdb)
	limited := middleware.NewTokenBucket(rlCfg, rdb)

	v1 := e.Group("/v1")

	// Catalog registry mutators.
	v1.POST("/films", admin.CreateFilm)
	v1.POST("/showings", admin.CreateShowing)

	// Public browse surface.
	v1.GET("/films", public.ListFilms, cached)
	v1.GET("/showings", public.ListShowings, cached)
	v1.GET("/showings/:id/seats", public.GetShowingSeats)
	v1.GET("/recommendations", public.Recommend)

	// Purchase entry point.
	v1.POST("/showings/:id/purchase", purchase.Purchase, limited)
}
