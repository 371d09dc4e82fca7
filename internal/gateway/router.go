package gateway

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/api"
	"github.com/nekogravitycat/shareit-backend/internal/identity"
	"github.com/nekogravitycat/shareit-backend/internal/metrics"
)

// Config carries the dependencies the gateway router needs.
type Config struct {
	IsProduction bool
	Logger       *zerolog.Logger
	Proxy        *Proxy
	Limiter      *RateLimiter
}

// NewRouter builds the gateway engine. Every route validates what it can
// locally and then forwards to the backing server.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(api.RequestLogger(cfg.Logger))

	metrics.Register()
	r.Use(metrics.Middleware())

	if cfg.Limiter != nil {
		r.Use(cfg.Limiter.Middleware())
	}

	forward := cfg.Proxy.Forward

	users := r.Group("/users")
	{
		users.POST("", validateUserCreateBody, forward)
		users.GET("", forward)
		users.GET("/:id", validatePositiveID("id"), forward)
		users.PATCH("/:id", validatePositiveID("id"), forward)
		users.DELETE("/:id", validatePositiveID("id"), forward)
	}

	items := r.Group("/items")
	items.Use(identity.Required())
	{
		items.POST("", validateItemCreateBody, forward)
		items.GET("", validatePaging, forward)
		items.GET("/search", validatePaging, forward)
		items.GET("/:id", validatePositiveID("id"), forward)
		items.PATCH("/:id", validatePositiveID("id"), forward)
		items.POST("/:id/comment", validatePositiveID("id"), forward)
	}

	bookings := r.Group("/bookings")
	bookings.Use(identity.Required())
	{
		bookings.POST("", validateBookingBody, forward)
		bookings.GET("", validateBookingState, validatePaging, forward)
		bookings.GET("/owner", validateBookingState, validatePaging, forward)
		bookings.GET("/:id", validatePositiveID("id"), forward)
		bookings.PATCH("/:id", validatePositiveID("id"), validateApproved, forward)
	}

	requests := r.Group("/requests")
	requests.Use(identity.Required())
	{
		requests.POST("", forward)
		requests.GET("", forward)
		requests.GET("/all", validatePaging, forward)
		requests.GET("/:id", validatePositiveID("id"), forward)
	}

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	return r
}
