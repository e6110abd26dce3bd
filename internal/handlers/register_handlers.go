package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/workexpress/wx_backend/cmd/docs"
	portssvc "github.com/workexpress/wx_backend/internal/core/ports/services"
	"github.com/workexpress/wx_backend/internal/middleware"
	"github.com/workexpress/wx_backend/internal/platform/config"
)

// carrierRateLimit bounds how often one client may hit the carrier-backed
// routes. One search can fan out into dozens of carrier calls, so this is
// deliberately tight.
var carrierRateLimit = limiter.Rate{
	Period: time.Minute,
	Limit:  30,
}

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	jobs JobReporter,
) {
	registerHomeRoutes(r, jobs)
	registerAuthRoutes(r, services.Auth)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupAPIV1Routes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the entity
// route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerCashClosureRoutes(v1, services.CashClosure)

	// Carrier-backed routes get a per-IP rate limit on top of auth.
	carrierLimiter := limiter.New(memory.NewStore(), carrierRateLimit)
	cargoGroup := v1.Group("", middleware.RateLimit(carrierLimiter))
	registerCargoRoutes(cargoGroup, services.Cargo, services.Tracking)
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
