package handlers

import (
	"github.com/delux1000/deluxwallet/internal/core/services"
	"github.com/delux1000/deluxwallet/internal/integrations/ecb"
	"github.com/delux1000/deluxwallet/internal/middleware"
	"github.com/delux1000/deluxwallet/internal/platform/config"
	"github.com/delux1000/deluxwallet/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	svc *services.Container,
	limiterInstance *limiter.Limiter,
	posthogClient *utils.PosthogClientWrapper,
	ecbClient *ecb.Client,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, cfg, svc)

	// Public reference-rate feed
	registerRatesRoutes(r, ecbClient)

	// Setup API v1 routes behind auth, rate limiting and analytics
	setupAPIV1Routes(r, cfg, svc, limiterInstance, posthogClient)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	svc *services.Container,
	limiterInstance *limiter.Limiter,
	posthogClient *utils.PosthogClientWrapper,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.RateLimit(limiterInstance),
		middleware.PosthogMiddleware(posthogClient),
	)

	// Delegate route registration to specific handlers, passing required services
	registerAccountRoutes(v1, svc.Ledger)
	registerLedgerRoutes(v1, svc.Ledger)
	registerCardRoutes(v1, svc.Cards)
	registerInvestmentRoutes(v1, svc.Investment, svc.Sweeper)
}
