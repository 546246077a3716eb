package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/prestadero/lending-backend/internal/core/ports/services"
	"github.com/prestadero/lending-backend/internal/middleware"
	"github.com/prestadero/lending-backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", healthCheck)

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Every v1 request carries the acting operator for audit fields.
	v1 := r.Group("/api/v1", middleware.ActorMiddleware())

	registerLoanRoutes(v1, services.Loan, services.Schedule, services.Payment, services.Penalty)
	registerLedgerRoutes(v1, services.Ledger)
}
