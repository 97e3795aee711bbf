package router

import (
	"github.com/gin-gonic/gin"

	"investco/internal/config"
	"investco/internal/handler"
	"investco/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	investmentH *handler.InvestmentHandler,
	statementH *handler.StatementHandler,
	auditH *handler.AuditHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Investment registry
	investments := v1.Group("/investments")
	investments.POST("", investmentH.Create)
	investments.GET("", investmentH.List)
	investments.GET("/:id", investmentH.GetByID)
	investments.PUT("/:id", investmentH.Update)
	investments.DELETE("/:id", investmentH.Delete)
	investments.GET("/:id/ledger", investmentH.Ledger)

	// Statement pipeline
	investments.POST("/:id/statements/parse", statementH.Parse)
	investments.GET("/:id/statements", statementH.History)

	// Pending reviews
	reviews := v1.Group("/reviews")
	reviews.POST("/:id/confirm", statementH.Confirm)
	reviews.DELETE("/:id", statementH.Discard)

	// Statements
	statements := v1.Group("/statements")
	statements.GET("/:id", statementH.GetByID)
	statements.DELETE("/:id", statementH.Delete)

	// Continuity audit and exports
	investments.GET("/:id/gaps", auditH.Gaps)
	investments.GET("/:id/export/csv", auditH.ExportCSV)
	investments.GET("/:id/export/xlsx", auditH.ExportXLSX)

	return r
}
