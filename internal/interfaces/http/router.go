package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/zonafranca-api/internal/application/auth"
	appledger "github.com/jhoicas/zonafranca-api/internal/application/ledger"
	"github.com/jhoicas/zonafranca-api/internal/application/usecase"
	"github.com/jhoicas/zonafranca-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC    *appledger.LedgerUseCase
	QueryUC     *appledger.LotQueryUseCase
	ReconcileUC *appledger.ReconcileUseCase
	PartUC      *usecase.PartUseCase
	CustomerUC  *usecase.CustomerUseCase
	LocationUC  *usecase.LocationUseCase
	AuditUC     *usecase.AuditUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Los auditores son solo lectura; las mutaciones requieren admin u operador
	canWrite := RequireRole(entity.RoleAdmin, entity.RoleOperador)

	// Lots: el libro mayor (protegido)
	lots := protected.Group("/lots")
	lotHandler := NewLotHandler(deps.LedgerUC, deps.QueryUC, deps.ReconcileUC)
	lots.Post("/", canWrite, lotHandler.Admit)
	lots.Get("/", lotHandler.List)
	lots.Get("/:id", lotHandler.GetByID)
	lots.Post("/:id/adjust", canWrite, lotHandler.Adjust)
	lots.Post("/:id/void", canWrite, lotHandler.Void)
	lots.Post("/:id/status", canWrite, lotHandler.ChangeStatus)
	lots.Post("/:id/reconcile", RequireRole(entity.RoleAdmin), lotHandler.Reconcile)
	lots.Get("/:id/transactions", lotHandler.ListTransactions)
	lots.Get("/:id/status-history", lotHandler.ListStatusHistory)
	lots.Get("/:id/certificate", lotHandler.Certificate)

	// Parts: catálogo de referencias (protegido)
	parts := protected.Group("/parts")
	partHandler := NewPartHandler(deps.PartUC)
	parts.Post("/", canWrite, partHandler.Create)
	parts.Get("/", partHandler.List)
	parts.Get("/:id", partHandler.GetByID)

	// Customers: importadores (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", canWrite, customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	// Locations: ubicaciones de almacenamiento (protegido)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", canWrite, locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)

	// Audit trail (solo admin y auditor)
	audit := protected.Group("/audit", RequireRole(entity.RoleAdmin, entity.RoleAuditor))
	auditHandler := NewAuditHandler(deps.AuditUC)
	audit.Get("/", auditHandler.List)
	audit.Get("/lots/:id", auditHandler.ListByLot)
}
