package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/auditoria-precios/internal/application/audit"
	"github.com/jhoicas/auditoria-precios/internal/application/usecase"
	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	BulkPriceUC *usecase.BulkPriceUseCase
	ImportUC    *usecase.ImportUseCase
	PriceListUC *usecase.PriceListUseCase
	ReportUC    *audit.ReportUseCase
	AlertUC     *audit.AlertUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	admin := RequireRole(entity.RoleAdmin)

	auditHandler := NewPriceAuditHandler(deps.ReportUC)
	changes := api.Group("/price-changes")
	changes.Get("/", auditHandler.List)
	changes.Get("/export", auditHandler.Export)

	productHandler := NewProductHandler(deps.ProductUC, deps.BulkPriceUC, deps.ImportUC)
	products := api.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	// Rutas fijas antes de /:id
	products.Post("/prices/bulk", admin, productHandler.BulkUpdate)
	products.Post("/prices/import", admin, productHandler.Import)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id/price", productHandler.UpdatePrice)
	products.Get("/:id/price-history", auditHandler.History)

	listHandler := NewPriceListHandler(deps.PriceListUC)
	lists := api.Group("/price-lists")
	lists.Post("/", listHandler.Create)
	lists.Get("/", listHandler.List)
	lists.Get("/:id/items", listHandler.Items)
	lists.Put("/:id/items/:productId", listHandler.SetItemPrice)

	alertHandler := NewPriceAlertHandler(deps.AlertUC)
	alerts := api.Group("/price-alerts")
	alerts.Get("/", alertHandler.List)
	alerts.Get("/settings", alertHandler.GetSettings)
	alerts.Put("/settings", admin, alertHandler.UpdateSettings)
	alerts.Patch("/:id/read", alertHandler.MarkRead)
}
