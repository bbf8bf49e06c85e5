package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/application/usecase"
	"github.com/jhoicas/stockmaster-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MoveUC        *inventory.MoveUseCase
	StockUC       *inventory.StockUseCase
	Replenishment *inventory.ReplenishmentUseCase
	ProductUC     *usecase.ProductUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	JWTSecret     string
	Log           zerolog.Logger
}

// Router registra las rutas de la API. Todo requiere Bearer Token; las escrituras, rol admin o bodeguero.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestLogger(deps.Log))

	protected := app.Group("/", AuthMiddleware(deps.JWTSecret))
	readers := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero, jwt.RoleAuditor)
	writers := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero)

	// Movimientos de stock
	moves := protected.Group("/operations/moves")
	moveHandler := NewMoveHandler(deps.MoveUC)
	moves.Post("/", writers, moveHandler.Create)
	moves.Get("/", readers, moveHandler.List)
	moves.Get("/:id", readers, moveHandler.GetByID)
	moves.Post("/:id/status", writers, moveHandler.ChangeStatus)
	moves.Post("/:id/validate", writers, moveHandler.Validate)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.StockUC)
	products.Post("/", writers, productHandler.Create)
	products.Get("/", readers, productHandler.List)
	products.Get("/:id", readers, productHandler.GetByID)
	products.Get("/:id/stock", readers, productHandler.Stock)
	products.Put("/:id", writers, productHandler.Update)
	products.Delete("/:id", RequireRole(jwt.RoleAdmin), productHandler.Delete)

	// Warehouses
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", writers, warehouseHandler.Create)
	warehouses.Get("/", readers, warehouseHandler.List)
	warehouses.Get("/:id", readers, warehouseHandler.GetByID)
	warehouses.Put("/:id", writers, warehouseHandler.Update)
	warehouses.Delete("/:id", RequireRole(jwt.RoleAdmin), warehouseHandler.Delete)

	// Inventory
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Replenishment)
	invGroup.Get("/low-stock", readers, inventoryHandler.LowStock)
}
