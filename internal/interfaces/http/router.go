package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Clinivet-api/internal/application/auth"
	"github.com/jhoicas/Clinivet-api/internal/application/stock"
	"github.com/jhoicas/Clinivet-api/internal/application/usecase"
	"github.com/jhoicas/Clinivet-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *usecase.ProductUseCase
	SupplierUC *usecase.SupplierUseCase
	ClientUC   *usecase.ClientUseCase
	PetUC      *usecase.PetUseCase
	LedgerUC   *stock.LedgerUseCase
	SummaryUC  *stock.SummaryUseCase
	JWTSecret  string
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

	// Products (protegido). Las rutas fijas van antes de /:id.
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/barcode/:code", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Stock movements (protegido). La reversión es solo para admin.
	movements := protected.Group("/stock-movements")
	stockHandler := NewStockHandler(deps.LedgerUC, deps.SummaryUC)
	movements.Post("/", stockHandler.Create)
	movements.Post("/entry", stockHandler.CreateEntry)
	movements.Post("/sale", stockHandler.CreateSale)
	movements.Post("/internal-use", stockHandler.CreateInternalUse)
	movements.Get("/", stockHandler.List)
	movements.Get("/summary", stockHandler.Summary)
	movements.Delete("/:id", RequireRole(entity.RoleAdmin), stockHandler.Delete)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", RequireRole(entity.RoleAdmin), supplierHandler.Delete)

	// Clients (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", RequireRole(entity.RoleAdmin), clientHandler.Delete)

	// Pets (protegido)
	pets := protected.Group("/pets")
	petHandler := NewPetHandler(deps.PetUC)
	pets.Post("/", petHandler.Create)
	pets.Get("/", petHandler.List)
	pets.Get("/:id", petHandler.GetByID)
	pets.Put("/:id", petHandler.Update)
	pets.Delete("/:id", RequireRole(entity.RoleAdmin), petHandler.Delete)
}
