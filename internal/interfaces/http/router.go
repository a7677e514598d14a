package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mdc-pro/mdcpro-api/internal/application/analytics"
	"github.com/mdc-pro/mdcpro-api/internal/application/auth"
	"github.com/mdc-pro/mdcpro-api/internal/application/billing"
	"github.com/mdc-pro/mdcpro-api/internal/application/usecase"
	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
	"github.com/mdc-pro/mdcpro-api/internal/infrastructure/blob"
	"github.com/mdc-pro/mdcpro-api/internal/infrastructure/realtime"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ClientUC       *usecase.ClientUseCase
	OrderUC        *billing.OrderUseCase
	InvoiceUC      *billing.InvoiceUseCase
	InvoicePDFUC   *billing.PDFUseCase
	InventoryUC    *usecase.InventoryUseCase
	ExpenseUC      *usecase.ExpenseUseCase
	MessageUC      *usecase.MessageUseCase
	NotificationUC *usecase.NotificationUseCase
	AnalyticsUC    *analytics.UseCase
	Hub            *realtime.Hub
	UploadsDir     string
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Archivos subidos (avatares) se sirven estáticos
	app.Static(blob.URLPrefix, deps.UploadsDir)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Perfil del usuario autenticado
	clientHandler := NewClientHandler(deps.ClientUC)
	profile := protected.Group("/profile")
	profile.Get("/", clientHandler.Profile)
	profile.Put("/", clientHandler.UpdateProfile)
	profile.Post("/avatar", clientHandler.UploadAvatar)
	profile.Post("/pets", clientHandler.AddPet)
	profile.Get("/pets", clientHandler.ListPets)
	profile.Delete("/pets/:id", clientHandler.DeletePet)

	// CRM de cuentas (solo admin)
	clients := protected.Group("/clients", adminOnly)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Patch("/:id/status", clientHandler.UpdateStatus)
	clients.Delete("/:id", clientHandler.Delete)

	// Pedidos
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/quote", orderHandler.Quote)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Patch("/:id/status", adminOnly, orderHandler.UpdateStatus)

	// Facturación (solo admin)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoicePDFUC)
	orders.Post("/:id/invoice", adminOnly, invoiceHandler.CreateFromOrder)
	invoices := protected.Group("/invoices", adminOnly)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Post("/:id/pay", invoiceHandler.MarkPaid)
	invoices.Delete("/:id", invoiceHandler.Delete)

	// Inventario (solo admin)
	inventory := protected.Group("/inventory", adminOnly)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inventory.Get("/", inventoryHandler.List)
	inventory.Get("/:id", inventoryHandler.GetByID)
	inventory.Post("/", inventoryHandler.Create)
	inventory.Put("/:id", inventoryHandler.Update)
	inventory.Delete("/:id", inventoryHandler.Delete)

	// Gastos (solo admin)
	expenses := protected.Group("/expenses", adminOnly)
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Get("/", expenseHandler.List)
	expenses.Post("/", expenseHandler.Create)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Delete("/:id", expenseHandler.Delete)

	// Mensajería
	messages := protected.Group("/messages")
	messageHandler := NewMessageHandler(deps.MessageUC, deps.Hub)
	messages.Post("/", messageHandler.Send)
	messages.Get("/", messageHandler.Conversation)
	messages.Get("/all", adminOnly, messageHandler.ListAll)
	messages.Get("/stream", messageHandler.Stream)

	// Notificaciones
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Post("/read-all", notificationHandler.MarkAllRead)
	notifications.Post("/:id/read", notificationHandler.MarkRead)

	// Analítica (solo admin)
	analyticsGroup := protected.Group("/analytics", adminOnly)
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analyticsGroup.Get("/dashboard", analyticsHandler.Dashboard)
	analyticsGroup.Get("/revenue", analyticsHandler.RevenueReport)
	analyticsGroup.Post("/tax-estimate", analyticsHandler.TaxEstimate)
}
