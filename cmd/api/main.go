package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	appanalytics "github.com/mdc-pro/mdcpro-api/internal/application/analytics"
	"github.com/mdc-pro/mdcpro-api/internal/application/auth"
	"github.com/mdc-pro/mdcpro-api/internal/application/billing"
	"github.com/mdc-pro/mdcpro-api/internal/application/usecase"
	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
	"github.com/mdc-pro/mdcpro-api/internal/domain/reporting"
	"github.com/mdc-pro/mdcpro-api/internal/domain/repository"
	"github.com/mdc-pro/mdcpro-api/internal/infrastructure/blob"
	"github.com/mdc-pro/mdcpro-api/internal/infrastructure/email"
	"github.com/mdc-pro/mdcpro-api/internal/infrastructure/localstore"
	"github.com/mdc-pro/mdcpro-api/internal/infrastructure/payment"
	infrapdf "github.com/mdc-pro/mdcpro-api/internal/infrastructure/pdf"
	"github.com/mdc-pro/mdcpro-api/internal/infrastructure/postgres"
	"github.com/mdc-pro/mdcpro-api/internal/infrastructure/realtime"
	"github.com/mdc-pro/mdcpro-api/internal/infrastructure/record"
	"github.com/mdc-pro/mdcpro-api/internal/infrastructure/store"
	httpRouter "github.com/mdc-pro/mdcpro-api/internal/interfaces/http"
	"github.com/mdc-pro/mdcpro-api/pkg/config"
	"github.com/mdc-pro/mdcpro-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := postgres.UpMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones de base de datos")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Cache local de respaldo (stoolap embebido): las vistas de listado
	// siguen respondiendo cuando el remoto está caído.
	cache, err := localstore.Open(cfg.Cache.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir cache local")
	}
	defer cache.Close()

	avatars, err := blob.NewDiskStore(cfg.Blob.BaseDir, cfg.HTTP.PublicURL)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de archivos")
	}
	mailer := email.NewMailer(cfg.SMTP, log)
	payments := payment.NewClient(cfg.Payment, log)

	// Repositorios
	clientRepo := postgres.NewClientRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	messageRepo := postgres.NewMessageRepository(pool)
	notifRepo := postgres.NewNotificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Colecciones con respaldo local (remoto autoritativo, cache oportunista)
	inventoryCol := store.NewCollection("inventory", cache, log,
		record.InventoryItemToRow, record.InventoryItemFromRow)
	expenseCol := store.NewCollection("expenses", cache, log,
		record.ExpenseToRow, record.ExpenseFromRow)
	invoiceCol := store.NewCollection("invoices", cache, log,
		record.InvoiceToRow, record.InvoiceFromRow)

	// Hub de mensajería en tiempo real: LISTEN sobre el canal NOTIFY que
	// alimenta el repositorio de mensajes, con reconexión automática.
	hub := realtime.NewHub(cfg.DB.ConnectionString(), postgres.MessagesChannel, log)
	go hub.Listen(ctx)

	// Casos de uso
	notificationUC := usecase.NewNotificationUseCase(notifRepo)
	authUC := auth.NewAuthUseCase(clientRepo, notificationUC, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	clientUC := usecase.NewClientUseCase(clientRepo, notifRepo, avatars, mailer, log)
	orderUC := billing.NewOrderUseCase(orderRepo, clientRepo, txRunner, payments, log)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, orderRepo, txRunner, log)
	inventoryUC := usecase.NewInventoryUseCase(inventoryRepo, inventoryCol, log)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, expenseCol, log)
	messageUC := usecase.NewMessageUseCase(messageRepo, notifRepo, clientRepo, log)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(infrapdf.CompanyInfo{
		Name:    "MDC PRO",
		Address: "Unit 4, Riverside Trading Estate, London",
		Phone:   "+44 20 7946 0958",
		Email:   "facturacion@mdcpro.co.uk",
	})
	invoicePDFUC := billing.NewPDFUseCase(invoiceRepo, pdfGenerator)

	catalog := reporting.NewCatalog(
		[]string{"Snack de pollo", "Snack de res", "Snack mixto", "Snack de cordero"},
		[]string{"Peluquería canina", "Baño y corte", "Corte de uñas"},
	)
	analyticsUC := appanalytics.NewUseCase(
		invoiceCol, expenseCol,
		invoiceRepo, expenseRepo, orderRepo, clientRepo, inventoryRepo, notifRepo,
		catalog, log,
	)

	// Admin inicial (solo si no existe ninguna cuenta admin)
	seedAdmin(ctx, clientRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    10 * 1024 * 1024, // avatares e imágenes de producto
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "MDC PRO API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ClientUC:       clientUC,
		OrderUC:        orderUC,
		InvoiceUC:      invoiceUC,
		InvoicePDFUC:   invoicePDFUC,
		InventoryUC:    inventoryUC,
		ExpenseUC:      expenseUC,
		MessageUC:      messageUC,
		NotificationUC: notificationUC,
		AnalyticsUC:    analyticsUC,
		Hub:            hub,
		UploadsDir:     avatars.BaseDir(),
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	cancel() // detiene el hub de realtime

	log.Info().Msg("aplicación detenida")
}

// seedAdmin crea la cuenta admin inicial si no existe ninguna. Las
// credenciales salen de ADMIN_EMAIL / ADMIN_PASSWORD; sin esas variables no
// se crea nada (nunca se siembran credenciales por defecto).
func seedAdmin(ctx context.Context, clientRepo repository.ClientRepository, log *logger.Logger) {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		return
	}
	existing, err := clientRepo.List(ctx, entity.RoleAdmin, "", 1, 0)
	if err != nil {
		log.Warn().Err(err).Msg("verificar cuenta admin inicial")
		return
	}
	if len(existing) > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Warn().Err(err).Msg("hash de contraseña admin")
		return
	}
	now := time.Now()
	admin := &entity.Client{
		ID:           uuid.New().String(),
		Name:         "Administración",
		Email:        adminEmail,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		Status:       entity.ClientStatusApproved,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := clientRepo.Create(ctx, admin); err != nil {
		log.Warn().Err(err).Msg("crear cuenta admin inicial")
		return
	}
	log.Info().Str("email", adminEmail).Msg("cuenta admin inicial creada")
}
