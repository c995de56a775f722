package routes

import (
	"io"
	"mime/multipart"
	"os"

	"loanconv-backoffice/internal/adapters/http/handlers"
	"loanconv-backoffice/internal/adapters/http/middleware"
	"loanconv-backoffice/internal/adapters/persistence/repositories"
	"loanconv-backoffice/internal/config"
	"loanconv-backoffice/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup wires repositories, services, handlers and routes
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	permRepo := repositories.NewPermissionRepository(db)
	tokenRepo := repositories.NewInvalidatedTokenRepository(db)
	productRepo := repositories.NewLoanProductRepository(db)
	appRepo := repositories.NewLoanApplicationRepository(db)
	disbRepo := repositories.NewDisbursementRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	configRepo := repositories.NewSystemConfigurationRepository(db)
	verificationRepo := repositories.NewVerificationTokenRepository(db)
	uow := repositories.NewGormUnitOfWork(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokenRepo, cfg)
	userService := services.NewUserService(userRepo, roleRepo)
	roleService := services.NewRoleService(roleRepo, permRepo)
	permService := services.NewPermissionService(permRepo)
	mailService := services.NewEmailService(&cfg.Mail)
	resetService := services.NewPasswordResetService(userRepo, verificationRepo, mailService)
	notificationService := services.NewNotificationService(notificationRepo, userRepo)
	productService := services.NewLoanProductService(productRepo)
	appService := services.NewLoanApplicationService(appRepo, productRepo, userRepo, documentRepo, notificationService, mailService)
	disbService := services.NewDisbursementService(uow, disbRepo, appRepo, userRepo, notificationService, mailService)
	documentService := services.NewDocumentService(documentRepo, appRepo, userRepo, &cfg.Upload, saveMultipartFile)
	reportService := services.NewReportService(db)
	configService := services.NewSystemConfigurationService(configRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, resetService)
	userHandler := handlers.NewUserHandler(userService)
	roleHandler := handlers.NewRoleHandler(roleService, permService)
	productHandler := handlers.NewLoanProductHandler(productService)
	appHandler := handlers.NewLoanApplicationHandler(appService)
	disbHandler := handlers.NewDisbursementHandler(disbService)
	documentHandler := handlers.NewDocumentHandler(documentService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	reportHandler := handlers.NewReportHandler(reportService)
	configHandler := handlers.NewSystemConfigurationHandler(configService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.Check)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Uploaded documents
	app.Static(cfg.Upload.URLPrefix, cfg.Upload.Dir)

	authn := middleware.AuthMiddleware(authService)

	apiV1 := app.Group("/api/v1")

	// Auth routes (public, tighter rate limit)
	auth := apiV1.Group("/auth", middleware.AuthRateLimiter())
	auth.Post("/login", authHandler.Login)
	auth.Post("/token", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/introspect", authHandler.Introspect)
	auth.Post("/password-reset/email/:email", authHandler.SendPasswordResetEmail)
	auth.Post("/password-reset/token/:token", authHandler.ValidatePasswordResetToken)
	auth.Post("/password-reset", authHandler.ResetPassword)

	// User routes
	users := apiV1.Group("/users")
	users.Post("/", userHandler.Create) // public registration
	users.Get("/me", authn, userHandler.Me)
	users.Get("/", authn, middleware.RequirePermission(config.PermManageUsers), userHandler.List)
	users.Get("/:id", authn, userHandler.Get)
	users.Put("/:id", authn, userHandler.Update)
	users.Delete("/:id", authn, middleware.RequirePermission(config.PermManageUsers), userHandler.Delete)

	// Role and permission routes
	roles := apiV1.Group("/roles", authn, middleware.RequirePermission(config.PermManageUsers))
	roles.Post("/", roleHandler.CreateRole)
	roles.Get("/", roleHandler.ListRoles)
	roles.Put("/:name", roleHandler.UpdateRole)
	roles.Delete("/:name", roleHandler.DeleteRole)

	permissions := apiV1.Group("/permissions", authn, middleware.RequirePermission(config.PermManageUsers))
	permissions.Post("/", roleHandler.CreatePermission)
	permissions.Get("/", roleHandler.ListPermissions)
	permissions.Delete("/:name", roleHandler.DeletePermission)

	// Loan product routes (catalog reads are public)
	products := apiV1.Group("/loan-products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.Get)
	products.Post("/", authn, middleware.RequirePermission(config.PermManageProducts), productHandler.Create)
	products.Put("/:id", authn, middleware.RequirePermission(config.PermManageProducts), productHandler.Update)
	products.Patch("/:id/status", authn, middleware.RequirePermission(config.PermManageProducts), productHandler.ChangeStatus)

	// Loan application routes
	apps := apiV1.Group("/loan-applications", authn)
	apps.Post("/", appHandler.Create)
	apps.Get("/my", appHandler.ListMine)
	apps.Get("/", middleware.RequirePermission(config.PermApproveLoan), appHandler.List)
	apps.Get("/:id", appHandler.Get)
	apps.Put("/:id", appHandler.Update)
	apps.Post("/:id/submit", appHandler.Submit)
	apps.Patch("/:id/status", appHandler.UpdateStatus)
	apps.Patch("/:id/status/manage", middleware.RequirePermission(config.PermApproveLoan), appHandler.ManageStatus)
	apps.Get("/:id/required-documents", appHandler.RequiredDocuments)
	apps.Get("/:id/disbursements", disbHandler.ApplicationSummary)
	apps.Post("/:id/documents", documentHandler.Upload)
	apps.Get("/:id/documents", documentHandler.List)
	apps.Delete("/:id", appHandler.Delete)

	// Document routes
	documents := apiV1.Group("/documents", authn)
	documents.Delete("/:id", documentHandler.Delete)

	// Disbursement routes
	disbursements := apiV1.Group("/disbursements", authn)
	disbursements.Post("/", middleware.RequirePermission(config.PermDisburseLoan), disbHandler.Create)
	disbursements.Get("/", middleware.RequirePermission(config.PermDisburseLoan), disbHandler.List)
	disbursements.Get("/my", disbHandler.ListMine)
	disbursements.Get("/application/:id/summary", disbHandler.ApplicationSummary)
	disbursements.Get("/:id", disbHandler.Get)
	disbursements.Delete("/:id", middleware.RequirePermission(config.PermDisburseLoan), disbHandler.Delete)

	// Notification routes
	notifications := apiV1.Group("/notifications", authn)
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Patch("/read-all", notificationHandler.MarkAllRead)
	notifications.Get("/:id", notificationHandler.Get)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)
	notifications.Delete("/:id", notificationHandler.Delete)

	// Report routes
	reports := apiV1.Group("/reports", authn, middleware.RequirePermission(config.PermViewReports))
	reports.Get("/dashboard", reportHandler.Dashboard)
	reports.Get("/applications/by-status", reportHandler.ByStatus)
	reports.Get("/applications/by-product", reportHandler.ByProduct)
	reports.Get("/approval-ratio", reportHandler.ApprovalRatio)
	reports.Get("/applications/approved-amount-by-month", reportHandler.ApprovedAmountByMonth)
	reports.Get("/disbursements/by-month", reportHandler.DisbursementsByMonth)

	// System configuration routes
	configs := apiV1.Group("/system-configurations")
	configs.Get("/key/:key", configHandler.GetByKey) // public display settings
	configs.Post("/", authn, middleware.RequirePermission(config.PermManageSystemData), configHandler.Create)
	configs.Get("/", authn, middleware.RequirePermission(config.PermManageSystemData), configHandler.List)
	configs.Get("/:id", authn, middleware.RequirePermission(config.PermManageSystemData), configHandler.Get)
	configs.Put("/:id", authn, middleware.RequirePermission(config.PermManageSystemData), configHandler.Update)
	configs.Delete("/:id", authn, middleware.RequirePermission(config.PermManageSystemData), configHandler.Delete)
}

// saveMultipartFile writes an uploaded file to disk
func saveMultipartFile(file *multipart.FileHeader, path string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
