package routes

import (
	"time"

	"county-workhub/internal/adapters/http/handlers"
	"county-workhub/internal/adapters/http/middleware"
	"county-workhub/internal/adapters/persistence/repositories"
	"county-workhub/internal/config"
	"county-workhub/internal/core/domain"
	"county-workhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	deptRepo := repositories.NewDepartmentRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	appRepo := repositories.NewApplicationRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	contractRepo := repositories.NewContractRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo, deptRepo, db)
	deptService := services.NewDepartmentService(deptRepo, userRepo, db)
	jobService := services.NewJobService(jobRepo, deptRepo, db)
	appService := services.NewApplicationService(appRepo, jobRepo, db)
	taskService := services.NewTaskService(taskRepo, userRepo)
	paymentService := services.NewPaymentService(paymentRepo, taskRepo, userRepo)
	contractService := services.NewContractService(contractRepo, userRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	deptHandler := handlers.NewDepartmentHandler(deptService)
	jobHandler := handlers.NewJobHandler(jobService)
	appHandler := handlers.NewApplicationHandler(appService)
	taskHandler := handlers.NewTaskHandler(taskService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	contractHandler := handlers.NewContractHandler(contractService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	auth := middleware.AuthMiddleware(cfg, userRepo)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/signup", middleware.AuthRateLimiter(), authHandler.Signup)
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshToken)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/me", auth, authHandler.Me)
	authRoutes.Post("/logout-all", auth, authHandler.LogoutAll)

	// User management routes
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(auth)
	userRoutes.Get("/profile", userHandler.Profile)
	userRoutes.Get("/", middleware.SupervisorOrAdmin(), userHandler.ListUsers)
	userRoutes.Get("/:id", userHandler.GetUser)
	userRoutes.Put("/:id", middleware.AdminOnly(), userHandler.UpdateUser)
	userRoutes.Delete("/:id", middleware.AdminOnly(), userHandler.DeleteUser)

	// Department routes (listing is public)
	deptRoutes := apiV1.Group("/departments")
	deptRoutes.Get("/", middleware.CacheControl(1*time.Minute), deptHandler.ListDepartments)
	deptRoutes.Get("/:id", deptHandler.GetDepartment)
	deptRoutes.Get("/:id/workers", auth, deptHandler.ListWorkers)
	deptRoutes.Post("/", auth, middleware.AdminOnly(), deptHandler.CreateDepartment)
	deptRoutes.Put("/:id", auth, middleware.AdminOnly(), deptHandler.UpdateDepartment)
	deptRoutes.Delete("/:id", auth, middleware.AdminOnly(), deptHandler.DeleteDepartment)

	// Job board routes (listing is public)
	jobRoutes := apiV1.Group("/jobs")
	jobRoutes.Get("/", middleware.CacheControl(1*time.Minute), jobHandler.ListJobs)
	jobRoutes.Get("/:id", jobHandler.GetJob)
	jobRoutes.Post("/", auth, middleware.AdminOnly(), jobHandler.CreateJob)
	jobRoutes.Put("/:id", auth, middleware.AdminOnly(), jobHandler.UpdateJob)
	jobRoutes.Delete("/:id", auth, middleware.AdminOnly(), jobHandler.DeleteJob)

	// Application routes
	appRoutes := apiV1.Group("/applications")
	appRoutes.Use(auth)
	appRoutes.Post("/", middleware.RequireRoles(domain.RoleApplicant), appHandler.SubmitApplication)
	appRoutes.Get("/", appHandler.ListApplications)
	appRoutes.Get("/:id", appHandler.GetApplication)
	appRoutes.Put("/:id/review", middleware.AdminOnly(), appHandler.ReviewApplication)
	appRoutes.Delete("/:id", appHandler.WithdrawApplication)

	// Task routes
	taskRoutes := apiV1.Group("/tasks")
	taskRoutes.Use(auth)
	taskRoutes.Post("/", middleware.SupervisorOrAdmin(), taskHandler.CreateTask)
	taskRoutes.Get("/", taskHandler.ListTasks)
	taskRoutes.Get("/:id", taskHandler.GetTask)
	taskRoutes.Put("/:id", taskHandler.UpdateTask)
	taskRoutes.Put("/:id/review", middleware.SupervisorOrAdmin(), taskHandler.ReviewTask)
	taskRoutes.Delete("/:id", middleware.SupervisorOrAdmin(), taskHandler.DeleteTask)

	// Payment routes
	paymentRoutes := apiV1.Group("/payments")
	paymentRoutes.Use(auth)
	paymentRoutes.Post("/", middleware.AdminOnly(), paymentHandler.CreatePayment)
	paymentRoutes.Get("/", paymentHandler.ListPayments)
	paymentRoutes.Get("/:id", paymentHandler.GetPayment)
	paymentRoutes.Put("/:id", middleware.AdminOnly(), paymentHandler.SettlePayment)
	paymentRoutes.Delete("/:id", middleware.AdminOnly(), paymentHandler.DeletePayment)

	// Contract routes
	contractRoutes := apiV1.Group("/contracts")
	contractRoutes.Use(auth)
	contractRoutes.Post("/", middleware.AdminOnly(), contractHandler.CreateContract)
	contractRoutes.Get("/", contractHandler.ListContracts)
	contractRoutes.Get("/:id", contractHandler.GetContract)
	contractRoutes.Put("/:id", middleware.AdminOnly(), contractHandler.UpdateContract)
	contractRoutes.Delete("/:id", middleware.AdminOnly(), contractHandler.DeleteContract)

	// Dashboard routes
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(auth)
	dashboardRoutes.Get("/me", dashboardHandler.GetMyDashboard)
	dashboardRoutes.Get("/admin", middleware.AdminOnly(), dashboardHandler.GetAdminDashboard)
}
