package routes

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/servquick/household-services/internal/audit"
	"github.com/servquick/household-services/internal/config"
	"github.com/servquick/household-services/internal/handlers"
	infraRepo "github.com/servquick/household-services/internal/infra/repository"
	"github.com/servquick/household-services/internal/middleware"
	"github.com/servquick/household-services/internal/models"
	"github.com/servquick/household-services/internal/summary"
	ucRequest "github.com/servquick/household-services/internal/usecase/request"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, rdb *redis.Client) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("hs_session", store))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	requestRepo := infraRepo.NewRequestGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	summarySvc := summary.NewService(db, summary.NewCache(rdb))

	// ======================================================
	// USE CASES (SERVICE REQUESTS)
	// ======================================================
	createRequestUC := ucRequest.NewCreateRequest(requestRepo, auditDispatcher)
	respondUC := ucRequest.NewRespondToRequest(requestRepo, auditDispatcher)
	editRequestUC := ucRequest.NewEditRequest(requestRepo)
	cancelRequestUC := ucRequest.NewCancelRequest(requestRepo, auditDispatcher)
	closeRequestUC := ucRequest.NewCloseRequest(requestRepo, auditDispatcher)
	listRequestsUC := ucRequest.NewListRequests(requestRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db)
	signupHandler := handlers.NewSignupHandler(db)
	profileHandler := handlers.NewProfileHandler(db)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	searchHandler := handlers.NewSearchHandler(db)
	summaryHandler := handlers.NewSummaryHandler(summarySvc)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	requestHandler := handlers.NewRequestHandler(
		db,
		createRequestUC,
		editRequestUC,
		cancelRequestUC,
		closeRequestUC,
		listRequestsUC,
	)

	dashboardHandler := handlers.NewDashboardHandler(db, listRequestsUC, respondUC)
	adminHandler := handlers.NewAdminHandler(db, auditDispatcher, listRequestsUC)

	// ======================================================
	// PUBLIC
	// ======================================================
	r.POST("/login", authHandler.Login)
	r.POST("/signup/customer", signupHandler.RegisterCustomer)
	r.POST("/signup/professional", signupHandler.RegisterProfessional)

	// ======================================================
	// SESSION
	// ======================================================
	secured := r.Group("/")
	secured.Use(middleware.RequireSession(db))
	{
		secured.GET("/", authHandler.Home)
		secured.GET("/logout", authHandler.Logout)

		secured.GET("/profile", profileHandler.Get)
		secured.POST("/profile", profileHandler.Update)

		secured.GET("/search", searchHandler.Search)
		secured.POST("/search", searchHandler.Search)

		secured.GET("/summary", summaryHandler.Summary)
		secured.POST("/summary", summaryHandler.Summary)

		// ------------------------------
		// CUSTOMER
		// ------------------------------
		customer := secured.Group("/")
		customer.Use(middleware.RequireRole(models.RoleCustomer))
		{
			customer.GET("/dashboard", dashboardHandler.Customer)

			customer.POST("/service_selection", requestHandler.SelectService)
			customer.GET("/service_selection/:service_name", requestHandler.ListProfessionals)
			customer.POST("/service_selection/:service_name", requestHandler.Create)

			customer.GET("/edit_request/:id", requestHandler.Get)
			customer.POST("/edit_request/:id", requestHandler.Edit)

			customer.GET("/close_service/:id", requestHandler.Get)
			customer.POST("/close_service/:id", requestHandler.Close)
		}

		// ------------------------------
		// PROFESSIONAL
		// ------------------------------
		professional := secured.Group("/professional")
		professional.Use(middleware.RequireRole(models.RoleProfessional))
		{
			professional.GET("/dashboard", dashboardHandler.Professional)
			professional.POST("/dashboard", dashboardHandler.ProfessionalAction)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := secured.Group("/")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/admin/dashboard", adminHandler.Dashboard)
			admin.POST("/admin/dashboard", adminHandler.DashboardAction)

			admin.GET("/admin/service/add", serviceHandler.List)
			admin.POST("/admin/service/add", serviceHandler.Add)
			admin.GET("/admin/service/edit/:id", serviceHandler.Get)
			admin.POST("/admin/service/edit/:id", serviceHandler.Edit)

			admin.GET("/admin/search", searchHandler.AdminSearch)
			admin.POST("/admin/search", searchHandler.AdminSearch)

			admin.GET("/admin/users", adminHandler.Users)
			admin.GET("/admin/audit-logs", auditLogsHandler.List)

			admin.GET("/admin_summary", summaryHandler.AdminSummary)
			admin.POST("/admin_summary", summaryHandler.AdminSummary)

			admin.GET("/professional/:id", adminHandler.ProfessionalProfile)
			admin.POST("/professional/:id", adminHandler.ProfessionalProfile)
			admin.GET("/customer/:id", adminHandler.CustomerProfile)
			admin.POST("/customer/:id", adminHandler.CustomerProfile)
		}
	}
}
