package router

import (
	"time"

	"kgwahlawifi/internal/config"
	"kgwahlawifi/internal/handler"
	"kgwahlawifi/internal/middleware"
	"kgwahlawifi/internal/repository"
	"kgwahlawifi/internal/service"
	"kgwahlawifi/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	corsOrigin := ""
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
		corsOrigin = cfg.Domain
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(corsOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	tenantRepo := repository.NewTenantRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	accessLogRepo := repository.NewAccessLogRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(tenantRepo, adminRepo, dispatcher, cfg)
	paymentSvc := service.NewPaymentService(paymentRepo, tenantRepo, dispatcher, cfg)
	tenantSvc := service.NewTenantService(tenantRepo, paymentRepo, dispatcher, cfg)
	accessSvc := service.NewAccessService(accessLogRepo, tenantRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	paymentsH := handler.NewPaymentsHandler(paymentSvc)
	tenantsH := handler.NewTenantsHandler(tenantSvc)
	accessH := handler.NewAccessHandler(accessSvc)
	contactH := handler.NewContactHandler(dispatcher, cfg.ContactInbox)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/admin/login", middleware.LoginRateLimiter(), authH.AdminLogin)
		auth.POST("/forgot-password", authH.ForgotPassword)
		auth.POST("/reset-password", authH.ResetPassword)
	}

	r.POST("/api/contact/submit", contactH.Submit)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	api := r.Group("/api", jwtMW)
	{
		api.GET("/auth/me", authH.Me)

		payments := api.Group("/payments")
		{
			payments.POST("/upload", paymentsH.Upload)
			payments.POST("/cash", paymentsH.Cash)
			payments.GET("/status", paymentsH.Status)
			// Admin review surface
			payments.GET("/all", middleware.RequireAdmin(), paymentsH.All)
			payments.POST("/approve/:id", middleware.RequireAdmin(), paymentsH.Approve)
			payments.POST("/reject/:id", middleware.RequireAdmin(), paymentsH.Reject)
			payments.GET("/proof/:id", middleware.RequireAdmin(), paymentsH.Proof)
		}

		tenants := api.Group("/tenants", middleware.RequireAdmin())
		{
			tenants.GET("", tenantsH.List)
			tenants.POST("/block", tenantsH.Block)
			tenants.POST("/unblock", tenantsH.Unblock)
			tenants.POST("/approve/:id", tenantsH.Approve)
			tenants.POST("/activate/:id", tenantsH.Activate)
			tenants.POST("/deactivate/:id", tenantsH.Deactivate)
		}

		access := api.Group("/access")
		{
			access.POST("/enable", accessH.Enable)
			access.POST("/disable", accessH.Disable)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
