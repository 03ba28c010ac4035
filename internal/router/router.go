package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "cleanreports/docs"
	"cleanreports/internal/config"
	"cleanreports/internal/handler"
	"cleanreports/internal/middleware"
	"cleanreports/internal/service"
	"cleanreports/internal/view"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	loginLimiter *middleware.IPRateLimiter,
	authH *handler.AuthHandler,
	dashboardH *handler.DashboardHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
) (*gin.Engine, error) {
	r := gin.New()

	tmpl, err := view.Templates()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	cookie := cfg.Session.CookieName

	// Browser pages
	r.GET("/", handler.Home)
	r.GET(middleware.LoginPath, authH.LoginPage)
	r.POST(middleware.LoginPath, middleware.RateLimit(loginLimiter, authH.LoginRateLimited), authH.LoginSubmit)
	r.POST("/auth/signout", authH.SignOut)
	r.GET(view.DashboardPath, middleware.RequireSession(authSvc, cookie), dashboardH.Dashboard)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", middleware.RateLimit(loginLimiter, nil), authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require a valid session
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc, cookie))

	protected.GET("/auth/me", authH.Me)

	reports := protected.Group("/reports")
	reports.GET("", reportH.List)
	reports.GET("/stores", reportH.Stores)
	reports.GET("/export/csv", reportH.ExportCSV)
	reports.GET("/export/xlsx", reportH.ExportXLSX)

	return r, nil
}
