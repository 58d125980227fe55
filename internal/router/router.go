package router

import (
	"github.com/VictorRuuan/Finance-Control/internal/auth"
	"github.com/VictorRuuan/Finance-Control/internal/config"
	"github.com/VictorRuuan/Finance-Control/internal/finance"
	"github.com/VictorRuuan/Finance-Control/internal/handler"
	"github.com/VictorRuuan/Finance-Control/internal/middleware"
	"github.com/VictorRuuan/Finance-Control/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup configures the Gin engine, templates and all routes.
func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// static files and templates
	r.Static("/static", "./web/static")
	r.LoadHTMLGlob("web/templates/*")

	users := store.NewUserStore(db)
	ledger := store.NewTransactionStore(db)
	sessions := auth.NewSessionManager(db, cfg.Session.Secret, cfg.Session.ExpireHours)
	authenticator := auth.NewAuthenticator(users, sessions)
	aggregator := finance.NewAggregator(ledger)

	cookieName := cfg.Session.CookieName

	authHandler := handler.NewAuthHandler(authenticator, sessions, cookieName, cfg.Session.ExpireHours)
	txHandler := handler.NewTransactionHandler(ledger, cfg.App.PageSize)
	dashHandler := handler.NewDashboardHandler(aggregator)
	exportHandler := handler.NewExportHandler(ledger)

	// ====== browser routes ======
	r.GET("/", authHandler.Index)
	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// owner-scoped pages: unauthenticated access redirects to login
	pages := r.Group("", middleware.RequireUserOrRedirect(sessions, users, cookieName))
	pages.GET("/dashboard", dashHandler.Dashboard)
	pages.GET("/transactions", txHandler.List)
	pages.POST("/transactions/add", txHandler.Add)
	pages.GET("/transactions/edit/:id", txHandler.EditForm)
	pages.POST("/transactions/edit/:id", txHandler.Edit)
	pages.GET("/transactions/delete/:id", txHandler.Delete)

	// ====== JSON API ======
	api := r.Group("/api")
	api.POST("/auth/register", authHandler.APIRegister)
	api.POST("/auth/login", authHandler.APILogin)

	// protected API: unauthenticated access gets a 401
	protected := api.Group("", middleware.RequireUser(sessions, users, cookieName))
	protected.POST("/auth/logout", authHandler.APILogout)
	protected.GET("/me", authHandler.APIMe)
	protected.GET("/transactions", txHandler.APIList)
	protected.POST("/transactions", txHandler.APICreate)
	protected.GET("/transactions/:id", txHandler.APIGet)
	protected.PUT("/transactions/:id", txHandler.APIUpdate)
	protected.DELETE("/transactions/:id", txHandler.APIDelete)
	protected.GET("/summary", dashHandler.APISummary)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
