package handlers

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/invoicer/billing"
	"github.com/yourusername/invoicer/config"
	"github.com/yourusername/invoicer/invoicepdf"
	"github.com/yourusername/invoicer/logger"
	"github.com/yourusername/invoicer/middleware"
	"github.com/yourusername/invoicer/store"
)

// Deps is everything the router needs.
type Deps struct {
	Config    *config.Config
	Logger    *zap.Logger
	Store     *store.Store
	Generator *invoicepdf.Generator
	Billing   *billing.Service
	Node      *snowflake.Node
}

func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinMiddleware(logger.MiddlewareConfig{Logger: d.Logger, SkipPaths: []string{"/health"}}))

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-Id")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-Id")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		if err := d.Store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "service": "invoicer-api"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "invoicer-api",
		})
	})

	authHandler := NewAuthHandler(d.Config)
	clientHandler := NewClientHandler(d.Store, d.Logger)
	contractHandler := NewContractHandler(d.Store, d.Logger)
	invoiceHandler := NewInvoiceHandler(d.Store, d.Generator, d.Billing, d.Node, d.Logger)
	settingsHandler := NewSettingsHandler(d.Store, d.Logger)
	templateHandler := NewTemplateHandler(d.Generator, d.Logger)

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		auth.POST("/token", authHandler.Token)
		auth.POST("/refresh", authHandler.Refresh)
	}

	protected := api.Group("")
	admin := []gin.HandlerFunc{}
	if d.Config.AuthEnabled() {
		protected.Use(middleware.JwtAuthMiddleware(d.Config))
		admin = append(admin, middleware.RequireRole(middleware.RoleAdmin))
	}
	withAdmin := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, admin...), h)
	}
	{
		protected.GET("/clients", clientHandler.ListClients)
		protected.POST("/clients", withAdmin(clientHandler.CreateClient)...)
		protected.GET("/clients/:id", clientHandler.GetClient)
		protected.PUT("/clients/:id", withAdmin(clientHandler.UpdateClient)...)
		protected.DELETE("/clients/:id", withAdmin(clientHandler.DeleteClient)...)
		protected.GET("/clients/:id/contracts", clientHandler.ListClientContracts)

		protected.GET("/contracts", contractHandler.ListContracts)
		protected.POST("/contracts", withAdmin(contractHandler.CreateContract)...)
		protected.GET("/contracts/:id", contractHandler.GetContract)
		protected.PUT("/contracts/:id", withAdmin(contractHandler.UpdateContract)...)
		protected.DELETE("/contracts/:id", withAdmin(contractHandler.DeleteContract)...)

		protected.GET("/invoices", invoiceHandler.ListInvoices)
		protected.POST("/invoices", withAdmin(invoiceHandler.CreateInvoice)...)
		protected.GET("/invoices/export", invoiceHandler.Export)
		protected.POST("/invoices/generate", withAdmin(invoiceHandler.Generate)...)
		protected.GET("/invoices/:id", invoiceHandler.GetInvoice)
		protected.PUT("/invoices/:id", withAdmin(invoiceHandler.UpdateInvoice)...)
		protected.DELETE("/invoices/:id", withAdmin(invoiceHandler.DeleteInvoice)...)
		protected.GET("/invoices/:id/pdf", invoiceHandler.DownloadPDF)

		protected.GET("/settings", settingsHandler.GetSettings)
		protected.PUT("/settings", withAdmin(settingsHandler.UpdateSettings)...)

		protected.GET("/templates", templateHandler.ListTemplates)
		protected.GET("/templates/:id/preview", templateHandler.Preview)
	}

	return router
}
