package main

import (
	"github.com/gin-gonic/gin"
	"maisquecardapio.backend/internal/interfaces/http/handlers"
	"maisquecardapio.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	publicHandler       *handlers.PublicHandler
	authHandler         *handlers.AuthHandler
	catalogHandler      *handlers.CatalogHandler
	tableHandler        *handlers.TableHandler
	orderHandler        *handlers.OrderHandler
	settingsHandler     *handlers.SettingsHandler
	subscriptionHandler *handlers.SubscriptionHandler
	superadminHandler   *handlers.SuperadminHandler

	tenantMiddleware     gin.HandlerFunc
	ownerAuthMiddleware  gin.HandlerFunc
	superadminMiddleware gin.HandlerFunc
	loginRateLimit       gin.HandlerFunc
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")

	// Anonymous routes
	public := api.Group("/public")
	{
		public.POST("/register", d.loginRateLimit, d.publicHandler.Register)
		public.GET("/establishments/:slug", d.publicHandler.GetEstablishment)
		public.POST("/login", d.loginRateLimit, d.authHandler.OwnerLogin)
		public.POST("/cron/subscriptions", d.subscriptionHandler.RunCron)
		public.POST("/webhooks/payment", d.subscriptionHandler.PaymentWebhook)
		public.POST("/webhooks/order-sync", d.subscriptionHandler.OrderSyncWebhook)
	}

	// Tenant scoped routes, X-Establishment-Slug required
	e := api.Group("/e")
	e.Use(d.tenantMiddleware)
	{
		// Customer menu
		e.GET("/categories", d.catalogHandler.ListCategories)
		e.GET("/products", d.catalogHandler.ListProducts)
		e.GET("/neighborhoods", d.catalogHandler.ListNeighborhoods)
		e.GET("/tables", d.tableHandler.ListTables)
		e.GET("/settings/public", d.settingsHandler.GetPublicSettings)
		e.POST("/orders", middleware.IdempotencyMiddleware(), d.orderHandler.CreateOrder)
		e.POST("/reservations", d.tableHandler.CreateReservation)

		// Owner panel
		admin := e.Group("")
		admin.Use(d.ownerAuthMiddleware)
		{
			admin.POST("/logout", d.authHandler.Logout)

			admin.POST("/categories", d.catalogHandler.CreateCategory)
			admin.PUT("/categories/:id", d.catalogHandler.UpdateCategory)
			admin.DELETE("/categories/:id", d.catalogHandler.DeleteCategory)

			admin.POST("/products", d.catalogHandler.CreateProduct)
			admin.PUT("/products/:id", d.catalogHandler.UpdateProduct)
			admin.DELETE("/products/:id", d.catalogHandler.DeleteProduct)

			admin.POST("/neighborhoods", d.catalogHandler.CreateNeighborhood)
			admin.PUT("/neighborhoods/:id", d.catalogHandler.UpdateNeighborhood)
			admin.DELETE("/neighborhoods/:id", d.catalogHandler.DeleteNeighborhood)

			admin.POST("/tables", d.tableHandler.CreateTable)
			admin.PUT("/tables/:id", d.tableHandler.UpdateTable)
			admin.DELETE("/tables/:id", d.tableHandler.DeleteTable)

			admin.GET("/commands", d.tableHandler.ListCommands)
			admin.POST("/commands", d.tableHandler.OpenCommand)
			admin.PUT("/commands/:id", d.tableHandler.UpdateCommand)
			admin.DELETE("/commands/:id", d.tableHandler.DeleteCommand)

			admin.GET("/orders", d.orderHandler.ListOrders)
			admin.PUT("/orders/:id/status", d.orderHandler.UpdateOrderStatus)

			admin.GET("/reservations", d.tableHandler.ListReservations)
			admin.PUT("/reservations/:id", d.tableHandler.UpdateReservation)
			admin.DELETE("/reservations/:id", d.tableHandler.DeleteReservation)

			admin.GET("/settings", d.settingsHandler.GetSettings)
			admin.POST("/settings", d.settingsHandler.SaveSettings)

			admin.GET("/subscription", d.subscriptionHandler.GetStatus)
			admin.POST("/subscription/upgrade", d.subscriptionHandler.RequestUpgrade)
			admin.POST("/subscription/renew", d.subscriptionHandler.RequestRenewal)
		}
	}

	// Platform console
	sa := api.Group("/superadmin")
	{
		sa.POST("/login", d.loginRateLimit, d.authHandler.SuperadminLogin)

		console := sa.Group("")
		console.Use(d.superadminMiddleware)
		{
			console.GET("/verify", d.authHandler.Verify)
			console.GET("/establishments", d.superadminHandler.ListEstablishments)
			console.PUT("/establishments/:id", d.superadminHandler.UpdateEstablishment)
			console.DELETE("/establishments/:id", d.superadminHandler.DeleteEstablishment)
			console.POST("/establishments/:id/renew", d.subscriptionHandler.Renew)
			console.GET("/plans", d.superadminHandler.ListPlans)
			console.POST("/plans", d.superadminHandler.CreatePlan)
			console.PUT("/plans/:id", d.superadminHandler.UpdatePlan)
			console.DELETE("/plans/:id", d.superadminHandler.DeletePlan)
			console.POST("/subscriptions/check", d.subscriptionHandler.RunCheck)
		}
	}
}
