package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"auto-concierge.backend/internal/interfaces/http/handlers"
	"auto-concierge.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	publicHandler         *handlers.PublicHandler
	dealerHandler         *handlers.DealerHandler
	adminHandler          *handlers.AdminHandler
	billingWebhookHandler *handlers.BillingWebhookHandler
	authMiddleware        gin.HandlerFunc
	activeDealer          gin.HandlerFunc
	adminAuth             gin.HandlerFunc
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")
	{
		api.GET("", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true, "status": "running"})
		})

		// Storefront routes (public, rate limited per IP)
		public := api.Group("/public")
		public.Use(middleware.RateLimit("public", 120, time.Minute))
		{
			public.GET("/dealer/:id", d.publicHandler.GetDealer)
			public.GET("/dealer/:id/vehicles", d.publicHandler.ListVehicles)
			public.GET("/vehicles", d.publicHandler.ListVehiclesMulti)
			public.POST("/dealer/:id/requests", middleware.RateLimit("requests", 10, time.Minute), d.publicHandler.CreateRequest)
			public.GET("/qrcode/:id", d.publicHandler.GetQRCode)
		}

		// Dealer routes
		dealer := api.Group("/dealer")
		{
			login := middleware.RateLimit("dealer-login", 10, time.Minute)
			dealer.POST("/login", login, d.dealerHandler.Login)
			dealer.POST("/request-reset", login, d.dealerHandler.RequestReset)
			dealer.POST("/reset-passcode", login, d.dealerHandler.ResetPasscode)

			authed := dealer.Group("")
			authed.Use(d.authMiddleware, middleware.RequireDealer(), d.activeDealer)
			{
				authed.GET("/me", d.dealerHandler.Me)
				authed.GET("/vehicles", d.dealerHandler.ListVehicles)
				authed.POST("/vehicles", d.dealerHandler.UpsertVehicle)
				authed.POST("/vehicles/:id/archive", d.dealerHandler.ArchiveVehicle)
				authed.GET("/requests", d.dealerHandler.ListRequests)
				authed.POST("/requests/:id/status", d.dealerHandler.UpdateRequestStatus)
				authed.GET("/summary", d.dealerHandler.Summary)
				authed.POST("/media/sign", d.dealerHandler.SignMedia)
			}
		}

		// Admin routes
		admin := api.Group("/admin")
		{
			admin.POST("/login", middleware.RateLimit("admin-login", 10, time.Minute), d.adminHandler.Login)

			protected := admin.Group("")
			protected.Use(d.adminAuth)
			{
				protected.GET("/dealers", d.adminHandler.ListDealers)
				protected.POST("/dealers", d.adminHandler.CreateDealer)
				protected.GET("/dealers/:id", d.adminHandler.GetDealer)
				protected.PATCH("/dealers/:id", d.adminHandler.UpdateDealer)
				protected.POST("/dealers/:id/reset-passcode", d.adminHandler.ResetDealerPasscode)

				protected.GET("/vehicles", d.adminHandler.ListVehicles)
				protected.POST("/vehicles", d.adminHandler.UpsertVehicle)
				protected.POST("/vehicles/:id/archive", d.adminHandler.ArchiveVehicle)
				protected.POST("/vehicles/bulk-update", d.adminHandler.BulkUpdateVehicles)

				protected.GET("/requests", d.adminHandler.ListRequests)
				protected.POST("/requests", d.adminHandler.CreateRequest)
				protected.POST("/requests/:id/status", d.adminHandler.UpdateRequestStatus)

				protected.GET("/summary", d.adminHandler.Summary)
				protected.POST("/check-alerts", d.adminHandler.CheckAlerts)

				protected.GET("/export/dealers", d.adminHandler.ExportDealers)
				protected.GET("/export/vehicles", d.adminHandler.ExportVehicles)
				protected.GET("/export/requests", d.adminHandler.ExportRequests)
			}
		}

		// Stripe webhook (verified by signature, not by session)
		api.POST("/billing/webhook", d.billingWebhookHandler.Handle)
	}
}

func applyCORSMiddleware(r *gin.Engine, allowedOrigins []string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Admin-Key", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "auto-concierge-backend",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
