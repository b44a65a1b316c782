package main

import (
	"github.com/bomspace/backend/internal/middleware"
	"github.com/bomspace/backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	loginLimiter := middleware.NewRateLimiter(5, 10)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "bomspace"})
	})

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", loginLimiter.Middleware(), svc.authHandler.Login)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)

			// Projects
			protected.GET("/projects", svc.projectHandler.List)

			// Uploads (Personal / Central / Final BOM portals)
			protected.GET("/uploads", svc.uploadHandler.List)
			protected.GET("/uploads/mine", svc.uploadHandler.Mine)
			protected.POST("/uploads", svc.uploadHandler.Create)
			protected.GET("/uploads/:id/download", svc.uploadHandler.Download)
			protected.PUT("/uploads/:id", svc.uploadHandler.Replace)
			protected.DELETE("/uploads/:id", svc.uploadHandler.Remove)

			// Messenger
			protected.GET("/messages", svc.messageHandler.List)
			protected.POST("/messages", svc.messageHandler.Send)

			// Dashboards
			protected.GET("/dashboards", svc.dashboardHandler.List)
			protected.POST("/dashboards", svc.dashboardHandler.Save)

			// Admin portal (Assigning + user management)
			admin := protected.Group("/users")
			admin.Use(middleware.AdminRequired())
			{
				admin.GET("", svc.userHandler.List)
				admin.GET("/catalog", svc.userHandler.Catalog)
				admin.POST("/:id/assign", svc.userHandler.Assign)
				admin.DELETE("/:id", svc.userHandler.Remove)
				admin.POST("/:id/reset-pin", svc.userHandler.ResetPIN)
			}
		}
	}
}
