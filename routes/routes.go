package routes

import (
	"context"
	"time"

	"socialstore/controllers"
	"socialstore/database"

	"github.com/gin-gonic/gin"
)

func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}

func SetupRoutes(r *gin.Engine) {
	db := database.GetDB()

	socialAuthController := controllers.NewSocialAuthController(db)
	maintenanceController := controllers.NewMaintenanceController(db)

	r.Use(SecurityHeadersMiddleware())
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil {
			c.JSON(503, gin.H{
				"status":    "unhealthy",
				"error":     "database connection error",
				"timestamp": time.Now().Unix(),
			})
			return
		}

		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := sqlDB.PingContext(pingCtx); err != nil {
			c.JSON(503, gin.H{
				"status":    "unhealthy",
				"error":     "database ping failed",
				"timestamp": time.Now().Unix(),
			})
			return
		}

		c.JSON(200, gin.H{
			"status":    "healthy",
			"database":  database.DBType,
			"timestamp": time.Now().Unix(),
		})
	})

	api := r.Group("/api")
	{
		api.GET("/users/:id/social", socialAuthController.GetUserSocialAuths)
		api.DELETE("/social/:id", socialAuthController.Disconnect)

		api.POST("/codes", socialAuthController.CreateCode)
		api.GET("/codes/:code", socialAuthController.GetCode)

		maintenance := api.Group("/maintenance")
		{
			maintenance.POST("/associations/purge", maintenanceController.PurgeAssociations)
			maintenance.POST("/partials/purge", maintenanceController.PurgePartials)
			maintenance.POST("/audit/purge", maintenanceController.PurgeAuditLogs)
			maintenance.POST("/backup", maintenanceController.Backup)
		}
	}
}
