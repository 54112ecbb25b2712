package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oyilmaz/deptportal/internal/app/controllers"
	"github.com/oyilmaz/deptportal/internal/app/models"
	"github.com/oyilmaz/deptportal/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	noticeController *controllers.NoticeController,
	applicationController *controllers.ApplicationController,
	userController *controllers.UserController,
	uploadController *controllers.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
) {
	// Health endpoint stays outside the API group and the rate limiter
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	if rateLimiter != nil {
		v1.Use(rateLimiter.Limit())
	}

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register-student", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Notice board: reads are open to every authenticated role, writes
		// are gated inside the service (SUPER_ADMIN any, ADMIN own)
		notices := authenticated.Group("/notices")
		{
			notices.GET("", noticeController.List)
			notices.GET("/:id", noticeController.Get)

			noticesAdminProtected := notices.Group("")
			noticesAdminProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleSuperAdmin))
			{
				noticesAdminProtected.POST("", noticeController.Create)
				noticesAdminProtected.PATCH("/:id", noticeController.Update)
				noticesAdminProtected.DELETE("/:id", noticeController.Delete)
			}
		}

		// Application workflow: the service narrows visibility per role
		applications := authenticated.Group("/applications")
		{
			applications.GET("", applicationController.List)
			applications.GET("/:id", applicationController.Get)
			applications.POST("", applicationController.Create)

			applicationsAdminProtected := applications.Group("")
			applicationsAdminProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleSuperAdmin))
			{
				applicationsAdminProtected.PATCH("/:id/status", applicationController.UpdateStatus)
				applicationsAdminProtected.POST("/:id/remarks", applicationController.AddRemark)
			}
		}

		// User management is SUPER_ADMIN only
		users := authenticated.Group("/users")
		users.Use(authMiddleware.RoleRequired(models.RoleSuperAdmin))
		{
			users.GET("", userController.List)
			users.POST("", userController.Invite)
			users.DELETE("/:id", userController.Delete)
		}

		// Presigned uploads are open to every authenticated role
		uploads := authenticated.Group("/uploads")
		{
			uploads.POST("/presign", uploadController.Presign)
		}
	}
}
