package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-connect/authentication"
	"hospital-connect/configuration"
	"hospital-connect/controllers"
	"hospital-connect/repository"
)

// SetupRoutes wires repositories, controllers and middleware onto a gin
// engine.
func SetupRoutes(db *gorm.DB, cfg *configuration.Config) *gin.Engine {
	r := gin.Default()

	users := repository.NewUserRepository(db)
	doctors := repository.NewDoctorRepository(db)
	tokens := authentication.NewTokenService(cfg.SecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	authController := controllers.NewAuthController(users, tokens, controllers.SMTPMailer{})
	doctorController := controllers.NewDoctorController(doctors)

	requireAuth := authentication.AuthMiddleware(tokens, users)
	optionalAuth := authentication.OptionalAuthMiddleware(tokens, users)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Hospital Management System",
			"status":  "online",
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/register", authController.Register)
		auth.POST("/refresh", authController.Refresh)
		auth.POST("/password-reset", authController.RequestPasswordReset)
		auth.POST("/password-reset/confirm", authController.ConfirmPasswordReset)
		auth.GET("/status", optionalAuth, authController.Status)

		auth.GET("/me", requireAuth, authController.Me)
		auth.PUT("/change-password", requireAuth, authController.ChangePassword)

		auth.GET("/users", requireAuth, authentication.RequirePermission("user:read"), authController.ListUsers)
		auth.GET("/users/role/:role", requireAuth, authentication.RequirePermission("user:read"), authController.ListUsersByRole)
		auth.PUT("/users/:id/activate", requireAuth, authentication.RequirePermission("user:update"), authController.ActivateUser)
		auth.PUT("/users/:id/deactivate", requireAuth, authentication.RequirePermission("user:update"), authController.DeactivateUser)
	}

	registry := r.Group("/api/doctors")
	{
		registry.GET("", doctorController.List)
		registry.GET("/:id", doctorController.GetByID)
		registry.GET("/license/:license", doctorController.GetByLicense)
		registry.GET("/specialty/:specialty", doctorController.GetBySpecialty)
		registry.GET("/count/total", doctorController.CountTotal)
		registry.GET("/count/specialty/:specialty", doctorController.CountBySpecialty)

		registry.POST("", requireAuth, authentication.RequirePermission("doctor:create"), doctorController.Create)
		registry.PUT("/:id", requireAuth, authentication.RequirePermission("doctor:update"), doctorController.Update)
		registry.DELETE("/:id", requireAuth, authentication.RequirePermission("doctor:delete"), doctorController.Delete)
	}

	return r
}
