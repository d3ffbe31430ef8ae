package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "github.com/mohitmore9417-afk/edua-ai/internals/features/users/auth/controller"
	rateLimiter "github.com/mohitmore9417-afk/edua-ai/internals/middlewares"
	authMw "github.com/mohitmore9417-afk/edua-ai/internals/middlewares/auth"
)

// AuthRoutes mounts the public auth endpoints plus the protected
// session endpoints. Base: /api/auth
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	baseAuth := app.Group("/api/auth")

	// 🔓 Public
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	baseAuth.Post("/refresh-token", authController.RefreshToken)

	// 🔒 Protected
	protectedAuth := app.Group("/api/auth", authMw.AuthMiddleware(db))
	protectedAuth.Post("/logout", authController.Logout)
	protectedAuth.Post("/change-password", authController.ChangePassword)
}
