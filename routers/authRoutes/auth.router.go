package authRoutes

import (
	"github.com/gofiber/fiber/v2"

	"certportal/config"
	authController "certportal/controllers/auth"
	"certportal/middleware"
	authValidator "certportal/validators/auth"
)

func SetupAuthRoutes(app *fiber.App, cfg *config.Config, ctl *authController.Controller) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidator.Signup(), ctl.Signup)
	authGroup.Post("/login", authValidator.Login(), ctl.Login)
	authGroup.Get("/me", middleware.JWTMiddleware(cfg), ctl.Me)
	authGroup.Post("/forgot/password", authValidator.ForgotPassword(), ctl.ForgotPassword)
	authGroup.Patch("/reset/password/:token", authValidator.ResetPassword(), ctl.ResetPassword)
}
