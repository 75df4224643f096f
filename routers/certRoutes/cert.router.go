package certRoutes

import (
	"github.com/gofiber/fiber/v2"

	"certportal/config"
	certController "certportal/controllers/cert"
	"certportal/middleware"
	certValidator "certportal/validators/cert"
)

func SetupCertRoutes(app *fiber.App, cfg *config.Config, ctl *certController.Controller) {
	certGroup := app.Group("/certificate")

	// Public verification lookup
	certGroup.Get("/search", certValidator.Search(), ctl.Search)
	certGroup.Get("/download/:certId", middleware.JWTMiddleware(cfg), ctl.Download)
}
