package adminRoutes

import (
	"github.com/gofiber/fiber/v2"

	"certportal/config"
	adminController "certportal/controllers/admin"
	"certportal/middleware"
	"certportal/stores"
	certValidator "certportal/validators/cert"
)

// SetupAdminRoutes sets up the admin certificate and user management
// routes. Everything here requires an authenticated admin.
func SetupAdminRoutes(app *fiber.App, cfg *config.Config, accounts stores.AccountStore, ctl *adminController.Controller) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware(cfg), middleware.RequireAdmin(accounts))

	adminGroup.Post("/upload-excel", ctl.BulkUpload)
	adminGroup.Post("/create-certificate", certValidator.CreateCertificate(), ctl.CreateCertificate)
	adminGroup.Get("/certificates", ctl.ListCertificates)
	adminGroup.Get("/users", ctl.ListUsers)
	adminGroup.Delete("/user/:userId", ctl.DeleteUser)
	adminGroup.Post("/upload-signature", ctl.UploadSignature)
}
