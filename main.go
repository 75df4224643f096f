package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"certportal/certify"
	"certportal/config"
	adminController "certportal/controllers/admin"
	authController "certportal/controllers/auth"
	certController "certportal/controllers/cert"
	"certportal/database"
	adminRoutes "certportal/routers/adminRoutes"
	authRoutes "certportal/routers/authRoutes"
	certRoutes "certportal/routers/certRoutes"
	"certportal/stores"
	"certportal/utils"
)

func main() {
	cfg := config.LoadConfig()
	db := database.ConnectDb(cfg)

	certStore := stores.NewCertificateStore(db)
	accountStore := stores.NewAccountStore(db)
	renderer := &utils.PdfRenderer{OutDir: cfg.PdfOutputDir}
	pipeline := certify.NewPipeline(certStore, accountStore, renderer, cfg.SaltRound)

	sweeper := utils.StartResetTokenSweeper(db)
	defer sweeper.Stop()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app, cfg, authController.NewController(cfg, accountStore))
	adminRoutes.SetupAdminRoutes(app, cfg, accountStore, adminController.NewController(cfg, pipeline, accountStore, certStore))
	certRoutes.SetupCertRoutes(app, cfg, certController.NewController(pipeline, certStore))

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
