package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/echannel-lk/agent-backend/bulk"
	"github.com/echannel-lk/agent-backend/channeling"
	"github.com/echannel-lk/agent-backend/config"
	"github.com/echannel-lk/agent-backend/database"
	"github.com/echannel-lk/agent-backend/handlers"
	"github.com/echannel-lk/agent-backend/middleware"
	"github.com/echannel-lk/agent-backend/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file found, using system environment")
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	database.ConnectDB(cfg.DatabaseURL)
	defer database.CloseDB()

	middleware.SetJWTConfig(cfg.JWTSecret, cfg.AccessTokenTTL)

	upstream := channeling.NewClient(cfg.ChannelingBaseURL, cfg.ChannelingAPIKey, cfg.ChannelingTimeout)
	batches := bulk.NewStore()
	handlers.Setup(cfg, upstream, batches)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		},
		AppName: "Corporate Agent Backend v2.0.0",
	})

	routes.SetupRoutes(app)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Route not found",
			"path":    c.Path(),
			"method":  c.Method(),
		})
	})

	log.Printf("Corporate agent backend listening on port %s", cfg.Port)
	log.Printf("Health check: http://localhost:%s/health", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
