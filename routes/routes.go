package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/echannel-lk/agent-backend/handlers"
	"github.com/echannel-lk/agent-backend/middleware"
)

// SetupRoutes wires the whole API surface.
func SetupRoutes(app *fiber.App) {
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.LoggingMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Corporate Agent Backend",
			"version": "2.0.0",
		})
	})

	api := app.Group("/api", middleware.DefaultRateLimiter())

	// Public auth routes
	auth := api.Group("/auth", middleware.AuthRateLimiter())
	auth.Post("/register", handlers.RegisterAgent)
	auth.Post("/login", handlers.Login)
	auth.Post("/refresh", handlers.RefreshToken)
	auth.Post("/logout", handlers.Logout)

	// Everything below requires an authenticated agent
	protected := api.Group("/", middleware.JWTMiddleware())

	mfa := protected.Group("/mfa")
	mfa.Post("/setup", handlers.SetupMFA)
	mfa.Post("/verify", handlers.VerifyMFA)
	mfa.Post("/disable", handlers.DisableMFA)

	doctors := protected.Group("/doctors")
	doctors.Get("/", handlers.GetDoctors)
	doctors.Get("/:id", handlers.GetDoctorByID)

	appointments := protected.Group("/appointments")
	appointments.Post("/", handlers.CreateAppointment)
	appointments.Get("/", handlers.GetAppointments)
	appointments.Get("/unpaid", handlers.GetUnpaidAppointments)
	appointments.Post("/:id/confirm", handlers.ConfirmAppointment)
	appointments.Post("/:id/cancel", handlers.CancelAppointment)

	bulk := protected.Group("/bulk", middleware.BodySizeLimit(2*1024*1024))
	bulk.Get("/rows", handlers.GetBulkRows)
	bulk.Post("/rows", handlers.AddBulkRow)
	bulk.Put("/rows/:id", handlers.UpdateBulkRow)
	bulk.Delete("/rows/:id", handlers.DeleteBulkRow)
	bulk.Post("/upload", handlers.UploadBulkCSV)
	bulk.Post("/validate", handlers.ValidateBulkRows)
	bulk.Post("/submit", handlers.SubmitBulkBooking)
	bulk.Get("/template", handlers.DownloadBulkTemplate)

	payments := protected.Group("/payments")
	payments.Get("/", handlers.GetPayments)
	payments.Get("/stats", handlers.GetPaymentStats)

	reports := protected.Group("/reports")
	reports.Post("/generate", handlers.GenerateReport)
	reports.Get("/", handlers.GetReports)
	reports.Get("/:id", handlers.GetReportByID)
	reports.Get("/:id/export", handlers.ExportReportCSV)
	reports.Delete("/:id", handlers.DeleteReport)

	notifications := protected.Group("/notifications")
	notifications.Get("/", handlers.GetNotifications)
	notifications.Patch("/:id/read", handlers.MarkNotificationRead)
	notifications.Patch("/read-all", handlers.MarkAllNotificationsRead)

	profile := protected.Group("/profile")
	profile.Get("/", handlers.GetProfile)
	profile.Put("/", handlers.UpdateProfile)

	protected.Get("/dashboard", handlers.GetDashboardStats)
}
