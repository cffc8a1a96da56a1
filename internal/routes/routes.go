package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cardsheet/cardsheet-backend/internal/handlers"
	"github.com/cardsheet/cardsheet-backend/internal/services"
)

// SetupRoutes configures all API routes.
func SetupRoutes(app *fiber.App, sessions *services.SessionManager, history *services.HistoryService, downloadDir, storageType string) {
	uploadHandler := handlers.NewUploadHandler(sessions)
	previewHandler := handlers.NewPreviewHandler(sessions)
	convertHandler := handlers.NewConvertHandler(sessions, history, downloadDir)
	downloadHandler := handlers.NewDownloadHandler(sessions)
	healthHandler := handlers.NewHealthHandler("1.0.0", storageType, sessions)
	adminHandler := handlers.NewAdminHandler(history)

	// Root endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to CardSheet Backend!",
			"version": "1.0.0",
			"endpoints": fiber.Map{
				"health":   "/health",
				"upload":   "/api/upload",
				"preview":  "/api/preview/:sessionID",
				"convert":  "/api/convert",
				"download": "/download/:sessionID",
				"admin":    "/api/admin/conversions",
			},
		})
	})

	app.Get("/health", healthHandler.Check)

	// API routes
	api := app.Group("/api")
	api.Post("/upload", uploadHandler.Upload)
	api.Get("/preview/:sessionID", previewHandler.Preview)
	api.Post("/convert", convertHandler.Convert)

	// ========== ADMIN ROUTES ==========
	admin := api.Group("/admin")
	admin.Get("/conversions", adminHandler.RecentConversions)

	// Downloads sit outside /api so the URL returned by convert can be
	// opened directly in a browser.
	app.Get("/download/:sessionID", downloadHandler.Download)
}
