package backup

import (
	"go-cra/internal/config"
	"go-cra/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type BackupApi struct {
	controller *BackupController
	config     *config.Config
}

func NewBackupApi(controller *BackupController, config *config.Config) *BackupApi {
	return &BackupApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers backup routes, all admin only
func (h *BackupApi) Setup(app *fiber.App) {
	grp := app.Group("/api/backups", middleware.AuthMiddleware(h.config.SkipAuth), middleware.RequireAdmin())

	grp.Post("/run", h.controller.Run)
	grp.Get("/", h.controller.List)
	grp.Post("/:name/restore", h.controller.Restore)
	grp.Delete("/:name", h.controller.Delete)
}
