package archive

import (
	"go-cra/internal/config"
	"go-cra/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ArchiveApi struct {
	controller *ArchiveController
	config     *config.Config
}

func NewArchiveApi(controller *ArchiveController, config *config.Config) *ArchiveApi {
	return &ArchiveApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers archive routes, admin only
func (h *ArchiveApi) Setup(app *fiber.App) {
	grp := app.Group("/api/archive", middleware.AuthMiddleware(h.config.SkipAuth), middleware.RequireAdmin())

	grp.Post("/run", h.controller.Run)
}
