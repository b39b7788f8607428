package settings

import (
	"go-cra/internal/config"
	"go-cra/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SettingsApi struct {
	controller *SettingsController
	config     *config.Config
}

func NewSettingsApi(controller *SettingsController, config *config.Config) *SettingsApi {
	return &SettingsApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers settings routes. Reads are open to any authenticated user
// (the request form needs the option lists); writes are admin only.
func (h *SettingsApi) Setup(app *fiber.App) {
	grp := app.Group("/api/settings", middleware.AuthMiddleware(h.config.SkipAuth))

	grp.Get("/option-lists", h.controller.GetOptionLists)
	grp.Put("/option-lists", middleware.RequireAdmin(), h.controller.UpdateOptionLists)

	grp.Get("/notification-flows", middleware.RequireAdmin(), h.controller.GetNotificationFlows)
	grp.Put("/notification-flows", middleware.RequireAdmin(), h.controller.UpdateNotificationFlows)
}
