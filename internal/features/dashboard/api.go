package dashboard

import (
	"go-cra/internal/config"
	"go-cra/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DashboardApi struct {
	controller *DashboardController
	config     *config.Config
}

func NewDashboardApi(controller *DashboardController, config *config.Config) *DashboardApi {
	return &DashboardApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers dashboard routes
func (h *DashboardApi) Setup(app *fiber.App) {
	grp := app.Group("/api/dashboard", middleware.AuthMiddleware(h.config.SkipAuth))

	grp.Get("/", h.controller.Summary)
}
