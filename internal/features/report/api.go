package report

import (
	"go-cra/internal/config"
	"go-cra/internal/middleware"
	"go-cra/internal/workflow"

	"github.com/gofiber/fiber/v2"
)

type ReportApi struct {
	controller *ReportController
	config     *config.Config
}

func NewReportApi(controller *ReportController, config *config.Config) *ReportApi {
	return &ReportApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers report routes
func (h *ReportApi) Setup(app *fiber.App) {
	grp := app.Group("/api/reports", middleware.AuthMiddleware(h.config.SkipAuth))

	grp.Get("/requests", middleware.RequireRole(workflow.RoleSales), h.controller.ExportRequests)
}
