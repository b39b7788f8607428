package dashboard

import (
	"github.com/gofiber/fiber/v2"
)

type DashboardController struct {
	Service DashboardService
}

func NewDashboardController(service DashboardService) *DashboardController {
	return &DashboardController{Service: service}
}

// Summary godoc
// @Summary Role dashboard KPI counts
// @Tags dashboard
// @Produce json
// @Param mine query bool false "count only the caller's own requests"
// @Success 200 {object} dashboard.Summary
// @Router /api/dashboard [get]
func (ctrl *DashboardController) Summary(c *fiber.Ctx) error {
	summary, err := ctrl.Service.Summarize(c.UserContext(), c.QueryBool("mine"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(summary)
}
