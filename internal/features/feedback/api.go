package feedback

import (
	"go-cra/internal/config"
	"go-cra/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type FeedbackApi struct {
	controller *FeedbackController
	config     *config.Config
}

func NewFeedbackApi(controller *FeedbackController, config *config.Config) *FeedbackApi {
	return &FeedbackApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers feedback routes. Anyone signed in may submit; triage is
// admin only.
func (h *FeedbackApi) Setup(app *fiber.App) {
	grp := app.Group("/api/feedback", middleware.AuthMiddleware(h.config.SkipAuth))

	grp.Post("/", h.controller.Submit)
	grp.Get("/", middleware.RequireAdmin(), h.controller.List)
	grp.Put("/:id", middleware.RequireAdmin(), h.controller.Triage)
}
