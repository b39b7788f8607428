package request

import (
	"go-cra/internal/config"
	"go-cra/internal/middleware"
	"go-cra/internal/workflow"

	"github.com/gofiber/fiber/v2"
)

type RequestApi struct {
	controller *RequestController
	config     *config.Config
}

func NewRequestApi(controller *RequestController, config *config.Config) *RequestApi {
	return &RequestApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all request routes
func (h *RequestApi) Setup(app *fiber.App) {
	grp := app.Group("/api/requests", middleware.AuthMiddleware(h.config.SkipAuth))

	grp.Post("/", middleware.RequireRole(workflow.RoleSales), h.controller.CreateRequest)
	grp.Get("/", h.controller.ListRequests)
	grp.Get("/:id", h.controller.GetRequest)
	grp.Put("/:id", h.controller.UpdateRequest)
	grp.Delete("/:id", middleware.RequireAdmin(), h.controller.DeleteRequest)

	grp.Post("/:id/transition", h.controller.Transition)
	grp.Get("/:id/actions", h.controller.PermittedActions)
}
