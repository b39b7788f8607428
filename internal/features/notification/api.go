package notification

import (
	"go-cra/internal/config"
	"go-cra/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type NotificationApi struct {
	controller *NotificationController
	config     *config.Config
}

func NewNotificationApi(controller *NotificationController, config *config.Config) *NotificationApi {
	return &NotificationApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers notification routes
func (h *NotificationApi) Setup(app *fiber.App) {
	grp := app.Group("/api/notifications", middleware.AuthMiddleware(h.config.SkipAuth))

	grp.Get("/", h.controller.List)
	grp.Get("/unread-count", h.controller.UnreadCount)
	grp.Put("/:id/read", h.controller.MarkRead)
	grp.Put("/read-all", h.controller.MarkAllRead)
}
