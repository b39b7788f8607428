package notification

import (
	"github.com/gofiber/fiber/v2"
)

type NotificationController struct {
	Service NotificationService
}

func NewNotificationController(service NotificationService) *NotificationController {
	return &NotificationController{Service: service}
}

// List godoc
// @Summary List the caller's notifications
// @Tags notifications
// @Produce json
// @Success 200 {array} notification.Notification
// @Router /api/notifications [get]
func (ctrl *NotificationController) List(c *fiber.Ctx) error {
	notifications, err := ctrl.Service.List(c.UserContext(), int64(c.QueryInt("limit", 50)))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if notifications == nil {
		notifications = []Notification{}
	}
	return c.JSON(notifications)
}

// UnreadCount godoc
func (ctrl *NotificationController) UnreadCount(c *fiber.Ctx) error {
	count, err := ctrl.Service.UnreadCount(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"count": count})
}

// MarkRead godoc
func (ctrl *NotificationController) MarkRead(c *fiber.Ctx) error {
	if err := ctrl.Service.MarkRead(c.UserContext(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}

// MarkAllRead godoc
func (ctrl *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	if err := ctrl.Service.MarkAllRead(c.UserContext()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "All notifications marked as read"})
}
