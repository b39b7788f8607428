package settings

import (
	"github.com/gofiber/fiber/v2"
)

type SettingsController struct {
	Service SettingsService
}

func NewSettingsController(service SettingsService) *SettingsController {
	return &SettingsController{Service: service}
}

// GetOptionLists godoc
// @Summary Dropdown option lists for the request form
// @Tags settings
// @Produce json
// @Success 200 {object} settings.OptionListsConfig
// @Router /api/settings/option-lists [get]
func (ctrl *SettingsController) GetOptionLists(c *fiber.Ctx) error {
	config, err := ctrl.Service.GetOptionLists(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(config)
}

// UpdateOptionLists godoc
func (ctrl *SettingsController) UpdateOptionLists(c *fiber.Ctx) error {
	var config OptionListsConfig
	if err := c.BodyParser(&config); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := ctrl.Service.UpdateOptionLists(c.UserContext(), config); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Option lists updated successfully"})
}

// GetNotificationFlows godoc
func (ctrl *SettingsController) GetNotificationFlows(c *fiber.Ctx) error {
	config, err := ctrl.Service.GetNotificationFlows(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(config)
}

// UpdateNotificationFlows godoc
func (ctrl *SettingsController) UpdateNotificationFlows(c *fiber.Ctx) error {
	var config NotificationFlowsConfig
	if err := c.BodyParser(&config); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := ctrl.Service.UpdateNotificationFlows(c.UserContext(), config); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Notification flows updated successfully"})
}
