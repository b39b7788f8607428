package backup

import (
	"github.com/gofiber/fiber/v2"
)

type BackupController struct {
	Service BackupService
}

func NewBackupController(service BackupService) *BackupController {
	return &BackupController{Service: service}
}

// Run godoc
// @Summary Run a backup now
// @Tags backups
// @Produce json
// @Success 201 {object} backup.BackupSet
// @Router /api/backups/run [post]
func (ctrl *BackupController) Run(c *fiber.Ctx) error {
	set, err := ctrl.Service.RunBackup(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(set)
}

// List godoc
func (ctrl *BackupController) List(c *fiber.Ctx) error {
	sets, err := ctrl.Service.ListBackups(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(sets)
}

// Restore godoc
func (ctrl *BackupController) Restore(c *fiber.Ctx) error {
	if err := ctrl.Service.Restore(c.UserContext(), c.Params("name")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Backup restored successfully"})
}

// Delete godoc
func (ctrl *BackupController) Delete(c *fiber.Ctx) error {
	if err := ctrl.Service.Delete(c.UserContext(), c.Params("name")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
