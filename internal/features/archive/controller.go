package archive

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type ArchiveController struct {
	Service ArchiveService
}

func NewArchiveController(service ArchiveService) *ArchiveController {
	return &ArchiveController{Service: service}
}

// Run godoc
// @Summary Mirror finalized requests to the archive database now
// @Tags archive
// @Produce json
// @Success 200 {object} map[string]int
// @Router /api/archive/run [post]
func (ctrl *ArchiveController) Run(c *fiber.Ctx) error {
	count, err := ctrl.Service.RunArchive(c.UserContext())
	if err != nil {
		if errors.Is(err, ErrArchiveDisabled) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"archived": count})
}
