package feedback

import (
	"github.com/gofiber/fiber/v2"
)

type FeedbackController struct {
	Service FeedbackService
}

func NewFeedbackController(service FeedbackService) *FeedbackController {
	return &FeedbackController{Service: service}
}

// Submit godoc
// @Summary Submit feedback about the tracker
// @Tags feedback
// @Accept json
// @Produce json
// @Success 201 {object} feedback.Feedback
// @Router /api/feedback [post]
func (ctrl *FeedbackController) Submit(c *fiber.Ctx) error {
	var input struct {
		Subject  string `json:"subject"`
		Message  string `json:"message"`
		Category string `json:"category"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	fb, err := ctrl.Service.Submit(c.UserContext(), input.Subject, input.Message, input.Category)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fb)
}

// List godoc
func (ctrl *FeedbackController) List(c *fiber.Ctx) error {
	items, err := ctrl.Service.List(c.UserContext(), FeedbackStatus(c.Query("status")))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if items == nil {
		items = []Feedback{}
	}
	return c.JSON(items)
}

// Triage godoc
func (ctrl *FeedbackController) Triage(c *fiber.Ctx) error {
	var input struct {
		Status   FeedbackStatus `json:"status"`
		Response string         `json:"response"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := ctrl.Service.Triage(c.UserContext(), c.Params("id"), input.Status, input.Response); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Feedback updated successfully"})
}
