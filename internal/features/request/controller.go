package request

import (
	"errors"

	"go-cra/internal/middleware"
	"go-cra/internal/workflow"

	"github.com/gofiber/fiber/v2"
)

type RequestController struct {
	Service RequestService
}

func NewRequestController(service RequestService) *RequestController {
	return &RequestController{Service: service}
}

type transitionInput struct {
	Status workflow.Status `json:"status"`
	workflow.Input
}

func transitionStatusCode(err error) int {
	switch {
	case errors.Is(err, workflow.ErrRoleNotPermitted):
		return fiber.StatusForbidden
	case errors.Is(err, workflow.ErrInvalidTransition):
		return fiber.StatusConflict
	case errors.Is(err, workflow.ErrMissingRequiredField):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// CreateRequest godoc
// @Summary Create a customer request in draft
// @Tags requests
// @Accept json
// @Produce json
// @Success 201 {object} request.Request
// @Router /api/requests [post]
func (ctrl *RequestController) CreateRequest(c *fiber.Ctx) error {
	var input CreateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	req, err := ctrl.Service.CreateRequest(c.UserContext(), input)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}

// ListRequests godoc
// @Summary List requests, optionally filtered by dashboard bucket
// @Tags requests
// @Produce json
// @Param filter query string false "dashboard bucket filter key"
// @Param mine query bool false "only the caller's own requests"
// @Success 200 {array} request.Request
// @Router /api/requests [get]
func (ctrl *RequestController) ListRequests(c *fiber.Ctx) error {
	requests, err := ctrl.Service.ListRequests(c.UserContext(), c.Query("filter"), c.QueryBool("mine"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(requests)
}

// GetRequest godoc
func (ctrl *RequestController) GetRequest(c *fiber.Ctx) error {
	req, err := ctrl.Service.GetRequest(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(transitionStatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(req)
}

// UpdateRequest godoc
func (ctrl *RequestController) UpdateRequest(c *fiber.Ctx) error {
	var input CreateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := ctrl.Service.UpdateContent(c.UserContext(), c.Params("id"), middleware.AdminEditMode(c), input); err != nil {
		return c.Status(transitionStatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Request updated successfully"})
}

// DeleteRequest godoc
func (ctrl *RequestController) DeleteRequest(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteRequest(c.UserContext(), c.Params("id")); err != nil {
		return c.Status(transitionStatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Transition godoc
// @Summary Move a request to a new workflow status
// @Tags requests
// @Accept json
// @Produce json
// @Success 200 {object} request.Request
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/requests/{id}/transition [post]
func (ctrl *RequestController) Transition(c *fiber.Ctx) error {
	var input transitionInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	req, err := ctrl.Service.Transition(c.UserContext(), c.Params("id"), input.Status, middleware.AdminEditMode(c), input.Input)
	if err != nil {
		return c.Status(transitionStatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(req)
}

// PermittedActions godoc
// @Summary List the statuses the caller may move this request to
// @Tags requests
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/requests/{id}/actions [get]
func (ctrl *RequestController) PermittedActions(c *fiber.Ctx) error {
	targets, err := ctrl.Service.PermittedActions(c.UserContext(), c.Params("id"), middleware.AdminEditMode(c))
	if err != nil {
		return c.Status(transitionStatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"targets": targets})
}
