package auth

import (
	"go-cra/internal/config"
	"go-cra/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuthApi struct {
	controller *AuthController
	config     *config.Config
}

func NewAuthApi(controller *AuthController, config *config.Config) *AuthApi {
	return &AuthApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers auth routes
func (h *AuthApi) Setup(app *fiber.App) {
	grp := app.Group("/api/auth")

	grp.Post("/login", h.controller.Login)
	grp.Get("/me", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.Me)
}
