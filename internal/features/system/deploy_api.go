package system

import (
	"runtime"

	"go-cra/internal/common/api"
	"go-cra/internal/config"

	"github.com/gofiber/fiber/v2"
)

// Set via -ldflags at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

type DeployApi struct {
	config *config.Config
}

func NewDeployApi(cfg *config.Config) api.Route {
	return &DeployApi{config: cfg}
}

// Setup registers the deployment info route
func (h *DeployApi) Setup(app *fiber.App) {
	app.Get("/api/deploy-info", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"version":     Version,
			"commit":      Commit,
			"buildTime":   BuildTime,
			"goVersion":   runtime.Version(),
			"environment": h.config.Environment,
		})
	})
}
