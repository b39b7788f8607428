package system

import (
	"context"
	"time"

	"go-cra/internal/common/api"
	"go-cra/internal/database"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
)

type HealthApi struct {
	db *database.MongodbDB
}

func NewHealthApi(db *database.MongodbDB) api.Route {
	return &HealthApi{db: db}
}

// Setup registers the health route. Unauthenticated so load balancers can
// probe it.
func (h *HealthApi) Setup(app *fiber.App) {
	app.Get("/api/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		status := "ok"
		dbStatus := "ok"
		if err := h.db.DB.RunCommand(ctx, bson.M{"ping": 1}).Err(); err != nil {
			status = "degraded"
			dbStatus = err.Error()
		}

		code := fiber.StatusOK
		if status != "ok" {
			code = fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"database": dbStatus,
			"time":     time.Now().UTC(),
		})
	})
}
