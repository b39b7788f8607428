package main

import (
	"context"
	"fmt"
	"log"

	common_api "go-cra/internal/common/api"
	"go-cra/internal/config"
	"go-cra/internal/database"
	"go-cra/internal/features/archive"
	"go-cra/internal/features/audit"
	"go-cra/internal/features/auth"
	"go-cra/internal/features/backup"
	"go-cra/internal/features/dashboard"
	"go-cra/internal/features/email"
	"go-cra/internal/features/feedback"
	"go-cra/internal/features/notification"
	"go-cra/internal/features/report"
	"go-cra/internal/features/request"
	"go-cra/internal/features/settings"
	"go-cra/internal/features/system"
	"go-cra/internal/features/user"
	"go-cra/internal/logger"
	"go-cra/internal/middleware"
	"go-cra/pkg/utils"

	_ "go-cra/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	log.Printf("Registering %d routes...\n", len(routes))
	for _, route := range routes {
		route.Setup(app)
	}
	log.Println("All routes registered successfully")
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// @title           CRA Tracker API
// @version         1.0
// @description     Customer request tracking across sales, design and costing.

// @host            localhost:8080
// @BasePath        /
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Initialize Repository
			audit.NewAuditRepository,
			user.NewUserRepository,
			request.NewRequestRepository,
			notification.NewNotificationRepository,
			settings.NewSettingsRepository,
			email.NewEmailRepository,
			feedback.NewFeedbackRepository,

			// Initialize Service
			audit.NewAuditService,
			auth.NewAuthService,
			user.NewUserService,
			request.NewRequestService,
			dashboard.NewDashboardService,
			notification.NewNotificationService,
			notification.NewHub,
			notification.NewDispatcher,
			settings.NewSettingsService,
			email.NewEmailService,
			report.NewReportService,
			feedback.NewFeedbackService,
			backup.NewBackupService,
			archive.NewArchiveService,

			// Interface Adapters to satisfy Fx
			func(r user.UserRepository) audit.UserFinder { return r },
			func(r user.UserRepository) notification.Recipients { return r },
			func(s settings.SettingsService) notification.FlowSource { return s },
			func(d *notification.Dispatcher) request.Notifier { return d },
			func(s request.RequestService) dashboard.RequestSource { return s },

			// Initialize Controller
			auth.NewAuthController,
			user.NewUserController,
			request.NewRequestController,
			dashboard.NewDashboardController,
			notification.NewNotificationController,
			settings.NewSettingsController,
			audit.NewAuditController,
			report.NewReportController,
			feedback.NewFeedbackController,
			backup.NewBackupController,
			archive.NewArchiveController,
			system.NewWebSocketController,

			// Initialize API Routes
			AsRoute(auth.NewAuthApi),
			AsRoute(user.NewUserApi),
			AsRoute(request.NewRequestApi),
			AsRoute(dashboard.NewDashboardApi),
			AsRoute(notification.NewNotificationApi),
			AsRoute(settings.NewSettingsApi),
			AsRoute(audit.NewAuditApi),
			AsRoute(report.NewReportApi),
			AsRoute(feedback.NewFeedbackApi),
			AsRoute(backup.NewBackupApi),
			AsRoute(archive.NewArchiveApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewDeployApi),
			AsRoute(system.NewSwaggerApi),
			AsRoute(system.NewWebSocketApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) { utils.SetSecret(cfg.JWTSecret) },

			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,

			func(lc fx.Lifecycle, backupService backup.BackupService) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return backupService.StartScheduler()
					},
					OnStop: func(ctx context.Context) error {
						backupService.StopScheduler()
						return nil
					},
				})
			},
			func(lc fx.Lifecycle, archiveService archive.ArchiveService) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return archiveService.StartScheduler()
					},
					OnStop: func(ctx context.Context) error {
						archiveService.StopScheduler()
						return nil
					},
				})
			},
		),
	)

	app.Run()
}
