package api

import (
	"errors"
	"net/http"

	"aipin/docs"
	"aipin/internal/api/handlers"
	"aipin/pkg/config"
	"aipin/pkg/middleware"
	"aipin/web"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	chatHandler *handlers.ChatHandler,
	fileHandler *handlers.FileHandler,
	infoHandler *handlers.InfoHandler,
	cfg *config.ServerConfig,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.BodyLimit,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: errorHandler(appLogger),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(middleware.AccessLog(appLogger.Named("http")))

	// docs registers itself with swag in init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Web interface
	app.Use("/static", filesystem.New(filesystem.Config{
		Root: http.FS(web.Static()),
	}))
	index := web.Index()
	app.Get("/", func(c *fiber.Ctx) error {
		c.Type("html", "utf-8")
		return c.Send(index)
	})
	app.Get("/admin", infoHandler.Admin)

	// API routes
	api := app.Group("/api")
	api.Post("/chat", chatHandler.Chat)
	api.Post("/search", chatHandler.Search)
	api.Get("/history", chatHandler.History)
	api.Post("/upload", fileHandler.UploadFile)
	api.Get("/files", fileHandler.ListFiles)
	api.Get("/info", infoHandler.Info)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	return app
}

// errorHandler answers every error with a JSON body. Unexpected errors are
// logged and reported as a generic server error.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var e *fiber.Error
		if !errors.As(err, &e) {
			logger.Error("Unhandled error",
				zap.String("request_id", middleware.RequestID(c)),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "सर्वर त्रुटि",
			})
		}

		message := e.Message
		if e.Code == fiber.StatusNotFound {
			message = "पेज नहीं मिला"
		}
		return c.Status(e.Code).JSON(fiber.Map{
			"error": message,
		})
	}
}
