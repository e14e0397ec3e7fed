package httpapi

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AppOptions configures NewApp.
type AppOptions struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// AccessLog turns on the per-request log line.
	AccessLog bool
}

// NewApp builds the Fiber app with the central JSON error handler and the
// global middleware.
func NewApp(opts AppOptions, log *logrus.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "weather-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           opts.ReadTimeout,
		WriteTimeout:          opts.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				log.WithFields(logrus.Fields{
					"path":       c.Path(),
					"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
				}).WithError(err).Error("request failed")
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
			Output: log.Writer(),
		}))
	}
	app.Use(recover.New())

	return app
}
