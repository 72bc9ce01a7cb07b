package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stacktrack/stacktrack/internal/config"
	"github.com/stacktrack/stacktrack/internal/events"
	"github.com/stacktrack/stacktrack/internal/observability"
	"github.com/stacktrack/stacktrack/internal/session"
	apperrors "github.com/stacktrack/stacktrack/pkg/util"
)

// MiddlewareConfig bundles dependencies for the global middleware chain.
type MiddlewareConfig struct {
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Timeout    time.Duration
	Session    config.SessionConfig
	Dispatcher events.Dispatcher
}

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, cfg MiddlewareConfig, sessionMiddleware *session.Middleware) {
	app.Use(requestIDMiddleware())
	if cfg.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(cfg.Timeout))
	}
	app.Use(errorHandlingMiddleware(cfg))
	app.Use(observability.RequestLogger(cfg.Logger, cfg.Metrics))
	app.Use(sessionMiddleware.Handle)
}

func requestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals("request_id", requestID)
		c.Set("X-Request-ID", requestID)
		return c.Next()
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(cfg MiddlewareConfig) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				cfg.Logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				cfg.Metrics.RecordError(c.Route().Path, c.Method(), domainErr.Code)
				if apperrors.IsUnauthorized(err) {
					// A rejected upstream token means the session is dead:
					// drop the cookie so the UI falls back to login.
					session.ClearCookie(c, cfg.Session)
					publishSessionCleared(c, cfg.Dispatcher)
				}
				response := fiber.Map{"error": fiber.Map{
					"code":    domainErr.Code,
					"message": domainErr.Message,
				}}
				if len(domainErr.Details) > 0 {
					response["error"].(fiber.Map)["details"] = domainErr.Details
				}
				if domainErr.HTTPStatus >= 500 {
					cfg.Logger.Error("request failed", zap.Error(domainErr))
				}
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(response)
				err = nil
			}
		}()
		return c.Next()
	}
}

func publishSessionCleared(c *fiber.Ctx, dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	_ = dispatcher.Publish(c.UserContext(), events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSessionCleared,
		Timestamp: time.Now(),
		Payload:   events.SessionClearedPayload{Reason: "upstream_unauthorized"},
	})
}
