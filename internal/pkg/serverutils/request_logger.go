package serverutils

import (
	"time"

	"taskfeed-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger writes one line per request. The status is read after the
// error handler ran, so failed requests log their rendered code.
func RequestLogger(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			if handlerErr := ctx.App().ErrorHandler(ctx, err); handlerErr != nil {
				status = fiber.StatusInternalServerError
			} else {
				status = ctx.Response().StatusCode()
			}
		}

		details := map[string]interface{}{
			"method":     ctx.Method(),
			"path":       ctx.Path(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
		}
		if userID, uerr := CurrentUserID(ctx); uerr == nil {
			details["user_id"] = userID.String()
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error("HTTP", "request failed", details)
		case status >= fiber.StatusBadRequest:
			log.Warn("HTTP", "request rejected", details)
		default:
			log.Info("HTTP", "request served", details)
		}
		return nil
	}
}
