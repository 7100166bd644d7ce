package serverutils

import (
	"fmt"
	"time"

	"taskfeed-be/internal/entity"
	"taskfeed-be/internal/pkg/apperror"
	"taskfeed-be/internal/pkg/logger"
	"taskfeed-be/internal/repository/contract"

	"github.com/gofiber/fiber/v2"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	ReplayedHeader       = "Idempotent-Replayed"
	maxIdempotencyKeyLen = 200
)

// Idempotency replays the first completed response for a repeated
// (user, method, path, Idempotency-Key). Must run after JwtMiddleware.
// Failed requests release the key so the client can retry.
func Idempotency(store contract.IdempotencyRepository, ttl time.Duration, log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		key := ctx.Get(IdempotencyKeyHeader)
		if key == "" {
			return ctx.Next()
		}
		if len(key) > maxIdempotencyKeyLen {
			return apperror.Validation("Idempotency-Key is too long", nil)
		}

		userID, err := CurrentUserID(ctx)
		if err != nil {
			return err
		}
		storeKey := fmt.Sprintf("%s:%s:%s:%s", userID, ctx.Method(), ctx.Path(), key)
		c := ctx.UserContext()

		reserved, err := store.Reserve(c, storeKey, ttl)
		if err != nil {
			return err
		}
		if !reserved {
			existing, err := store.Get(c, storeKey)
			if err != nil {
				return err
			}
			if existing == nil || existing.Pending {
				return apperror.Conflict("a request with this Idempotency-Key is still in progress")
			}
			ctx.Set(ReplayedHeader, "true")
			if existing.ContentType != "" {
				ctx.Set(fiber.HeaderContentType, existing.ContentType)
			}
			return ctx.Status(existing.Status).Send(existing.Body)
		}

		if err := ctx.Next(); err != nil {
			if relErr := store.Release(c, storeKey); relErr != nil {
				log.Warn("Idempotency", "Failed to release key", map[string]interface{}{"error": relErr.Error()})
			}
			return err
		}

		status := ctx.Response().StatusCode()
		if status >= fiber.StatusInternalServerError {
			if relErr := store.Release(c, storeKey); relErr != nil {
				log.Warn("Idempotency", "Failed to release key", map[string]interface{}{"error": relErr.Error()})
			}
			return nil
		}

		// fasthttp reuses the body buffer after the handler returns.
		body := append([]byte(nil), ctx.Response().Body()...)
		saveErr := store.Save(c, storeKey, &entity.IdempotentResponse{
			Status:      status,
			ContentType: string(ctx.Response().Header.ContentType()),
			Body:        body,
		}, ttl)
		if saveErr != nil {
			log.Warn("Idempotency", "Failed to store response", map[string]interface{}{"error": saveErr.Error()})
		}
		return nil
	}
}
