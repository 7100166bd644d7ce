package serverutils

import (
	"fmt"
	"os"
	"time"

	"taskfeed-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const localUserID = "user_id"

func jwtSecret() []byte {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("default_secret")
}

// JwtMiddleware is the Identity Store boundary: tokens are issued elsewhere,
// the core only verifies them and stores the caller's id in Locals.
func JwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return apperror.Unauthorized("missing token")
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return apperror.Unauthorized("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return apperror.Unauthorized("invalid claims")
	}

	raw, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(raw)
	if err != nil {
		return apperror.Unauthorized("invalid claims")
	}

	ctx.Locals(localUserID, userID)
	return ctx.Next()
}

// CurrentUserID reads what JwtMiddleware stored.
func CurrentUserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	userID, ok := ctx.Locals(localUserID).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, apperror.Unauthorized("unauthenticated")
	}
	return userID, nil
}

// IssueToken signs an HS256 token in the shape JwtMiddleware expects.
// Only the seed tool and tests issue tokens; production tokens come from the identity service.
func IssueToken(secret string, userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID.String(),
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	})
	return token.SignedString([]byte(secret))
}
