package serverutils

import (
	"strings"

	"promptlycoach-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// NewJwtMiddleware validates a Bearer token and stores its user_id claim in Locals.
// With optional=true requests without a token pass through anonymously; a malformed
// token is still rejected.
func NewJwtMiddleware(secret string, optional bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
			if optional {
				return ctx.Next()
			}
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid claims"))
		}

		if userID, ok := claims["user_id"].(string); ok {
			ctx.Locals("user_id", userID)
		}
		if email, ok := claims["email"].(string); ok {
			ctx.Locals("email", email)
		}
		if fullName, ok := claims["full_name"].(string); ok {
			ctx.Locals("full_name", fullName)
		}
		return ctx.Next()
	}
}

// UserIDFromLocals returns the authenticated user, or nil for anonymous visitors.
func UserIDFromLocals(ctx *fiber.Ctx) *uuid.UUID {
	raw, ok := ctx.Locals("user_id").(string)
	if !ok || raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

// VisitorFromLocals returns the authenticated visitor, or nil for anonymous requests.
func VisitorFromLocals(ctx *fiber.Ctx) *entity.Visitor {
	id := UserIDFromLocals(ctx)
	if id == nil {
		return nil
	}
	email, _ := ctx.Locals("email").(string)
	fullName, _ := ctx.Locals("full_name").(string)
	return &entity.Visitor{Id: *id, Email: email, FullName: fullName}
}
