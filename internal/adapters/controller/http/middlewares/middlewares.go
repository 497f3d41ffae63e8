package middlewares

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"event-manager-api/internal/domain/service"
	"event-manager-api/pkg/logger/types"
)

// Locals keys shared with the handlers.
const (
	ClaimsKey = "claims"
	TokenKey  = "token"
)

// Auth verifies the bearer token and stores the decoded claims (and the
// raw token, for logout) on the request context.
func Auth(auth *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing bearer token",
			})
		}
		token := strings.TrimPrefix(header, "Bearer ")

		claims, err := auth.VerifyToken(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}

		c.Locals(ClaimsKey, claims)
		c.Locals(TokenKey, token)
		return c.Next()
	}
}

// RequestLogger tags every request with an id and logs method, path,
// status and latency.
func RequestLogger(log *types.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("X-Request-ID", requestID)

		start := time.Now()
		err := c.Next()

		log.Infof("%s %s | %d | %s | request: %s",
			c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start), requestID)
		return err
	}
}
