package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v3"
)

const HeaderInternalToken = "X-Internal-Token"

// InternalToken guards service-to-service endpoints. An empty configured token
// rejects every request.
func InternalToken(token string) fiber.Handler {
	expected := []byte(strings.TrimSpace(token))
	return func(c fiber.Ctx) error {
		got := []byte(strings.TrimSpace(c.Get(HeaderInternalToken)))
		if len(expected) == 0 || subtle.ConstantTimeCompare(got, expected) != 1 {
			return NewAppError(fiber.StatusUnauthorized, "Invalid internal token", nil, nil)
		}
		return c.Next()
	}
}
