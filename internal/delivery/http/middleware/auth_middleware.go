package middleware

import (
	"errors"
	"strings"

	"learnmatch/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	CtxLearnerIDKey = "learner_id"
	CtxEmailKey     = "email"

	wsTokenQueryParam = "access_token"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return m.handler(false)
}

// WebSocket also accepts the access token as a query parameter, since browsers
// cannot set headers on the upgrade request.
func (m *AuthMiddleware) WebSocket() fiber.Handler {
	return m.handler(true)
}

func (m *AuthMiddleware) handler(allowQuery bool) fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok && allowQuery {
			token = strings.TrimSpace(c.Query(wsTokenQueryParam))
			ok = token != ""
		}
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		if !m.jwt.IsAccessToken(claims) || claims.LearnerID == uuid.Nil {
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, nil)
		}

		c.Locals(CtxLearnerIDKey, claims.LearnerID)
		c.Locals(CtxEmailKey, claims.Email)

		return c.Next()
	}
}

// LearnerID returns the authenticated learner set by the auth middleware.
func LearnerID(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(CtxLearnerIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
